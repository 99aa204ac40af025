package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/picklecatch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the configuration a game would run with, as YAML.

Search order:
  1. --config path
  2. ~/.picklecatch/configs/picklecatch.yaml
  3. ./configs/picklecatch.yaml
  4. Built-in defaults

Redirect the output to start a custom config:
  picklecatch config > ~/.picklecatch/configs/picklecatch.yaml
  picklecatch config --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	addGameConfigFlags(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		exitf("%v", err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		exitf("%v", err)
	}
	fmt.Print(string(data))
}
