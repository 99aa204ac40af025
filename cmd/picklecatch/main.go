// picklecatch is a catch-the-falling-pickleballs arcade game for the
// terminal, SSH and the browser.
//
// Usage:
//
//	picklecatch play             - Play in this terminal
//	picklecatch serve            - Start SSH server for remote play
//	picklecatch web              - Serve the browser client
//	picklecatch replays          - Browse, verify and watch recorded runs
//	picklecatch config           - Print the effective game configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.picklecatch/replays.db)
//	--log-level <level> - Set log level for servers (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/picklecatch/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	// Shared by play, serve, web and config
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "picklecatch",
	Short: "PickleCatch - catch the falling pickleballs",
	Long: `PickleCatch is a reflex arcade game: move the bottle to catch falling
pickleballs. One miss ends the run. Golden balls double your catcher for a
while.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  web      - Serve the browser client
  replays  - Browse, verify and watch recorded runs
  config   - Print the effective game configuration

Examples:
  picklecatch play
  picklecatch play --difficulty hard --record
  picklecatch serve --ssh :2222
  picklecatch web --addr :8080 --qr
  picklecatch replays list`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.picklecatch/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(configCmd)
}

// addGameConfigFlags registers --config and --difficulty on cmd.
func addGameConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// loadGameConfig resolves the game configuration from --config and --difficulty.
func loadGameConfig() (config.GameConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.GameConfig{}, err
	}
	return config.LoadWithPreset(flagConfig, preset)
}

// newLogger creates a stderr logger at the --log-level level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// exitf prints an error and exits with status 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
