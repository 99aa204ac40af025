package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "picklecatch.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.picklecatch/configs/picklecatch.yaml ->
// ./configs/picklecatch.yaml -> embedded default.
//
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it names. An explicit customPath that cannot be read, parsed or
// validated is an error; implicit locations fall through silently.
func Load(customPath string) (GameConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GameConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return GameConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed is broken
	}
	return cfg, nil
}

// LoadWithPreset loads the configuration and applies a difficulty preset.
func LoadWithPreset(customPath string, preset DifficultyPreset) (GameConfig, error) {
	cfg, err := Load(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyPreset(&cfg, preset)
	return cfg, cfg.Validate()
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (GameConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GameConfig{}, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg GameConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode yaml: %w", err)
	}
	return data, nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(fileName); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", fileName))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".picklecatch", "configs", filename)
}
