package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded yaml = %+v\nwant %+v", cfg, Default())
	}
}

func TestParsePartialOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("golden:\n  chance: 0.5\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Golden.Chance != 0.5 {
		t.Errorf("Golden.Chance = %v, want 0.5", cfg.Golden.Chance)
	}
	if cfg.Golden.CheckInterval != 15000 {
		t.Errorf("Golden.CheckInterval = %v, want default 15000", cfg.Golden.CheckInterval)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
	}{
		{"zero radius", func(c *GameConfig) { c.Objects.Radius = 0 }},
		{"inverted intervals", func(c *GameConfig) { c.Spawn.MinInterval = 5000 }},
		{"chance above one", func(c *GameConfig) { c.Golden.Chance = 1.5 }},
		{"inverted burst gaps", func(c *GameConfig) { c.Spawn.BurstGapMax = 10 }},
		{"huge catcher", func(c *GameConfig) { c.Catcher.WidthFraction = 0.9 }},
		{"shrinking powerup", func(c *GameConfig) { c.PowerUp.WidthMultiplier = 0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("objects:\n  base_speed: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Objects.BaseSpeed != 5 {
		t.Errorf("BaseSpeed = %v, want 5", cfg.Objects.BaseSpeed)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("objects:\n  radius: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load(bad) = %v, want ErrInvalid", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded defaults.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}

	// Local configs directory.
	writeFile(t, filepath.Join(work, "configs", fileName), "golden:\n  chance: 0.1\n")
	cfg, _ = Load("")
	if cfg.Golden.Chance != 0.1 {
		t.Errorf("local config not used: chance = %v", cfg.Golden.Chance)
	}

	// User config wins over local.
	writeFile(t, filepath.Join(home, ".picklecatch", "configs", fileName), "golden:\n  chance: 0.2\n")
	cfg, _ = Load("")
	if cfg.Golden.Chance != 0.2 {
		t.Errorf("user config not preferred: chance = %v", cfg.Golden.Chance)
	}

	// An invalid user config falls through to the next location.
	writeFile(t, filepath.Join(home, ".picklecatch", "configs", fileName), "golden:\n  chance: 7\n")
	cfg, _ = Load("")
	if cfg.Golden.Chance != 0.1 {
		t.Errorf("invalid user config not skipped: chance = %v", cfg.Golden.Chance)
	}
}

func TestPresets(t *testing.T) {
	for _, p := range Presets() {
		cfg := Default()
		ApplyPreset(&cfg, p)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s produced invalid config: %v", p, err)
		}
	}

	normal := Default()
	ApplyPreset(&normal, DifficultyNormal)
	if normal != Default() {
		t.Error("normal preset changed the config")
	}

	fixed := Default()
	ApplyPreset(&fixed, DifficultyFixed)
	if fixed.Objects.SpeedPerCatch != 0 || fixed.Spawn.PointsPerBurst != 0 {
		t.Errorf("fixed preset still escalates: %+v", fixed)
	}

	if _, err := ParsePreset("nightmare"); !errors.Is(err, ErrInvalid) {
		t.Errorf("ParsePreset(nightmare) = %v, want ErrInvalid", err)
	}
	if p, _ := ParsePreset(""); p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, want normal", p)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg != Default() {
		t.Error("marshalled config did not parse back to defaults")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
