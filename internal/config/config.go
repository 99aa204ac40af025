// Package config provides YAML-based game configuration loading and
// difficulty presets for PickleCatch.
package config

// GameConfig contains all tunable parameters of the catch simulation.
// Times are in milliseconds, distances in canvas units, speeds in units per tick.
type GameConfig struct {
	Canvas  CanvasConfig  `yaml:"canvas"`
	Objects ObjectsConfig `yaml:"objects"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Golden  GoldenConfig  `yaml:"golden"`
	PowerUp PowerUpConfig `yaml:"powerup"`
	Catcher CatcherConfig `yaml:"catcher"`
	Court   CourtConfig   `yaml:"court"`
}

// CanvasConfig is the logical canvas used when a host has no natural size.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ObjectsConfig defines falling object parameters.
type ObjectsConfig struct {
	Radius           float64 `yaml:"radius"`
	BaseSpeed        float64 `yaml:"base_speed"`
	SpeedPerCatch    float64 `yaml:"speed_per_catch"`
	MaxRotationSpeed float64 `yaml:"max_rotation_speed"` // rotation is uniform in [-max, max)
	HoleRadius       float64 `yaml:"hole_radius"`
}

// SpawnConfig defines the normal burst cadence.
type SpawnConfig struct {
	InitialInterval  float64 `yaml:"initial_interval"`
	MinInterval      float64 `yaml:"min_interval"`
	DecreasePerPoint float64 `yaml:"decrease_per_point"`
	Randomness       float64 `yaml:"randomness"`
	PointsPerBurst   int     `yaml:"points_per_burst"` // burst grows by one member every N points
	BurstGapMin      float64 `yaml:"burst_gap_min"`
	BurstGapMax      float64 `yaml:"burst_gap_max"`
}

// GoldenConfig defines the golden object cadence.
type GoldenConfig struct {
	CheckInterval float64 `yaml:"check_interval"`
	Chance        float64 `yaml:"chance"`
}

// PowerUpConfig defines the double-width buff.
type PowerUpConfig struct {
	Duration        float64 `yaml:"duration"`
	WidthMultiplier float64 `yaml:"width_multiplier"`
	BlinkWindow     float64 `yaml:"blink_window"` // final stretch during which the second sprite blinks
	BlinkPeriod     float64 `yaml:"blink_period"`
}

// CatcherConfig defines catcher geometry relative to the canvas.
type CatcherConfig struct {
	WidthFraction float64 `yaml:"width_fraction"`
	AspectRatio   float64 `yaml:"aspect_ratio"` // height = width * aspect_ratio
	Margin        float64 `yaml:"margin"`
}

// CourtConfig defines the background court drawing.
type CourtConfig struct {
	LineWidth       float64 `yaml:"line_width"`
	KitchenFraction float64 `yaml:"kitchen_fraction"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", invalidf("unknown difficulty %q", s)
}
