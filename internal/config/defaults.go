package config

import (
	_ "embed"
)

//go:embed defaults/picklecatch.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches defaults/picklecatch.yaml.
func Default() GameConfig {
	return GameConfig{
		Canvas: CanvasConfig{
			Width:  600,
			Height: 600,
		},
		Objects: ObjectsConfig{
			Radius:           10,
			BaseSpeed:        3,
			SpeedPerCatch:    0.05,
			MaxRotationSpeed: 0.05,
			HoleRadius:       2,
		},
		Spawn: SpawnConfig{
			InitialInterval:  3000,
			MinInterval:      1000,
			DecreasePerPoint: 20,
			Randomness:       1000,
			PointsPerBurst:   10,
			BurstGapMin:      200,
			BurstGapMax:      1000,
		},
		Golden: GoldenConfig{
			CheckInterval: 15000,
			Chance:        0.3,
		},
		PowerUp: PowerUpConfig{
			Duration:        10000,
			WidthMultiplier: 2,
			BlinkWindow:     3000,
			BlinkPeriod:     200,
		},
		Catcher: CatcherConfig{
			WidthFraction: 0.08,
			AspectRatio:   1.6,
			Margin:        10,
		},
		Court: CourtConfig{
			LineWidth:       8,
			KitchenFraction: 0.35,
		},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultYAML
}
