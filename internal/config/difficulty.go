package config

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the config untouched.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Objects.BaseSpeed = 2.5
		cfg.Objects.SpeedPerCatch = 0.03
		cfg.Spawn.InitialInterval = 3500
		cfg.Spawn.MinInterval = 1400
		cfg.Spawn.DecreasePerPoint = 15
		cfg.Golden.Chance = 0.45
	case DifficultyHard:
		cfg.Objects.BaseSpeed = 4
		cfg.Objects.SpeedPerCatch = 0.08
		cfg.Spawn.InitialInterval = 2400
		cfg.Spawn.MinInterval = 700
		cfg.Spawn.DecreasePerPoint = 30
		cfg.Spawn.PointsPerBurst = 8
		cfg.Golden.Chance = 0.2
	case DifficultyFixed:
		// No escalation: speed, interval and burst size stay at their initial values.
		cfg.Objects.SpeedPerCatch = 0
		cfg.Spawn.DecreasePerPoint = 0
		cfg.Spawn.PointsPerBurst = 0
	}
}
