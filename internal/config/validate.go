package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned (wrapped) for configurations the game cannot run with.
var ErrInvalid = errors.New("invalid config")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("config: %w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks that every parameter is usable by the simulation.
func (c GameConfig) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return invalidf("canvas must be positive, got %vx%v", c.Canvas.Width, c.Canvas.Height)
	case c.Objects.Radius <= 0:
		return invalidf("objects.radius must be positive")
	case c.Objects.BaseSpeed <= 0:
		return invalidf("objects.base_speed must be positive")
	case c.Objects.SpeedPerCatch < 0:
		return invalidf("objects.speed_per_catch must not be negative")
	case c.Spawn.MinInterval < 0 || c.Spawn.InitialInterval < c.Spawn.MinInterval:
		return invalidf("spawn intervals must satisfy 0 <= min_interval <= initial_interval")
	case c.Spawn.DecreasePerPoint < 0:
		return invalidf("spawn.decrease_per_point must not be negative")
	case c.Spawn.PointsPerBurst < 0:
		return invalidf("spawn.points_per_burst must not be negative")
	case c.Spawn.BurstGapMin < 0 || c.Spawn.BurstGapMax < c.Spawn.BurstGapMin:
		return invalidf("spawn burst gaps must satisfy 0 <= burst_gap_min <= burst_gap_max")
	case c.Golden.CheckInterval <= 0:
		return invalidf("golden.check_interval must be positive")
	case c.Golden.Chance < 0 || c.Golden.Chance > 1:
		return invalidf("golden.chance must be within [0, 1]")
	case c.PowerUp.Duration <= 0 || c.PowerUp.WidthMultiplier < 1:
		return invalidf("powerup needs a positive duration and width_multiplier >= 1")
	case c.PowerUp.BlinkPeriod <= 0:
		return invalidf("powerup.blink_period must be positive")
	case c.Catcher.WidthFraction <= 0 || c.Catcher.WidthFraction > 0.5:
		return invalidf("catcher.width_fraction must be within (0, 0.5]")
	case c.Catcher.AspectRatio <= 0:
		return invalidf("catcher.aspect_ratio must be positive")
	case c.Court.KitchenFraction < 0 || c.Court.KitchenFraction > 1:
		return invalidf("court.kitchen_fraction must be within [0, 1]")
	}
	return nil
}
