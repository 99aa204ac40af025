package picklecatch

import (
	"math"

	"github.com/vovakirdan/picklecatch/internal/config"
)

// PowerUp is the timed double-width buff granted by a golden catch.
type PowerUp struct {
	Active bool
	EndsAt float64
}

// Activate starts the buff, or restarts its timer when already active.
func (p *PowerUp) Activate(now, duration float64) {
	p.Active = true
	p.EndsAt = now + duration
}

// Expire switches the buff off once now has passed EndsAt.
// It reports true on the single tick the buff ends.
func (p *PowerUp) Expire(now float64) bool {
	if !p.Active || now <= p.EndsAt {
		return false
	}
	p.Active = false
	return true
}

// Remaining returns the milliseconds left, or 0 when inactive.
func (p PowerUp) Remaining(now float64) float64 {
	if !p.Active {
		return 0
	}
	return math.Max(0, p.EndsAt-now)
}

// SecondVisible reports whether the second catcher sprite is drawn.
// It blinks in alternating periods during the final blink window.
func (p PowerUp) SecondVisible(now float64, cfg config.PowerUpConfig) bool {
	if !p.Active {
		return false
	}
	remaining := p.Remaining(now)
	if remaining > cfg.BlinkWindow {
		return true
	}
	return int(remaining/cfg.BlinkPeriod)%2 == 0
}
