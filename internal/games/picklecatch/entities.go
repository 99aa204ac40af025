package picklecatch

import (
	"math"

	"github.com/vovakirdan/picklecatch/internal/config"
	"github.com/vovakirdan/picklecatch/internal/core"
)

// FallingObject is a pickleball in flight.
type FallingObject struct {
	X, Y          float64
	Angle         float64 // radians, cosmetic only
	RotationSpeed float64 // radians per tick
	Golden        bool
}

// Advance moves the object one tick down at the given speed.
func (o *FallingObject) Advance(speed float64) {
	o.Y += speed
	o.Angle += o.RotationSpeed
}

// holeOffsets are the decoration holes relative to the ball center, in radii.
var holeOffsets = [...]core.Point{
	{X: 0, Y: -0.6},
	{X: 0.5, Y: 0.2},
	{X: -0.5, Y: 0.2},
	{X: 0, Y: 0.7},
}

// Holes returns the absolute positions of the decoration holes.
func (o FallingObject) Holes(radius float64) []core.Point {
	holes := make([]core.Point, len(holeOffsets))
	center := core.Point{X: o.X, Y: o.Y}
	for i, h := range holeOffsets {
		off := core.Point{X: h.X * radius, Y: h.Y * radius}
		holes[i] = center.Add(off.Rotate(o.Angle))
	}
	return holes
}

// Catcher is the player-controlled bottle.
type Catcher struct {
	CenterX float64
	Width   float64 // base width
	Height  float64 // Width * aspect ratio
	Y       float64 // top edge, the catch line
}

// Layout recomputes catcher geometry for a canvas. The center is kept.
func (c *Catcher) Layout(canvas core.Size, cfg config.CatcherConfig) {
	c.Width = canvas.W * cfg.WidthFraction
	c.Height = c.Width * cfg.AspectRatio
	c.Y = canvas.H - c.Height - cfg.Margin
}

// Clamp keeps the effective catch zone inside [0, canvasW].
func (c *Catcher) Clamp(canvasW, effectiveWidth float64) {
	half := effectiveWidth / 2
	c.CenterX = core.ClampF(c.CenterX, half, canvasW-half)
}

// Overlaps reports whether an object touches the catch zone.
// The horizontal bounds are strict; there is no lower bound on y.
func (c Catcher) Overlaps(o FallingObject, radius, effectiveWidth float64) bool {
	half := effectiveWidth / 2
	return o.X > c.CenterX-half && o.X < c.CenterX+half && o.Y+radius > c.Y
}

// Session holds per-run scalars.
type Session struct {
	Score        int
	ObjectSpeed  float64
	State        State
	Autopilot    bool
	Run          int // runs started since creation
	RunStartedAt float64
}

// GameState is the complete mutable simulation state.
type GameState struct {
	Canvas   core.Size
	Objects  []FallingObject
	Catcher  Catcher
	PowerUp  PowerUp
	Schedule SpawnSchedule
	Session  Session
}

// EffectiveWidth returns the current catch-zone width.
func (s *GameState) EffectiveWidth(cfg config.PowerUpConfig) float64 {
	if s.PowerUp.Active {
		return s.Catcher.Width * cfg.WidthMultiplier
	}
	return s.Catcher.Width
}

// spawnX picks a spawn x in [r, w-r]. Narrower canvases spawn at the middle.
func spawnX(u, canvasW, radius float64) float64 {
	span := canvasW - 2*radius
	if span <= 0 {
		return canvasW / 2
	}
	return u*span + radius
}

// newObject builds a falling object from three uniform samples in [0, 1).
func newObject(ux, uAngle, uRot, canvasW float64, cfg config.ObjectsConfig, golden bool) FallingObject {
	return FallingObject{
		X:             spawnX(ux, canvasW, cfg.Radius),
		Y:             -cfg.Radius,
		Angle:         uAngle * 2 * math.Pi,
		RotationSpeed: (uRot - 0.5) * 2 * cfg.MaxRotationSpeed,
		Golden:        golden,
	}
}
