package picklecatch

import (
	"fmt"

	"github.com/vovakirdan/picklecatch/internal/core"
)

// Tier is the color class of a falling object.
type Tier string

const (
	TierNormal Tier = "normal"
	TierGolden Tier = "golden"
)

// Scene is a pure description of one frame. It is the browser wire format
// and the input of the terminal rasterizer.
type Scene struct {
	State     State           `json:"state"`
	Width     float64         `json:"w"`
	Height    float64         `json:"h"`
	Court     *Court          `json:"court,omitempty"`
	Catchers  []CatcherSprite `json:"catchers,omitempty"`
	Objects   []ObjectSprite  `json:"objects,omitempty"`
	Score     int             `json:"score"`
	Autopilot bool            `json:"autopilot"`
	PowerUpMs float64         `json:"powerUpMs"`
	Overlay   *Overlay        `json:"overlay,omitempty"`
}

// Court is the background geometry. Boundary lines run along the top, left
// and right edges; the center line is vertical.
type Court struct {
	LineWidth float64 `json:"line"`
	CenterX   float64 `json:"centerX"`
	KitchenY  float64 `json:"kitchenY"`
}

// CatcherSprite is one drawn bottle. X and Y are its top-left corner.
type CatcherSprite struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// ObjectSprite is one drawn pickleball.
type ObjectSprite struct {
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
	R     float64      `json:"r"`
	Angle float64      `json:"angle"`
	Tier  Tier         `json:"tier"`
	Holes []core.Point `json:"holes"`
	HoleR float64      `json:"holeR"`
}

// Overlay is centered text drawn over the scene.
type Overlay struct {
	Title  string   `json:"title"`
	Lines  []string `json:"lines,omitempty"`
	Prompt string   `json:"prompt"`
}

// Scene describes what to draw at time now.
func (g *Game) Scene(now float64) Scene {
	st := &g.st
	sc := Scene{
		State:     st.Session.State,
		Width:     st.Canvas.W,
		Height:    st.Canvas.H,
		Score:     st.Session.Score,
		Autopilot: st.Session.Autopilot,
		PowerUpMs: st.PowerUp.Remaining(now),
	}

	switch st.Session.State {
	case StateWelcome:
		sc.Overlay = &Overlay{
			Title:  "PickleCatch!",
			Lines:  []string{"Move mouse to control bottle", "Catch the pickleballs!"},
			Prompt: "Click or tap to start",
		}
		return sc
	case StateGameOver:
		sc.Court = g.court()
		sc.Overlay = &Overlay{
			Title:  "GAME OVER",
			Lines:  []string{fmt.Sprintf("Final Score: %d", st.Session.Score)},
			Prompt: "Click or tap to play again",
		}
		return sc
	}

	sc.Court = g.court()
	sc.Catchers = g.catcherSprites(now)
	sc.Objects = make([]ObjectSprite, 0, len(st.Objects))
	r := g.cfg.Objects.Radius
	for _, o := range st.Objects {
		tier := TierNormal
		if o.Golden {
			tier = TierGolden
		}
		sc.Objects = append(sc.Objects, ObjectSprite{
			X:     o.X,
			Y:     o.Y,
			R:     r,
			Angle: o.Angle,
			Tier:  tier,
			Holes: o.Holes(r),
			HoleR: g.cfg.Objects.HoleRadius,
		})
	}
	return sc
}

func (g *Game) court() *Court {
	return &Court{
		LineWidth: g.cfg.Court.LineWidth,
		CenterX:   g.st.Canvas.W / 2,
		KitchenY:  g.st.Canvas.H * g.cfg.Court.KitchenFraction,
	}
}

// catcherSprites returns one sprite normally, or two base-width sprites
// straddling the center while the power-up is active.
func (g *Game) catcherSprites(now float64) []CatcherSprite {
	c := g.st.Catcher
	if !g.st.PowerUp.Active {
		return []CatcherSprite{{X: c.CenterX - c.Width/2, Y: c.Y, W: c.Width, H: c.Height}}
	}

	sprites := []CatcherSprite{{X: c.CenterX - c.Width, Y: c.Y, W: c.Width, H: c.Height}}
	if g.st.PowerUp.SecondVisible(now, g.cfg.PowerUp) {
		sprites = append(sprites, CatcherSprite{X: c.CenterX, Y: c.Y, W: c.Width, H: c.Height})
	}
	return sprites
}
