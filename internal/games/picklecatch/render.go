package picklecatch

import (
	"fmt"
	"math"

	"github.com/vovakirdan/picklecatch/internal/core"
)

// Visual characters for terminal rendering
const (
	LineHoriz   = '─'
	LineVert    = '│'
	LineCross   = '┼'
	CatcherChar = '█'
	WaterChar   = '▓'
	CapChar     = '▄'
)

// ballGlyphs show the ball rotation, one per quarter turn.
var ballGlyphs = [...]rune{'◐', '◓', '◑', '◒'}

// Render rasterizes a scene onto a cell screen. The scene's canvas is
// stretched to cover the whole screen.
func Render(sc Scene, scr *core.Screen) {
	scr.Clear()
	if scr.Width() == 0 || scr.Height() == 0 || sc.Width <= 0 || sc.Height <= 0 {
		return
	}
	r := rasterizer{sc: sc, scr: scr}

	if sc.Court != nil {
		r.court(*sc.Court)
	}
	for _, c := range sc.Catchers {
		r.catcher(c)
	}
	for _, o := range sc.Objects {
		r.object(o)
	}
	if sc.State == StatePlaying {
		r.hud()
	}
	if sc.Overlay != nil {
		r.overlay(*sc.Overlay)
	}
}

type rasterizer struct {
	sc  Scene
	scr *core.Screen
}

func (r rasterizer) col(x float64) int {
	return int(math.Floor(x * float64(r.scr.Width()) / r.sc.Width))
}

func (r rasterizer) row(y float64) int {
	return int(math.Floor(y * float64(r.scr.Height()) / r.sc.Height))
}

func (r rasterizer) court(c Court) {
	w, h := r.scr.Width(), r.scr.Height()
	r.scr.Fill(' ', core.ColorCourt)

	vertical := []int{0, core.Clamp(r.col(c.CenterX), 0, w-1), w - 1}
	for _, x := range vertical {
		for y := 0; y < h; y++ {
			r.scr.Set(x, y, LineVert, core.ColorLine)
		}
	}

	horizontal := []int{0, core.Clamp(r.row(c.KitchenY), 0, h-1)}
	for _, y := range horizontal {
		for x := 0; x < w; x++ {
			ch := rune(LineHoriz)
			if r.scr.Get(x, y).Rune == LineVert {
				ch = LineCross
			}
			r.scr.Set(x, y, ch, core.ColorLine)
		}
	}
}

func (r rasterizer) catcher(c CatcherSprite) {
	left, right := r.col(c.X), r.col(c.X+c.W)
	if right <= left {
		right = left + 1
	}
	top, bottom := r.row(c.Y), r.row(c.Y+c.H)
	if bottom <= top {
		bottom = top + 1
	}

	body := core.NewRect(left, top, right-left, bottom-top)
	r.scr.DrawRect(body, CatcherChar, core.ColorCatcher)

	// Water fills the lower part of the bottle, cap sits above it.
	waterTop := top + (bottom-top)*3/10
	if body.W > 2 && waterTop < bottom {
		r.scr.DrawRect(core.NewRect(left+1, waterTop, body.W-2, bottom-waterTop), WaterChar, core.ColorWater)
	}
	capW := core.Max(body.W/2, 1)
	r.scr.DrawRect(core.NewRect(left+(body.W-capW)/2, top-1, capW, 1), CapChar, core.ColorCap)
}

func (r rasterizer) object(o ObjectSprite) {
	color := core.ColorBall
	if o.Tier == TierGolden {
		color = core.ColorGolden
	}
	r.scr.Set(r.col(o.X), r.row(o.Y), ballGlyph(o.Angle), color)
}

// ballGlyph picks a half-disc glyph for the ball's rotation.
func ballGlyph(angle float64) rune {
	turn := math.Mod(angle, 2*math.Pi)
	if turn < 0 {
		turn += 2 * math.Pi
	}
	idx := int(turn/(math.Pi/2)) % len(ballGlyphs)
	return ballGlyphs[idx]
}

func (r rasterizer) hud() {
	r.scr.DrawText(2, 1, fmt.Sprintf("Score: %d", r.sc.Score), core.ColorText)

	status := ""
	if r.sc.PowerUpMs > 0 {
		status = fmt.Sprintf("2x %.1fs", r.sc.PowerUpMs/1000)
	}
	if r.sc.Autopilot {
		status += " CPU"
	}
	if status != "" {
		r.scr.DrawText(r.scr.Width()-len(status)-2, 1, status, core.ColorText)
	}
}

func (r rasterizer) overlay(o Overlay) {
	mid := r.scr.Height() / 2
	titleColor := core.ColorText
	if r.sc.State == StateGameOver {
		titleColor = core.ColorAlert
	}

	r.scr.DrawTextCentered(mid-3, o.Title, titleColor)
	for i, line := range o.Lines {
		r.scr.DrawTextCentered(mid-1+i, line, core.ColorText)
	}
	r.scr.DrawTextCentered(mid+len(o.Lines)+1, o.Prompt, core.ColorDim)
}
