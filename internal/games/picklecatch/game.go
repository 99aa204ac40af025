package picklecatch

import (
	"github.com/vovakirdan/picklecatch/internal/config"
	"github.com/vovakirdan/picklecatch/internal/core"
)

// Game is the controller. It owns the GameState aggregate and runs the
// welcome -> playing -> gameOver -> playing state machine one tick at a time.
type Game struct {
	cfg      config.GameConfig
	host     Host
	baseSeed int64
	spawner  *Spawner

	st       GameState
	captured bool   // exclusive pointer input held
	runTicks uint64 // playing ticks in the current run

	events []Event // collected during the current tick
}

// New creates a game in the welcome state.
// An invalid canvas falls back to the configured canvas size.
func New(cfg config.GameConfig, canvas core.Size, seed int64, host Host) *Game {
	if host == nil {
		host = NopHost{}
	}
	if !canvas.Valid() {
		canvas = core.Size{W: cfg.Canvas.Width, H: cfg.Canvas.Height}
	}

	g := &Game{
		cfg:      cfg,
		host:     host,
		baseSeed: seed,
		spawner:  NewSpawner(cfg, seed),
	}
	g.st.Canvas = canvas
	g.st.Session = Session{
		State:       StateWelcome,
		ObjectSpeed: cfg.Objects.BaseSpeed,
	}
	g.st.Catcher.Layout(canvas, cfg.Catcher)
	g.st.Catcher.CenterX = canvas.W / 2
	g.spawner.Reset(&g.st.Schedule, 0)
	return g
}

// SetHost replaces the collaborator receiving sounds and capture requests.
func (g *Game) SetHost(h Host) {
	if h == nil {
		h = NopHost{}
	}
	g.host = h
}

// Config returns the configuration the game runs with.
func (g *Game) Config() config.GameConfig {
	return g.cfg
}

// State returns the controller state.
func (g *Game) State() State {
	return g.st.Session.State
}

// Score returns the current run's score.
func (g *Game) Score() int {
	return g.st.Session.Score
}

// Canvas returns the current canvas size.
func (g *Game) Canvas() core.Size {
	return g.st.Canvas
}

// Captured reports whether the game currently holds exclusive pointer input.
func (g *Game) Captured() bool {
	return g.captured
}

// RunTicks returns the number of playing ticks in the current run.
func (g *Game) RunTicks() uint64 {
	return g.runTicks
}

// Session returns a copy of the session scalars.
func (g *Game) Session() Session {
	return g.st.Session
}

// Tick advances the simulation to now using one coalesced input sample and
// returns the events it produced.
func (g *Game) Tick(now float64, in core.InputSample) []Event {
	g.events = nil

	if in.Resize != nil {
		g.Resize(*in.Resize)
	}

	for _, tr := range in.Triggers {
		g.handleTrigger(now, tr)
	}

	if g.st.Session.State == StatePlaying {
		g.step(now, in)
	}

	return g.events
}

// StartRunWithSeed begins a run immediately with an explicit seed,
// regardless of the current state. Replays use it to reproduce a run.
func (g *Game) StartRunWithSeed(now float64, seed int64) []Event {
	g.events = nil
	g.beginRun(now, seed)
	return g.events
}

// Resize applies a new canvas size. Invalid sizes are ignored.
func (g *Game) Resize(size core.Size) {
	if !size.Valid() {
		return
	}
	g.st.Canvas = size
	g.st.Catcher.Layout(size, g.cfg.Catcher)
	g.clampCatcher()
}

func (g *Game) handleTrigger(now float64, tr core.Trigger) {
	switch {
	case tr == core.TriggerStart && g.st.Session.State == StateWelcome:
		g.beginRun(now, g.baseSeed+int64(g.st.Session.Run))
	case tr == core.TriggerRestart && g.st.Session.State == StateGameOver:
		g.beginRun(now, g.baseSeed+int64(g.st.Session.Run))
	}
}

// beginRun resets the session, entity store, schedule and power-up and
// enters playing.
func (g *Game) beginRun(now float64, seed int64) {
	g.spawner.Reseed(seed)

	run := g.st.Session.Run + 1
	g.st.Session = Session{
		State:        StatePlaying,
		ObjectSpeed:  g.cfg.Objects.BaseSpeed,
		Run:          run,
		RunStartedAt: now,
	}
	g.st.Objects = nil
	g.st.PowerUp = PowerUp{}
	g.spawner.Reset(&g.st.Schedule, now)
	g.st.Catcher.CenterX = g.st.Canvas.W / 2
	g.clampCatcher()
	g.runTicks = 0

	g.emit(Event{Kind: EventRunStarted, At: now, Seed: seed})
	g.requestCapture(now)
}

// step runs one playing tick.
func (g *Game) step(now float64, in core.InputSample) {
	g.runTicks++
	st := &g.st

	// 1. Manual input, ignored while autopilot is held.
	st.Session.Autopilot = in.Autopilot
	if !st.Session.Autopilot {
		st.Catcher = applyInput(st.Catcher, in, g.captured)
	}
	g.clampCatcher()

	// 2. Autopilot.
	if st.Session.Autopilot {
		if x, ok := autopilotTarget(st.Objects, st.Catcher.Y); ok {
			st.Catcher.CenterX = x
			g.clampCatcher()
		}
	}

	// 3. Power-up expiry.
	if st.PowerUp.Expire(now) {
		g.emit(Event{Kind: EventPowerUpEnded, At: now, Score: st.Session.Score})
	}

	// 4. Physics and collision.
	if g.advanceObjects(now) {
		g.clampCatcher()
	}

	// 5. Spawning, unless the run just ended.
	if st.Session.State == StatePlaying {
		g.runSpawner(now)
	}
}

func (g *Game) runSpawner(now float64) {
	st := &g.st
	for _, o := range g.spawner.Update(&st.Schedule, st.Session.Score, st.Canvas.W, now) {
		st.Objects = append(st.Objects, o)
		g.emit(Event{Kind: EventSpawned, At: now, Golden: o.Golden, Score: st.Session.Score})
		if o.Golden {
			g.playSound(now, SoundGoldenSpawn)
		} else {
			g.playSound(now, SoundPop)
		}
	}
}

func (g *Game) clampCatcher() {
	g.st.Catcher.Clamp(g.st.Canvas.W, g.st.EffectiveWidth(g.cfg.PowerUp))
}

func (g *Game) requestCapture(now float64) {
	g.captured = true
	g.host.RequestExclusiveInput()
	g.emit(Event{Kind: EventCaptureRequested, At: now})
}

func (g *Game) releaseCapture(now float64) {
	g.captured = false
	g.host.ReleaseExclusiveInput()
	g.emit(Event{Kind: EventCaptureReleased, At: now})
}

func (g *Game) playSound(now float64, kind SoundKind) {
	g.host.PlaySound(kind)
	g.emit(Event{Kind: EventSound, At: now, Sound: kind})
}

func (g *Game) emit(e Event) {
	g.events = append(g.events, e)
}
