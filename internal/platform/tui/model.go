package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/picklecatch/internal/config"
	"github.com/vovakirdan/picklecatch/internal/core"
	"github.com/vovakirdan/picklecatch/internal/games/picklecatch"
	"github.com/vovakirdan/picklecatch/internal/input"
	"github.com/vovakirdan/picklecatch/internal/replay"
	"github.com/vovakirdan/picklecatch/internal/storage"
)

// Options configures a terminal game session.
type Options struct {
	Game    config.GameConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // nil keeps replays in memory only
	Sounds  SoundPlayer    // nil plays silently
	Record  bool           // save a replay of every finished run
	Logger  *log.Logger    // nil disables logging; never log to the terminal being drawn on
}

// Model is the Bubble Tea model for a PickleCatch session.
type Model struct {
	game     *picklecatch.Game
	sampler  *input.Sampler
	recorder *replay.Recorder
	host     *termHost
	clock    *core.MonotonicClock
	screen   *core.Screen
	store    *storage.Store
	logger   *log.Logger

	keys     KeyMap
	help     help.Model
	tickRate int
	width    int
	height   int
	now      float64

	lastReplay *replay.Replay
	status     string
	quitting   bool
}

// NewModel creates a session in the welcome state sized to the runtime
// screen. The game canvas tracks the terminal from the first resize on.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	host := newTermHost(opts.Sounds)
	m := Model{
		sampler:  input.NewSampler(),
		host:     host,
		clock:    core.NewMonotonicClock(),
		screen:   core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-1, 1)),
		store:    opts.Store,
		logger:   opts.Logger,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		tickRate: cfg.TickRate,
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
	}
	if opts.Record {
		m.recorder = replay.NewRecorder()
	}
	m.game = picklecatch.New(opts.Game, m.canvas(), cfg.Seed, host)
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if m.recorder != nil {
			m.recorder.Discard()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()

	case key.Matches(msg, m.keys.Screenshot):
		m.status = m.saveScreenshot()

	case key.Matches(msg, m.keys.Left):
		m.sampler.AddDelta(-moveStep)

	case key.Matches(msg, m.keys.Right):
		m.sampler.AddDelta(moveStep)

	case key.Matches(msg, m.keys.Action):
		m.queueAction()

	case key.Matches(msg, m.keys.Autopilot):
		// Terminals report no key release, so the key latches for the
		// rest of the run.
		if m.game.State() == picklecatch.StatePlaying {
			m.sampler.ToggleKey()
		}
	}

	return m, nil
}

// handleMouse maps the pointer column to an absolute canvas position.
func (m Model) handleMouse(msg tea.MouseMsg) {
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		return
	}
	m.sampler.SetAbsolute((float64(msg.X) + 0.5) * core.CellW)
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.queueAction()
	}
}

// queueAction queues the start or restart trigger for the current state.
// A new run begins with autopilot off.
func (m Model) queueAction() {
	tr := actionTrigger(m.game.State())
	if tr == core.TriggerNone {
		return
	}
	m.sampler.SetKey(false)
	m.sampler.Trigger(tr)
}

// handleTick processes simulation ticks.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	now := m.clock.At(t)
	if now < m.now {
		now = m.now
	}
	m.now = now

	in := m.sampler.Sample()
	events := m.game.Tick(now, in)
	for _, e := range events {
		if e.Kind == picklecatch.EventRunStarted {
			m.sampler.SetKey(false)
		}
	}

	if m.recorder != nil {
		if r := m.recorder.Observe(m.game, now, in, events); r != nil {
			m.lastReplay = r
			m.status = m.saveReplay(r)
		}
	}

	cmds := m.host.drain()
	cmds = append(cmds, tickCmd(m.tickRate))
	return m, tea.Batch(cmds...)
}

// saveReplay stores a finished run and returns a status line.
func (m Model) saveReplay(r *replay.Replay) string {
	short := shortID(r.ID)
	if m.store == nil {
		return fmt.Sprintf("replay %s recorded (not saved)", short)
	}
	if err := m.store.SaveReplay(r); err != nil {
		if m.logger != nil {
			m.logger.Warn("could not save replay", "id", r.ID, "error", err)
		}
		return "replay not saved"
	}
	if m.logger != nil {
		m.logger.Info("replay saved", "id", r.ID, "score", r.Score, "ticks", r.Ticks)
	}
	return fmt.Sprintf("replay %s saved", short)
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() string {
	picklecatch.Render(m.game.Scene(m.now), m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "screenshot failed"
	}
	dir := filepath.Join(home, ".picklecatch", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "screenshot failed"
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("picklecatch_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "screenshot failed"
	}
	return "saved " + path
}

// layout fits the game screen above the footer and tells the game about
// the new canvas on its next tick.
func (m Model) layout() {
	rows := core.Max(m.height-lipgloss.Height(m.footer()), 1)
	m.screen.Resize(m.width, rows)
	size := core.CanvasFromScreen(m.width, rows)
	m.sampler.Resize(size.W, size.H)
}

func (m Model) canvas() core.Size {
	return core.CanvasFromScreen(m.screen.Width(), m.screen.Height())
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

func (m Model) footer() string {
	line := m.help.View(m.keys)
	if m.status != "" {
		line = m.status + "  " + line
	}
	return helpStyle.Render(line)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	picklecatch.Render(m.game.Scene(m.now), m.screen)
	return RenderScreen(m.screen) + "\n" + m.footer()
}

// LastReplay returns the most recent finished run, if any was recorded.
func (m Model) LastReplay() *replay.Replay {
	return m.lastReplay
}

// Run starts the Bubble Tea program with a new session and returns the
// final model.
func Run(opts Options) (Model, error) {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return model, err
	}
	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return model, nil
}
