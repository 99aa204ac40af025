package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/picklecatch/internal/core"
	"github.com/vovakirdan/picklecatch/internal/games/picklecatch"
	"github.com/vovakirdan/picklecatch/internal/replay"
)

// Playback speeds cycled by the speed key.
var watchSpeeds = []float64{1, 2, 4, 0.5}

// WatchKeyMap defines the key bindings for replay playback.
type WatchKeyMap struct {
	Pause   key.Binding
	Speed   key.Binding
	Restart key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k WatchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Speed, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k WatchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultWatchKeyMap returns default key bindings.
func DefaultWatchKeyMap() WatchKeyMap {
	return WatchKeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Speed: key.NewBinding(
			key.WithKeys("tab", "+"),
			key.WithHelp("tab", "speed"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "back"),
		),
	}
}

// WatchModel plays a recorded run back at recorded speed.
type WatchModel struct {
	replay   *replay.Replay
	playback *replay.Playback
	host     *termHost
	screen   *core.Screen

	keys     WatchKeyMap
	help     help.Model
	tickRate int

	elapsed  float64 // replay milliseconds shown so far
	last     time.Time
	speedIdx int
	paused   bool
	quitting bool
}

// NewWatchModel prepares playback of r.
func NewWatchModel(r *replay.Replay, sounds SoundPlayer, width, height, tickRate int) (WatchModel, error) {
	host := newTermHost(sounds)
	pb, err := replay.NewPlayback(r, host)
	if err != nil {
		return WatchModel{}, err
	}
	if tickRate <= 0 {
		tickRate = 60
	}
	return WatchModel{
		replay:   r,
		playback: pb,
		host:     host,
		screen:   core.NewScreen(width, core.Max(height-1, 1)),
		keys:     DefaultWatchKeyMap(),
		help:     help.New(),
		tickRate: tickRate,
	}, nil
}

// Init starts the tick loop.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Speed):
			m.speedIdx = (m.speedIdx + 1) % len(watchSpeeds)
		case key.Matches(msg, m.keys.Restart):
			if pb, err := replay.NewPlayback(m.replay, m.host); err == nil {
				m.playback = pb
				m.elapsed = 0
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, core.Max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		t := time.Time(msg)
		if !m.last.IsZero() && !m.paused {
			dt := float64(t.Sub(m.last)) / float64(time.Millisecond)
			m.elapsed += dt * watchSpeeds[m.speedIdx]
		}
		m.last = t
		m.playback.AdvanceTo(m.elapsed)
		// Recorded capture changes are not replayed into the terminal.
		m.host.drain()
		return m, tickCmd(m.tickRate)
	}

	return m, nil
}

// View renders the replayed scene and a status line.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	g := m.playback.Game()
	picklecatch.Render(g.Scene(m.playback.Now()), m.screen)

	state := fmt.Sprintf("%gx", watchSpeeds[m.speedIdx])
	switch {
	case m.playback.Done():
		state = "finished"
	case m.paused:
		state = "paused"
	}
	status := fmt.Sprintf("replay %s  score %d/%d  %s  ", shortID(m.replay.ID), g.Score(), m.replay.Score, state)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(status+m.help.View(m.keys))
}

// RunWatch plays a replay in the terminal until the user leaves.
func RunWatch(r *replay.Replay, sounds SoundPlayer, width, height, tickRate int) error {
	model, err := NewWatchModel(r, sounds, width, height, tickRate)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
