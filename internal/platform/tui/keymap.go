package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/picklecatch/internal/core"
	"github.com/vovakirdan/picklecatch/internal/games/picklecatch"
)

// moveStep is the catcher movement per arrow key press, in canvas units.
const moveStep = 3 * core.CellW

// KeyMap defines the key bindings while playing.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Action     key.Binding
	Autopilot  key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Action, k.Autopilot, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Action},
		{k.Autopilot, k.Screenshot},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→/l", "right"),
		),
		Action: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start"),
		),
		Autopilot: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "autopilot"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// actionTrigger maps the start/restart key or a click to the trigger the
// current state accepts.
func actionTrigger(s picklecatch.State) core.Trigger {
	switch s {
	case picklecatch.StateWelcome:
		return core.TriggerStart
	case picklecatch.StateGameOver:
		return core.TriggerRestart
	default:
		return core.TriggerNone
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
