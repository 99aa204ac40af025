package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/picklecatch/internal/games/picklecatch"
)

// SoundPlayer plays audio cues. *audio.Player implements it.
type SoundPlayer interface {
	PlaySound(kind picklecatch.SoundKind)
}

// termHost adapts the terminal to the game's Host interface. Capture
// requests become mouse-mode commands returned from the next Update.
type termHost struct {
	sounds  SoundPlayer
	pending []tea.Cmd
}

func newTermHost(sounds SoundPlayer) *termHost {
	return &termHost{sounds: sounds}
}

func (h *termHost) PlaySound(kind picklecatch.SoundKind) {
	if h.sounds != nil {
		h.sounds.PlaySound(kind)
	}
}

// RequestExclusiveInput switches to all-motion mouse reporting so the
// catcher follows the pointer without a held button.
func (h *termHost) RequestExclusiveInput() {
	h.pending = append(h.pending, tea.EnableMouseAllMotion)
}

// ReleaseExclusiveInput falls back to cell motion: clicks still arrive for
// the restart trigger.
func (h *termHost) ReleaseExclusiveInput() {
	h.pending = append(h.pending, tea.EnableMouseCellMotion)
}

func (h *termHost) drain() []tea.Cmd {
	cmds := h.pending
	h.pending = nil
	return cmds
}
