package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/picklecatch/internal/config"
)

var presetBlurbs = map[config.DifficultyPreset]string{
	config.DifficultyEasy:   "slower balls, longer gaps",
	config.DifficultyNormal: "the classic pace",
	config.DifficultyHard:   "fast balls, short gaps",
	config.DifficultyFixed:  "no escalation, practice mode",
}

// DifficultyModel lets users pick a difficulty preset before playing.
type DifficultyModel struct {
	presets  []config.DifficultyPreset
	cursor   int
	width    int
	height   int
	selected *config.DifficultyPreset
	quitting bool
}

// NewDifficultyModel creates a selector with the cursor on normal.
func NewDifficultyModel(width, height int) DifficultyModel {
	presets := config.Presets()
	cursor := 0
	for i, p := range presets {
		if p == config.DifficultyNormal {
			cursor = i
		}
	}
	return DifficultyModel{
		presets: presets,
		cursor:  cursor,
		width:   width,
		height:  height,
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch MapKeyToMenuAction(msg) {
		case MenuActionQuit, MenuActionBack:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(m.presets)-1 {
				m.cursor++
			}
		case MenuActionSelect:
			p := m.presets[m.cursor]
			m.selected = &p
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the preset list.
func (m DifficultyModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	var b strings.Builder
	top := max((m.height-len(m.presets)-8)/2, 0)
	b.WriteString(strings.Repeat("\n", top))
	b.WriteString(centerText("P I C K L E C A T C H", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, p := range m.presets {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-7s %s", cursor, p, presetBlurbs[p])
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen preset, or nil if the user quit.
func (m DifficultyModel) Selected() *config.DifficultyPreset {
	return m.selected
}

// RunDifficultySelector asks for a difficulty. It returns nil when the user quits.
func RunDifficultySelector(width, height int) (*config.DifficultyPreset, error) {
	p := tea.NewProgram(
		NewDifficultyModel(width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok {
		return nil, nil
	}
	return m.Selected(), nil
}
