package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/picklecatch/internal/core"
)

// colorStyles maps palette roles to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorCourt:   lipgloss.NewStyle().Background(lipgloss.Color("24")),
	core.ColorLine:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("24")),
	core.ColorBall:    lipgloss.NewStyle().Foreground(lipgloss.Color("154")).Background(lipgloss.Color("24")),
	core.ColorGolden:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Background(lipgloss.Color("24")).Bold(true),
	core.ColorCatcher: lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
	core.ColorWater:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	core.ColorCap:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorText:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorAlert:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	core.ColorDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.Get(x, y).Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell := s.Get(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
