package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/picklecatch/internal/replay"
	"github.com/vovakirdan/picklecatch/internal/storage"
)

const maxReplays = 100 // Max replays to load

// ReplaysKeyMap defines the key bindings for the replay browser.
type ReplaysKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Watch  key.Binding
	Verify key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Watch, k.Verify, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Watch, k.Verify, k.Delete},
		{k.Quit},
	}
}

// DefaultReplaysKeyMap returns default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Watch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Verify: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysModel is the Bubble Tea model for browsing stored replays.
type ReplaysModel struct {
	store    *storage.Store
	replays  []storage.ReplayInfo
	table    table.Model
	help     help.Model
	keys     ReplaysKeyMap
	width    int
	height   int
	status   string
	selected *replay.Replay // set when the user picks a replay to watch
	quitting bool
}

// NewReplaysModel creates a replay browser over store.
func NewReplaysModel(store *storage.Store, width, height int) ReplaysModel {
	h := help.New()
	h.ShowAll = false

	m := ReplaysModel{
		store:  store,
		keys:   DefaultReplaysKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadReplays()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ReplaysModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "Seed", Width: 12},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadReplays reloads the replay list from the store.
func (m *ReplaysModel) loadReplays() {
	m.replays = nil
	if m.store != nil {
		infos, err := m.store.ListReplays(maxReplays)
		if err != nil {
			m.status = "cannot load replays"
		} else {
			m.replays = infos
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current replays.
func (m *ReplaysModel) updateTableRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		rows[i] = table.Row{
			shortID(r.ID),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%.1fs", r.Duration().Seconds()),
			fmt.Sprintf("%d", r.Seed),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoBottom()
	}
}

func (m ReplaysModel) current() (storage.ReplayInfo, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return storage.ReplayInfo{}, false
	}
	return m.replays[i], true
}

// Init initializes the replay browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Watch):
			info, ok := m.current()
			if !ok {
				return m, nil
			}
			r, err := m.store.Replay(info.ID)
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.selected = r
			return m, tea.Quit

		case key.Matches(msg, m.keys.Verify):
			m.status = m.verifyCurrent()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			info, ok := m.current()
			if !ok {
				return m, nil
			}
			if err := m.store.DeleteReplay(info.ID); err != nil {
				m.status = err.Error()
			} else {
				m.status = "deleted " + shortID(info.ID)
			}
			m.loadReplays()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(min(cursor, max(len(m.replays)-1, 0)))
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ReplaysModel) verifyCurrent() string {
	info, ok := m.current()
	if !ok {
		return ""
	}
	r, err := m.store.Replay(info.ID)
	if err != nil {
		return err.Error()
	}
	if err := replay.Verify(r); err != nil {
		if errors.Is(err, replay.ErrMismatch) {
			return shortID(info.ID) + " FAILED: " + err.Error()
		}
		return err.Error()
	}
	return shortID(info.ID) + " verified"
}

// View renders the replay browser.
func (m ReplaysModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText(fmt.Sprintf("REPLAYS (%d)", len(m.replays)), m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ReplaysModel) renderTableContent() string {
	if len(m.replays) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No replays recorded yet.\nPlay with --record to keep your runs!")
	}

	return m.table.View()
}

// Selected returns the replay the user chose to watch, or nil.
func (m ReplaysModel) Selected() *replay.Replay {
	return m.selected
}

// centerText centers each line of text within the given width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		pad := (width - lipgloss.Width(line)) / 2
		if pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}

// RunReplayBrowser runs the replay browser and returns the replay picked
// for watching, or nil when the user quit.
func RunReplayBrowser(store *storage.Store, width, height int) (*replay.Replay, error) {
	model := NewReplaysModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(ReplaysModel)
	if !ok {
		return nil, nil
	}
	return m.Selected(), nil
}
