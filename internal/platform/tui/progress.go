package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/rockfall/internal/storage"
)

// ProgressKeyMap defines the key bindings for the progress board.
type ProgressKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ProgressKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ProgressKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.Back, k.Quit},
	}
}

// DefaultProgressKeyMap returns default key bindings.
func DefaultProgressKeyMap() ProgressKeyMap {
	return ProgressKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "left", "right"),
			key.WithHelp("tab", "you/everyone"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ProgressModel shows the best completion of every level.
type ProgressModel struct {
	opts      Options
	titles    []string
	everyone  bool // false: only this player's records
	best      []storage.Completion
	err       error
	table     table.Model
	help      help.Model
	keys      ProgressKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewProgressModel creates a progress board and loads its rows.
func NewProgressModel(opts Options, width, height int) ProgressModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ProgressModel{
		opts:   opts,
		titles: opts.Levels.Titles(),
		keys:   DefaultProgressKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ProgressModel) createTable() table.Model {
	columns := []table.Column{
		{Title: m.opts.tr("Level"), Width: 6},
		{Title: m.opts.tr("Title"), Width: 20},
		{Title: m.opts.tr("Ticks"), Width: 7},
		{Title: m.opts.tr("Deaths"), Width: 7},
		{Title: m.opts.tr("Player"), Width: 12},
		{Title: m.opts.tr("Date"), Width: 14},
	}

	// Give spare width to the title column
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := m.width - 8 - used; spare > 0 {
		columns[1].Width += min(spare, 20)
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

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

// load fetches the best completions for the current filter.
func (m *ProgressModel) load() {
	m.best, m.err = nil, nil
	if m.opts.Store != nil {
		player := m.opts.Player
		if m.everyone {
			player = ""
		}
		m.best, m.err = m.opts.Store.BestCompletions(m.opts.Levels.Name(), player)
	}
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

func (m ProgressModel) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.best))
	for _, c := range m.best {
		title := ""
		if c.Level >= 0 && c.Level < len(m.titles) {
			title = m.titles[c.Level]
		}
		date := ""
		if !c.CompletedAt.IsZero() {
			date = c.CompletedAt.Format("Jan 02 15:04")
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", c.Level+1),
			title,
			fmt.Sprintf("%d", c.Ticks),
			fmt.Sprintf("%d", c.Deaths),
			c.Player,
			date,
		})
	}
	return rows
}

// Init initializes the progress model.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the progress board.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.Switch):
			m.everyone = !m.everyone
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(m.rows())
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the progress board.
func (m ProgressModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(m.opts.tr("BEST TIMES")), m.width))
	b.WriteString("\n\n")

	you, all := tabStyle, activeTabStyle
	if !m.everyone {
		you, all = activeTabStyle, tabStyle
	}
	tabs := you.Render(m.opts.tr("You")) + " " + all.Render(m.opts.tr("Everyone"))
	b.WriteString(centerText(tabs, m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(boxStyle.Render(m.content()), m.width))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ProgressModel) content() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.opts.Store == nil:
		return emptyStyle.Render(m.opts.tr("Progress is not being saved."))
	case m.err != nil:
		return emptyStyle.Render(m.opts.tr("Could not load progress: %v", m.err))
	case len(m.best) == 0:
		return emptyStyle.Render(m.opts.tr("No levels completed yet.\nFinish a level to set a time!"))
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m ProgressModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ProgressModel) IsQuitting() bool {
	return m.quitting
}
