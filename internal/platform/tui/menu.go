package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/rockfall/internal/registry"
)

// Selection is what the player picked in the menu.
type Selection struct {
	Mode  string
	Level int // 0-based
}

// MenuModel is the level picker shown before play.
// Up/Down pick a level, Left/Right switch the rule mode.
type MenuModel struct {
	opts         Options
	levels       []string
	modes        []registry.Info
	cursor       int
	modeCursor   int
	width        int
	height       int
	keyMapper    *KeyMapper
	quitting     bool
	selected     *Selection
	openProgress bool
}

// NewMenuModel creates a level picker.
func NewMenuModel(opts Options, width, height int) MenuModel {
	modes := registry.List()
	modeCursor := 0
	for i, info := range modes {
		if info.ID == opts.mode() {
			modeCursor = i
		}
	}

	levels := opts.Levels.Titles()
	for i, title := range levels {
		if title == "" {
			levels[i] = opts.tr("Level %d", i+1)
		}
	}

	cursor := opts.StartLevel
	if cursor < 0 || cursor >= len(levels) {
		cursor = 0
	}

	return MenuModel{
		opts:       opts,
		levels:     levels,
		modes:      modes,
		cursor:     cursor,
		modeCursor: modeCursor,
		width:      width,
		height:     height,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}
	case MenuActionLeft:
		if len(m.modes) > 0 {
			m.modeCursor = (m.modeCursor + len(m.modes) - 1) % len(m.modes)
		}
	case MenuActionRight:
		if len(m.modes) > 0 {
			m.modeCursor = (m.modeCursor + 1) % len(m.modes)
		}
	case MenuActionSelect:
		if len(m.levels) > 0 && len(m.modes) > 0 {
			m.selected = &Selection{Mode: m.modes[m.modeCursor].ID, Level: m.cursor}
		}
	case MenuActionProgress:
		m.openProgress = true
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("R O C K F A L L"), m.width))
	b.WriteString("\n\n")

	if len(m.modes) > 0 {
		mode := fmt.Sprintf("< %s >", m.modes[m.modeCursor].Title)
		b.WriteString(centerText(mode, m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(centerText(m.opts.tr("Select a level:"), m.width))
	b.WriteString("\n\n")

	first, last := m.window()
	for i := first; i < last; i++ {
		line := fmt.Sprintf("  %2d. %s", i+1, m.levels[i])
		if i == m.cursor {
			line = activeStyle.Render(fmt.Sprintf("> %2d. %s", i+1, m.levels[i]))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := m.opts.tr("Up/Down: Level  |  Left/Right: Rules  |  Enter: Play  |  Tab: Progress  |  Q: Quit")
	b.WriteString(centerText(dimStyle.Render(help), m.width))
	b.WriteString("\n")

	return b.String()
}

// window returns the range of levels that fits on screen around the cursor.
func (m MenuModel) window() (first, last int) {
	rows := m.height - 10
	if rows < 3 {
		rows = 3
	}
	if len(m.levels) <= rows {
		return 0, len(m.levels)
	}
	first = m.cursor - rows/2
	if first < 0 {
		first = 0
	}
	if first+rows > len(m.levels) {
		first = len(m.levels) - rows
	}
	return first, first + rows
}

// Selected returns the selection, or nil if none was made.
func (m MenuModel) Selected() *Selection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsProgress returns true if user asked for the progress board.
func (m MenuModel) WantsProgress() bool {
	return m.openProgress
}
