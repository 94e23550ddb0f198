package tui

import (
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rockfall/internal/metrics"
	"github.com/vovakirdan/rockfall/internal/storage"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenProgress
	screenGame
)

// liveGame tracks the running game outside the copied model values, so a
// dropped SSH connection can still close the run and the metrics gauge.
type liveGame struct {
	mu      sync.Mutex
	record  *storage.Recorder
	metrics *metrics.Metrics
	active  bool
}

func (l *liveGame) start(record *storage.Recorder, m *metrics.Metrics) {
	l.end()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record, l.metrics, l.active = record, m, true
	if m != nil {
		m.SessionStarted()
	}
}

// end closes the current run as quit. A run already won keeps its outcome.
func (l *liveGame) end() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.active {
		return
	}
	l.active = false
	if l.record != nil {
		l.record.Finish(storage.OutcomeQuit)
	}
	if l.metrics != nil {
		l.metrics.SessionEnded()
	}
}

// SessionModel manages the full flow: menu -> game -> menu, with the
// progress board reachable from the menu. It is the top-level model for
// both local and SSH sessions.
type SessionModel struct {
	opts     Options
	width    int
	height   int
	screen   screenKind
	menu     MenuModel
	progress ProgressModel
	game     *GameModel
	gen      int
	live     *liveGame
	err      string // last failure to start a game
	quitting bool
}

// NewSessionModel creates a session model.
func NewSessionModel(opts Options, width, height int) SessionModel {
	return SessionModel{
		opts:   opts,
		width:  width,
		height: height,
		menu:   NewMenuModel(opts, width, height),
		live:   &liveGame{},
	}
}

// Close ends a running game, if any.
func (m SessionModel) Close() {
	m.live.end()
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenProgress:
		return m.updateProgress(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menu, ok := newMenu.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsProgress():
		m.menu.openProgress = false
		m.progress = NewProgressModel(m.opts, m.width, m.height)
		m.screen = screenProgress
		return m, m.progress.Init()

	case m.menu.Selected() != nil:
		sel := *m.menu.Selected()
		m.menu.selected = nil
		return m.startGame(sel)
	}

	return m, cmd
}

func (m SessionModel) startGame(sel Selection) (tea.Model, tea.Cmd) {
	game, record, err := m.opts.newGame(sel.Mode)
	if err != nil {
		m.opts.logger().Error("could not start game", "mode", sel.Mode, "error", err)
		m.err = err.Error()
		return m, nil
	}
	m.err = ""
	m.live.start(record, m.opts.Metrics)

	m.gen++
	gm := NewGameModel(game, m.opts.runtimeConfig(m.width, m.height, sel.Level), m.gen)
	m.game = &gm
	m.screen = screenGame
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(GameModel); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() || m.game.BackToMenu() {
		m.live.end()
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.screen = screenMenu
		cursor := m.menu.cursor
		m.menu = NewMenuModel(m.opts, m.width, m.height)
		m.menu.cursor = cursor
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m SessionModel) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.progress.Update(msg)
	if pm, ok := newModel.(ProgressModel); ok {
		m.progress = pm
	}

	if m.progress.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.progress.IsGoingBack() {
		m.screen = screenMenu
		m.menu.width, m.menu.height = m.width, m.height
		return m, nil
	}
	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenProgress:
		return m.progress.View()
	}

	view := m.menu.View()
	if m.err != "" {
		view += "\n" + centerText(m.err, m.width)
	}
	return view
}

// Run starts a local session in the alternate screen.
func Run(opts Options, width, height int) error {
	if opts.Levels == nil {
		return errors.New("tui: no levels loaded")
	}

	p := tea.NewProgram(
		NewSessionModel(opts, width, height),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if sm, ok := final.(SessionModel); ok {
		sm.Close()
	}
	return err
}
