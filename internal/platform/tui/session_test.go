package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rockfall/internal/core"
	_ "github.com/vovakirdan/rockfall/internal/games/rockfall"
	"github.com/vovakirdan/rockfall/internal/storage"
	"github.com/vovakirdan/rockfall/internal/world"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	tpl, err := world.ParseTemplate("W* \n   \n###")
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	set, err := world.NewNamedLevelSet("test", tpl.WithTitle("Tiny"), tpl.WithTitle("Tiny again"))
	if err != nil {
		t.Fatalf("NewNamedLevelSet: %v", err)
	}
	return Options{
		Levels:             set,
		Rules:              world.DefaultRules(),
		TickRate:           8,
		DeathPauseTicks:    1,
		CompletePauseTicks: 1,
		Player:             "tester",
	}
}

func send(m tea.Model, msgs ...tea.Msg) tea.Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestMenuSelectsLevelAndMode(t *testing.T) {
	m := NewMenuModel(testOptions(t), 80, 24)

	updated := send(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	menu := updated.(MenuModel)

	sel := menu.Selected()
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if sel.Level != 1 {
		t.Errorf("level = %d, expected 1", sel.Level)
	}
	if sel.Mode == "" {
		t.Error("mode should be set")
	}
	if !strings.Contains(menu.View(), "Tiny again") {
		t.Error("menu should list level titles")
	}
}

func TestMenuStartsAtConfiguredLevel(t *testing.T) {
	opts := testOptions(t)
	opts.StartLevel = 1
	m := NewMenuModel(opts, 80, 24)
	if m.cursor != 1 {
		t.Errorf("cursor = %d, expected 1", m.cursor)
	}

	opts.StartLevel = 7
	if m := NewMenuModel(opts, 80, 24); m.cursor != 0 {
		t.Errorf("out-of-range start should fall back to 0, got %d", m.cursor)
	}
}

func TestSessionFlow(t *testing.T) {
	var m tea.Model = NewSessionModel(testOptions(t), 60, 12)

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	sm := m.(SessionModel)
	if sm.screen != screenGame || sm.game == nil {
		t.Fatalf("expected game screen, got %v", sm.screen)
	}

	// Ticks from an older loop are ignored
	m = send(sm, TickMsg{Gen: sm.gen - 1})
	if m.(SessionModel).game.State().Ticks != 0 {
		t.Error("stale tick should not step the game")
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyRight}, TickMsg{Gen: sm.gen})
	sm = m.(SessionModel)
	if sm.game.State().Diamonds != 0 {
		t.Fatalf("expected the diamond collected, state %+v", sm.game.State())
	}
	if !strings.Contains(sm.View(), "Level complete") {
		t.Errorf("view should announce completion:\n%s", sm.View())
	}

	// Pause, then back to the menu
	m = send(m, TickMsg{Gen: sm.gen}, TickMsg{Gen: sm.gen}, runeKey("p"), TickMsg{Gen: sm.gen}, tea.KeyMsg{Type: tea.KeyEsc})
	sm = m.(SessionModel)
	if sm.screen != screenMenu {
		t.Fatalf("expected menu after esc while paused, got %v", sm.screen)
	}
}

func TestSessionQuit(t *testing.T) {
	var m tea.Model = NewSessionModel(testOptions(t), 60, 12)
	m, cmd := m.Update(runeKey("q"))
	if !m.(SessionModel).quitting || cmd == nil {
		t.Error("q in the menu should quit")
	}
	if m.View() != "" {
		t.Error("quitting view should be empty")
	}
}

func TestProgressBoard(t *testing.T) {
	opts := testOptions(t)

	// Without storage the board explains itself
	pm := NewProgressModel(opts, 80, 24)
	if !strings.Contains(pm.View(), "not being saved") {
		t.Errorf("view = %q", pm.View())
	}

	store, err := storage.Open(t.TempDir() + "/progress.db")
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()
	opts.Store = store

	if _, err := store.RecordCompletion(storage.Completion{RunID: "r", LevelSet: "test", Player: "tester", Level: 1, Ticks: 7}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.RecordCompletion(storage.Completion{RunID: "r2", LevelSet: "test", Player: "other", Level: 0, Ticks: 3}); err != nil {
		t.Fatal(err)
	}

	pm = NewProgressModel(opts, 100, 24)
	if len(pm.best) != 1 || pm.best[0].Level != 1 {
		t.Fatalf("own best = %+v", pm.best)
	}

	updated, _ := pm.Update(tea.KeyMsg{Type: tea.KeyTab})
	pm = updated.(ProgressModel)
	if len(pm.best) != 2 {
		t.Errorf("everyone's best = %+v", pm.best)
	}

	updated, _ = pm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !updated.(ProgressModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawTextColored(0, 1, "wxyz", core.ColorBrown)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(out, "ab") || !strings.Contains(out, "cd") || !strings.Contains(out, "wxyz") {
		t.Errorf("rendered text lost content: %q", out)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q", got)
	}
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("centerText should not trim, got %q", got)
	}
}
