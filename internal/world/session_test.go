package world_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/rockfall/internal/world"
)

func oneDiamond(t *testing.T) *world.Template {
	return level(t,
		"W* ",
		"   ",
		"###",
	)
}

func TestNewLevelSetRejectsEmpty(t *testing.T) {
	if _, err := world.NewLevelSet(); !errors.Is(err, world.ErrNoLevels) {
		t.Errorf("expected ErrNoLevels, got %v", err)
	}
}

func TestNewSessionRejectsBadStart(t *testing.T) {
	set, err := world.NewLevelSet(oneDiamond(t))
	if err != nil {
		t.Fatal(err)
	}
	for _, start := range []int{-1, 1} {
		if _, err := world.NewSession(set, start, world.DefaultRules()); !errors.Is(err, world.ErrLevelRange) {
			t.Errorf("start %d: expected ErrLevelRange, got %v", start, err)
		}
	}
}

func TestSessionStartsFromTemplate(t *testing.T) {
	tpl := oneDiamond(t)
	s := session(t, world.DefaultRules(), tpl)

	if s.State() != world.Playing {
		t.Errorf("state = %v, want playing", s.State())
	}
	if s.Position() != tpl.Start {
		t.Errorf("position = %v, want %v", s.Position(), tpl.Start)
	}
	if s.DiamondsRemaining() != 1 {
		t.Errorf("diamonds = %d, want 1", s.DiamondsRemaining())
	}
	if !s.Snapshot().Equal(tpl.Grid) {
		t.Error("working grid differs from template")
	}
	if s.LevelIndex() != 0 || s.LevelCount() != 1 {
		t.Errorf("level %d/%d", s.LevelIndex(), s.LevelCount())
	}
}

func TestSessionDoesNotMutateTemplate(t *testing.T) {
	tpl := oneDiamond(t)
	pristine := tpl.Grid.Clone()
	s := session(t, world.DefaultRules(), tpl, oneDiamond(t))

	s.Step(world.Right)
	if !tpl.Grid.Equal(pristine) {
		t.Error("playing mutated the template grid")
	}
}

func TestLevelCompletionAndAdvance(t *testing.T) {
	s := session(t, world.DefaultRules(), oneDiamond(t), oneDiamond(t))

	res := s.Step(world.Right)
	if !res.Moved || !res.LevelComplete || res.GameComplete {
		t.Fatalf("step = %+v, want level complete", res)
	}
	if s.State() != world.LevelComplete {
		t.Fatalf("state = %v", s.State())
	}

	// Nothing happens until the host advances
	again := s.Step(world.Down)
	if again.Moved || len(again.Events) != 0 || !again.LevelComplete {
		t.Errorf("step outside playing = %+v", again)
	}

	if err := s.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if s.LevelIndex() != 1 || s.State() != world.Playing || s.DiamondsRemaining() != 1 {
		t.Fatalf("after advance: level %d state %v diamonds %d",
			s.LevelIndex(), s.State(), s.DiamondsRemaining())
	}

	res = s.Step(world.Right)
	if !res.GameComplete || res.LevelComplete {
		t.Fatalf("last level step = %+v, want game complete", res)
	}
	if err := s.Advance(); !errors.Is(err, world.ErrGameComplete) {
		t.Errorf("Advance after game complete: %v", err)
	}
	if err := s.Restart(); !errors.Is(err, world.ErrGameComplete) {
		t.Errorf("Restart after game complete: %v", err)
	}
}

func TestAdvanceWhilePlayingFails(t *testing.T) {
	s := session(t, world.DefaultRules(), oneDiamond(t), oneDiamond(t))
	if err := s.Advance(); !errors.Is(err, world.ErrState) {
		t.Errorf("expected ErrState, got %v", err)
	}
}

func TestCrushKillsPlayer(t *testing.T) {
	s := session(t, world.DefaultRules(), level(t,
		"  @ *",
		"     ",
		"  W  ",
		"#####",
		"#####",
	))

	if res := s.Step(world.None); res.Died {
		t.Fatal("died one tick early")
	}
	res := s.Step(world.None)
	if !res.Died || s.State() != world.Dead || !s.Dead() {
		t.Fatalf("expected death, got %+v state %v", res, s.State())
	}
	if s.Deaths() != 1 {
		t.Errorf("deaths = %d, want 1", s.Deaths())
	}

	crushed := false
	for _, e := range res.Events {
		if e.Kind == world.EventCrush {
			crushed = true
		}
	}
	if !crushed {
		t.Errorf("no crush event in %v", res.Events)
	}
}

func TestDeathWinsOverCompletion(t *testing.T) {
	s := session(t, world.DefaultRules(), level(t,
		"   ",
		" @ ",
		"W* ",
	))

	res := s.Step(world.Right)

	if !res.Died || res.LevelComplete || res.GameComplete {
		t.Fatalf("step = %+v, want death only", res)
	}
	if s.DiamondsRemaining() != 0 {
		t.Errorf("diamond should still count as collected, remaining %d", s.DiamondsRemaining())
	}
}

func TestKeyKeepsDiamondCount(t *testing.T) {
	s := session(t, world.DefaultRules(), level(t,
		"WK$",
		"$ *",
		"###",
	))
	if s.DiamondsRemaining() != 3 {
		t.Fatalf("diamonds = %d, want 3", s.DiamondsRemaining())
	}

	res := s.Step(world.Right)

	if s.DiamondsRemaining() != 3 {
		t.Errorf("diamonds after key = %d, want 3", s.DiamondsRemaining())
	}
	if len(res.Events) == 0 || res.Events[0].Kind != world.EventUnlock || res.Events[0].Count != 2 {
		t.Errorf("events = %v, want unlock(2) first", res.Events)
	}
}

func TestAbandonAndRestart(t *testing.T) {
	tpl := level(t,
		"W..*",
		"####",
		"    ",
		"    ",
	)
	s := session(t, world.DefaultRules(), tpl)

	s.Step(world.Right)
	s.Step(world.Right)

	if !s.Abandon() {
		t.Fatal("Abandon should succeed while playing")
	}
	if s.State() != world.Dead {
		t.Fatalf("state = %v, want dead", s.State())
	}
	if s.Abandon() {
		t.Error("Abandon should fail when already dead")
	}

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if s.State() != world.Playing || s.Dead() {
		t.Errorf("state = %v dead = %v", s.State(), s.Dead())
	}
	if s.Position() != tpl.Start || !s.Snapshot().Equal(tpl.Grid) {
		t.Error("restart did not reload the template")
	}
	if s.Deaths() != 1 {
		t.Errorf("deaths = %d, want 1", s.Deaths())
	}
	if s.Ticks() != 2 {
		t.Errorf("ticks = %d, want 2", s.Ticks())
	}
}

func TestCheckpoint(t *testing.T) {
	s := session(t, world.DefaultRules(), level(t,
		"W..*",
		"####",
		"    ",
		"    ",
	))

	s.Step(world.Right)
	if !s.SavePosition() {
		t.Fatal("SavePosition failed")
	}
	s.Step(world.Right)

	if !s.LoadPosition() {
		t.Fatal("LoadPosition failed")
	}
	if s.Position() != world.P(1, 0) {
		t.Errorf("position = %v, want (1,0)", s.Position())
	}
	if s.Tile(2, 0) != world.Earth {
		t.Errorf("tile (2,0) = %v, want Earth", s.Tile(2, 0))
	}

	// Retry from checkpoint after death
	s.Step(world.Right)
	s.Abandon()
	if !s.LoadPosition() {
		t.Fatal("LoadPosition after death failed")
	}
	if s.State() != world.Playing || s.Position() != world.P(1, 0) {
		t.Errorf("after retry: state %v position %v", s.State(), s.Position())
	}

	// Restart keeps the checkpoint
	if err := s.Restart(); err != nil {
		t.Fatal(err)
	}
	s.LoadPosition()
	if s.Position() != world.P(1, 0) {
		t.Errorf("checkpoint lost on restart, position %v", s.Position())
	}
}

func TestCheckpointResetsOnAdvance(t *testing.T) {
	second := level(t,
		"W.*",
		"###",
		"   ",
	)
	s := session(t, world.DefaultRules(), oneDiamond(t), second)

	s.Step(world.Right)
	if err := s.Advance(); err != nil {
		t.Fatal(err)
	}

	s.Step(world.Right)
	s.LoadPosition()
	if s.Position() != second.Start {
		t.Errorf("position = %v, want level start %v", s.Position(), second.Start)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	tpl := level(t,
		"W..*",
		"..@.",
		".$K.",
		"####",
	)
	a := session(t, world.DefaultRules(), tpl)
	a.Step(world.Right)
	a.Step(world.Down)

	data := a.ExportGrid()
	if len(data) != 16 {
		t.Fatalf("export length = %d, want 16", len(data))
	}

	b := session(t, world.DefaultRules(), tpl)
	if err := b.ImportGrid(data); err != nil {
		t.Fatalf("ImportGrid: %v", err)
	}
	if !b.Snapshot().Equal(a.Snapshot()) {
		t.Error("grids differ after import")
	}
	if b.Position() != a.Position() {
		t.Errorf("position = %v, want %v", b.Position(), a.Position())
	}
	if b.DiamondsRemaining() != a.DiamondsRemaining() {
		t.Errorf("diamonds = %d, want %d", b.DiamondsRemaining(), a.DiamondsRemaining())
	}
}

func TestImportClearsDeath(t *testing.T) {
	tpl := oneDiamond(t)
	s := session(t, world.DefaultRules(), tpl, oneDiamond(t))
	data := s.ExportGrid()

	s.Abandon()
	if err := s.ImportGrid(data); err != nil {
		t.Fatal(err)
	}
	if s.State() != world.Playing || s.Dead() {
		t.Errorf("state = %v dead = %v", s.State(), s.Dead())
	}
}

func TestImportErrors(t *testing.T) {
	s := session(t, world.DefaultRules(), oneDiamond(t))
	before := s.ExportGrid()

	cases := map[string][]byte{
		"short":       []byte("W*"),
		"two players": []byte("W*W      "),
		"no player":   []byte(" *       "),
		"bad glyph":   []byte("W*x      "),
	}
	for name, data := range cases {
		if err := s.ImportGrid(data); !errors.Is(err, world.ErrFormat) {
			t.Errorf("%s: expected ErrFormat, got %v", name, err)
		}
	}
	if string(s.ExportGrid()) != string(before) {
		t.Error("failed import changed the session")
	}

	s.Step(world.Right)
	if err := s.ImportGrid(before); !errors.Is(err, world.ErrGameComplete) {
		t.Errorf("import after game complete: %v", err)
	}
}

func TestDiamondInvariantHolds(t *testing.T) {
	tpl := level(t,
		"##########",
		"#W.*.@.*.#",
		"#..@*@...#",
		"#.$..K.@.#",
		"#*.@@..*.#",
		"#........#",
		"#.@*.$.@.#",
		"#...*....#",
		"#.*..@.*.#",
		"##########",
	)
	s := session(t, world.DefaultRules(), tpl, oneDiamond(t))

	moves := []world.Direction{
		world.Right, world.Right, world.Down, world.Down, world.Right, world.Right,
		world.Down, world.None, world.Left, world.Left, world.Down, world.Down,
		world.Right, world.Right, world.Right, world.Up, world.Up, world.Right,
	}
	for i, d := range moves {
		s.Step(d)
		if got, want := s.DiamondsRemaining(), s.Snapshot().Diamonds(); got != want {
			t.Fatalf("move %d: diamonds remaining %d, grid holds %d", i, got, want)
		}
		if s.State() != world.Playing {
			break
		}
	}
}

func TestSessionDeterminism(t *testing.T) {
	tpl := level(t,
		"########",
		"#W.@.*.#",
		"#.@.@..#",
		"#..*.@.#",
		"#.@..*.#",
		"#......#",
		"#.*.@..#",
		"########",
	)
	moves := []world.Direction{
		world.Down, world.Down, world.Right, world.Right, world.None,
		world.Down, world.Right, world.Up, world.Left, world.Down,
	}

	a := session(t, world.DefaultRules(), tpl)
	b := session(t, world.DefaultRules(), tpl)
	for _, d := range moves {
		ra := a.Step(d)
		rb := b.Step(d)
		if ra.Moved != rb.Moved || ra.Died != rb.Died || len(ra.Events) != len(rb.Events) {
			t.Fatalf("results diverged: %+v vs %+v", ra, rb)
		}
	}
	if string(a.ExportGrid()) != string(b.ExportGrid()) {
		t.Error("final grids diverged")
	}
}
