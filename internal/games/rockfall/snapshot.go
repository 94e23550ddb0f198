package rockfall

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Level     int    // 1-indexed for display
	State     string // world.State name, or "no-session"
	PlayerX   int
	PlayerY   int
	Diamonds  int
	Deaths    int
	Ticks     int
	Paused    bool
	Countdown int
	Grid      string // export buffer, player included
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{Tick: g.tick, State: "no-session"}
	}
	s := g.session
	pos := s.Position()
	return Snapshot{
		Tick:      g.tick,
		Level:     s.LevelIndex() + 1,
		State:     s.State().String(),
		PlayerX:   pos.X,
		PlayerY:   pos.Y,
		Diamonds:  s.DiamondsRemaining(),
		Deaths:    s.Deaths(),
		Ticks:     s.Ticks(),
		Paused:    g.paused,
		Countdown: g.countdown,
		Grid:      string(s.ExportGrid()),
	}
}
