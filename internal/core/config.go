package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and pacing.
type RuntimeConfig struct {
	ScreenW    int // Screen width in characters
	ScreenH    int // Screen height in characters
	TickRate   int // Simulation ticks per second
	StartLevel int // 0-based level to start from
	Player     string
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 8,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Level      int  // 0-based current level
	LevelCount int  // levels in the set
	Diamonds   int  // diamonds left on this level
	Deaths     int  // lives lost on this level
	Ticks      int  // ticks played on this level
	GameOver   bool // the run has ended (all levels done)
	Won        bool // the run ended by completing every level
	Paused     bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State   GameState
	Falling bool     // rocks are moving; hosts may play a rumble cue
	Notices []string // short messages for the status line
}
