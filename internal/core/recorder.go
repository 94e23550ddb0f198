package core

// Recorder receives progress events from a game and supplies stored
// checkpoints. The platform wires it to storage and metrics.
type Recorder interface {
	LevelStarted(level int)
	Died(level int)
	LevelCompleted(level, ticks, deaths int)
	GameCompleted()
	SaveCheckpoint(level int, grid []byte)
	LoadCheckpoint(level int) ([]byte, bool)
}

// NopRecorder discards every event and has no checkpoints.
type NopRecorder struct{}

func (NopRecorder) LevelStarted(int)                  {}
func (NopRecorder) Died(int)                          {}
func (NopRecorder) LevelCompleted(int, int, int)      {}
func (NopRecorder) GameCompleted()                    {}
func (NopRecorder) SaveCheckpoint(int, []byte)        {}
func (NopRecorder) LoadCheckpoint(int) ([]byte, bool) { return nil, false }

// Recorders fans events out to several recorders. LoadCheckpoint returns
// the first hit.
type Recorders []Recorder

func (rs Recorders) LevelStarted(level int) {
	for _, r := range rs {
		r.LevelStarted(level)
	}
}

func (rs Recorders) Died(level int) {
	for _, r := range rs {
		r.Died(level)
	}
}

func (rs Recorders) LevelCompleted(level, ticks, deaths int) {
	for _, r := range rs {
		r.LevelCompleted(level, ticks, deaths)
	}
}

func (rs Recorders) GameCompleted() {
	for _, r := range rs {
		r.GameCompleted()
	}
}

func (rs Recorders) SaveCheckpoint(level int, grid []byte) {
	for _, r := range rs {
		r.SaveCheckpoint(level, grid)
	}
}

func (rs Recorders) LoadCheckpoint(level int) ([]byte, bool) {
	for _, r := range rs {
		if grid, ok := r.LoadCheckpoint(level); ok {
			return grid, true
		}
	}
	return nil, false
}
