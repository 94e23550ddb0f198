package storage

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"
)

// Recorder persists one player's run: checkpoints, completions and the run
// outcome. Storage failures are logged and never interrupt play.
type Recorder struct {
	store    *Store
	levelSet string
	player   string
	runID    string
	logger   *log.Logger

	mu       sync.Mutex
	finished bool
}

// NewRecorder starts a run for player on levelSet.
func NewRecorder(store *Store, levelSet, player, mode string, logger *log.Logger) (*Recorder, error) {
	id, err := store.StartRun(levelSet, player, mode)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{
		store:    store,
		levelSet: levelSet,
		player:   player,
		runID:    id,
		logger:   logger.With("run", id),
	}, nil
}

// RunID returns the ID of the recorded run.
func (r *Recorder) RunID() string {
	return r.runID
}

func (r *Recorder) LevelStarted(level int) {
	r.logger.Debug("level started", "level", level+1)
}

func (r *Recorder) Died(level int) {
	r.logger.Debug("player died", "level", level+1)
}

// LevelCompleted stores the completion and drops the level's checkpoint.
func (r *Recorder) LevelCompleted(level, ticks, deaths int) {
	_, err := r.store.RecordCompletion(Completion{
		RunID:    r.runID,
		LevelSet: r.levelSet,
		Player:   r.player,
		Level:    level,
		Ticks:    ticks,
		Deaths:   deaths,
	})
	if err != nil {
		r.logger.Error("recording completion", "level", level+1, "error", err)
	}
	if err := r.store.ClearCheckpoint(r.levelSet, r.player, level); err != nil {
		r.logger.Error("clearing checkpoint", "level", level+1, "error", err)
	}
}

func (r *Recorder) GameCompleted() {
	r.Finish(OutcomeWon)
}

func (r *Recorder) SaveCheckpoint(level int, grid []byte) {
	if err := r.store.SaveCheckpoint(r.levelSet, r.player, level, grid); err != nil {
		r.logger.Error("saving checkpoint", "level", level+1, "error", err)
	}
}

func (r *Recorder) LoadCheckpoint(level int) ([]byte, bool) {
	grid, err := r.store.LoadCheckpoint(r.levelSet, r.player, level)
	if errors.Is(err, ErrNoCheckpoint) {
		return nil, false
	}
	if err != nil {
		r.logger.Error("loading checkpoint", "level", level+1, "error", err)
		return nil, false
	}
	return grid, true
}

// Finish closes the run with outcome. Only the first call has an effect.
func (r *Recorder) Finish(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finished {
		return
	}
	r.finished = true
	if err := r.store.FinishRun(r.runID, outcome); err != nil {
		r.logger.Error("finishing run", "error", err)
	}
}
