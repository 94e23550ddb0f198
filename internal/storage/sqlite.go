// Package storage provides SQLite-based persistence for checkpoints, runs
// and level completions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNoCheckpoint is returned when no checkpoint is stored for a level.
var ErrNoCheckpoint = errors.New("storage: no checkpoint")

// Run outcomes.
const (
	OutcomePlaying = "playing"
	OutcomeWon     = "won"
	OutcomeQuit    = "quit"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one play-through of a level set.
type Run struct {
	ID         string
	LevelSet   string
	Player     string
	Mode       string
	Outcome    string
	StartedAt  time.Time
	FinishedAt time.Time // zero while playing
}

// Completion records one finished level.
type Completion struct {
	ID          int64
	RunID       string
	LevelSet    string
	Player      string
	Level       int // 0-based
	Ticks       int
	Deaths      int
	CompletedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS checkpoints (
			level_set TEXT NOT NULL,
			player TEXT NOT NULL,
			level INTEGER NOT NULL,
			grid BLOB NOT NULL,
			saved_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (level_set, player, level)
		);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			level_set TEXT NOT NULL,
			player TEXT NOT NULL,
			mode TEXT NOT NULL,
			outcome TEXT NOT NULL DEFAULT 'playing',
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player, started_at DESC);

		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			level_set TEXT NOT NULL,
			player TEXT NOT NULL,
			level INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			deaths INTEGER NOT NULL DEFAULT 0,
			completed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_best ON completions(level_set, level, ticks, deaths);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveCheckpoint stores the exported grid of a level, replacing any
// previous checkpoint for the same player and level.
func (s *Store) SaveCheckpoint(levelSet, player string, level int, grid []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO checkpoints (level_set, player, level, grid, saved_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (level_set, player, level)
		 DO UPDATE SET grid = excluded.grid, saved_at = excluded.saved_at`,
		levelSet, player, level, compress(grid),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint returns the stored grid for a level, or ErrNoCheckpoint.
func (s *Store) LoadCheckpoint(levelSet, player string, level int) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRow(
		"SELECT grid FROM checkpoints WHERE level_set = ? AND player = ? AND level = ?",
		levelSet, player, level,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoCheckpoint
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load checkpoint: %w", err)
	}

	grid, err := decompress(blob)
	if err != nil {
		return nil, fmt.Errorf("storage: corrupt checkpoint: %w", err)
	}
	return grid, nil
}

// ClearCheckpoint removes the checkpoint for a level. Missing rows are not
// an error.
func (s *Store) ClearCheckpoint(levelSet, player string, level int) error {
	_, err := s.db.Exec(
		"DELETE FROM checkpoints WHERE level_set = ? AND player = ? AND level = ?",
		levelSet, player, level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot clear checkpoint: %w", err)
	}
	return nil
}

// StartRun records a new run and returns its ID.
func (s *Store) StartRun(levelSet, player, mode string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO runs (id, level_set, player, mode, outcome) VALUES (?, ?, ?, ?, ?)",
		id, levelSet, player, mode, OutcomePlaying,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot start run: %w", err)
	}
	return id, nil
}

// FinishRun sets the outcome of a run that is still playing.
func (s *Store) FinishRun(id, outcome string) error {
	_, err := s.db.Exec(
		`UPDATE runs SET outcome = ?, finished_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND outcome = ?`,
		outcome, id, OutcomePlaying,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	return nil
}

// RecentRuns returns the latest runs of a player, newest first.
// An empty player matches everyone.
func (s *Store) RecentRuns(player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_set, player, mode, outcome, started_at, finished_at
		 FROM runs
		 WHERE ? = '' OR player = ?
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`,
		player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished any
		if err := rows.Scan(&r.ID, &r.LevelSet, &r.Player, &r.Mode, &r.Outcome, &started, &finished); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.StartedAt = parseTime(started)
		r.FinishedAt = parseTime(finished)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RecordCompletion stores a finished level and returns its row ID.
func (s *Store) RecordCompletion(c Completion) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO completions (run_id, level_set, player, level, ticks, deaths)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.RunID, c.LevelSet, c.Player, c.Level, c.Ticks, c.Deaths,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// BestCompletions returns the fastest completion of each level in a set,
// ordered by level. Ties go to fewer deaths, then to the earlier record.
// An empty player matches everyone.
func (s *Store) BestCompletions(levelSet, player string) ([]Completion, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, level_set, player, level, ticks, deaths, completed_at
		 FROM completions
		 WHERE level_set = ? AND (? = '' OR player = ?)
		 ORDER BY level, ticks, deaths, id`,
		levelSet, player, player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var best []Completion
	for rows.Next() {
		var c Completion
		var completedAt any
		if err := rows.Scan(&c.ID, &c.RunID, &c.LevelSet, &c.Player, &c.Level, &c.Ticks, &c.Deaths, &completedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.CompletedAt = parseTime(completedAt)

		// Rows are sorted, so the first one per level wins.
		if n := len(best); n > 0 && best[n-1].Level == c.Level {
			continue
		}
		best = append(best, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return best, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
