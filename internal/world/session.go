package world

import (
	"errors"
	"fmt"
)

// State is the progression state of a session.
type State uint8

const (
	Playing State = iota
	Dead
	LevelComplete
	GameComplete
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Dead:
		return "dead"
	case LevelComplete:
		return "level-complete"
	case GameComplete:
		return "game-complete"
	default:
		return "unknown"
	}
}

// StepResult reports what one tick did.
type StepResult struct {
	Moved         bool
	Died          bool
	LevelComplete bool
	GameComplete  bool
	Falling       bool // some rock moved this tick
	Events        []Event
}

type checkpoint struct {
	grid *Grid
	pos  Position
}

// Session owns all mutable state of one run through a level set.
// It is not safe for concurrent use.
type Session struct {
	set   *LevelSet
	rules Rules

	level    int
	grid     *Grid
	pos      Position
	diamonds int
	dead     bool
	state    State

	ticks  int
	deaths int
	saved  *checkpoint
}

// NewSession starts a session at level index start.
func NewSession(set *LevelSet, start int, rules Rules) (*Session, error) {
	if set == nil {
		return nil, ErrNoLevels
	}
	if _, err := set.Level(start); err != nil {
		return nil, err
	}

	s := &Session{set: set, rules: rules}
	s.startLevel(start)
	return s, nil
}

// startLevel loads a level from its template and checkpoints the start.
func (s *Session) startLevel(i int) {
	s.level = i
	s.ticks = 0
	s.deaths = 0
	s.loadTemplate()
	s.SavePosition()
}

func (s *Session) loadTemplate() {
	t := s.set.levels[s.level]
	s.establish(t.Grid.Clone(), t.Start)
}

// establish installs a working grid and rescans derived state.
func (s *Session) establish(g *Grid, pos Position) {
	s.grid = g
	s.pos = pos
	s.diamonds = g.Diamonds()
	s.dead = false
	s.state = Playing
}

// Step runs one tick: the move, then physics, then state transitions.
// Outside Playing it changes nothing and reports the current flags.
func (s *Session) Step(dir Direction) StepResult {
	if s.state != Playing {
		return s.flags()
	}

	move := Resolve(s.grid, s.pos, dir, s.rules)
	if move.Moved {
		s.pos = move.To
	}
	if move.Collected {
		s.diamonds--
	}

	fall := Rockfall(s.grid, s.pos, s.rules)
	if fall.Crushed {
		s.dead = true
	}
	s.ticks++

	switch {
	case s.dead:
		s.state = Dead
		s.deaths++
	case s.diamonds == 0:
		if s.level == s.set.Len()-1 {
			s.state = GameComplete
		} else {
			s.state = LevelComplete
		}
	}

	res := s.flags()
	res.Moved = move.Moved
	res.Falling = fall.Moved
	if n := len(move.Events) + len(fall.Events); n > 0 {
		res.Events = make([]Event, 0, n)
		res.Events = append(res.Events, move.Events...)
		res.Events = append(res.Events, fall.Events...)
	}
	return res
}

func (s *Session) flags() StepResult {
	return StepResult{
		Died:          s.state == Dead,
		LevelComplete: s.state == LevelComplete,
		GameComplete:  s.state == GameComplete,
	}
}

// Abandon gives up the current life. Only valid while Playing.
func (s *Session) Abandon() bool {
	if s.state != Playing {
		return false
	}
	s.dead = true
	s.state = Dead
	s.deaths++
	return true
}

// Restart reloads the current level from its pristine template.
// The stored checkpoint is kept.
func (s *Session) Restart() error {
	if s.state == GameComplete {
		return ErrGameComplete
	}
	s.loadTemplate()
	return nil
}

// Advance moves to the next level after LevelComplete.
func (s *Session) Advance() error {
	switch s.state {
	case LevelComplete:
		s.startLevel(s.level + 1)
		return nil
	case GameComplete:
		return ErrGameComplete
	default:
		return fmt.Errorf("%w: advance while %s", ErrState, s.state)
	}
}

// SavePosition checkpoints the working grid and player position.
// Only valid while Playing.
func (s *Session) SavePosition() bool {
	if s.state != Playing {
		return false
	}
	s.saved = &checkpoint{grid: s.grid.Clone(), pos: s.pos}
	return true
}

// LoadPosition returns to the last checkpoint of this level.
// It is valid while Playing or Dead and reports whether a checkpoint existed.
func (s *Session) LoadPosition() bool {
	if s.saved == nil || (s.state != Playing && s.state != Dead) {
		return false
	}
	s.establish(s.saved.grid.Clone(), s.saved.pos)
	return true
}

// HasCheckpoint reports whether LoadPosition would succeed in Playing.
func (s *Session) HasCheckpoint() bool {
	return s.saved != nil
}

// ExportGrid returns the working grid as N*N glyph bytes, with the player
// glyph at the current position.
func (s *Session) ExportGrid() []byte {
	return EncodeGrid(s.grid, s.pos)
}

// ImportGrid replaces the working grid with a buffer produced by ExportGrid
// for a grid of the same size. The session returns to Playing.
func (s *Session) ImportGrid(data []byte) error {
	if s.state == GameComplete {
		return ErrGameComplete
	}
	t, err := DecodeGrid(data, s.grid.Size())
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) && fe.Source == "" {
			fe.Source = "save"
		}
		return err
	}
	s.establish(t.Grid, t.Start)
	return nil
}

// Tile returns the terrain at (x, y). The player is not part of the grid.
func (s *Session) Tile(x, y int) Tile { return s.grid.Get(x, y) }

// Size returns the grid side length.
func (s *Session) Size() int { return s.grid.Size() }

// Snapshot returns a copy of the working grid.
func (s *Session) Snapshot() *Grid { return s.grid.Clone() }

// Position returns the player position.
func (s *Session) Position() Position { return s.pos }

// DiamondsRemaining returns how many Diamond and Safe tiles are left.
func (s *Session) DiamondsRemaining() int { return s.diamonds }

// LevelIndex returns the 0-based index of the current level.
func (s *Session) LevelIndex() int { return s.level }

// LevelCount returns the number of levels in the set.
func (s *Session) LevelCount() int { return s.set.Len() }

// LevelSet returns the set this session plays through.
func (s *Session) LevelSet() *LevelSet { return s.set }

// Title returns the current level title.
func (s *Session) Title() string { return s.set.levels[s.level].Title }

// State returns the progression state.
func (s *Session) State() State { return s.state }

// Dead reports the death flag.
func (s *Session) Dead() bool { return s.dead }

// Ticks returns the ticks played on the current level.
func (s *Session) Ticks() int { return s.ticks }

// Deaths returns the lives lost on the current level.
func (s *Session) Deaths() int { return s.deaths }

// Rules returns the rules in effect.
func (s *Session) Rules() Rules { return s.rules }
