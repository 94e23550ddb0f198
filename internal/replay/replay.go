// Package replay runs scripted move sequences against a fresh session.
// Scripts are small YAML documents, useful for regression tests and for
// checking that a level can be solved.
package replay

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/rockfall/internal/world"
)

// ErrMove is returned for a character that is not a move.
var ErrMove = errors.New("invalid move")

// Script is a level number and the moves to play on it.
type Script struct {
	Title string `yaml:"title,omitempty"`
	Level int    `yaml:"level"` // 1-based; 0 means the first level
	Moves string `yaml:"moves"` // U D L R, "." waits; spaces are ignored
}

// Summary describes how a replay ended.
type Summary struct {
	Level    int // 1-based
	Steps    int // ticks played
	Moves    int // ticks in which the player moved
	Falls    int // rock movements
	Diamonds int // diamonds left
	Deaths   int
	State    world.State
}

func (s Summary) String() string {
	return fmt.Sprintf("level %d: %s after %d steps (%d moves, %d falls, %d diamonds left, %d deaths)",
		s.Level, s.State, s.Steps, s.Moves, s.Falls, s.Diamonds, s.Deaths)
}

// Parse decodes a YAML script.
func Parse(data []byte) (Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Script{}, fmt.Errorf("parsing replay script: %w", err)
	}
	if _, err := sc.Directions(); err != nil {
		return Script{}, err
	}
	return sc, nil
}

// Load reads and decodes a script file.
func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("reading replay script: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return Script{}, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Directions converts the move string into one direction per tick.
func (sc Script) Directions() ([]world.Direction, error) {
	dirs := make([]world.Direction, 0, len(sc.Moves))
	for i, c := range sc.Moves {
		switch c {
		case 'U', 'u':
			dirs = append(dirs, world.Up)
		case 'D', 'd':
			dirs = append(dirs, world.Down)
		case 'L', 'l':
			dirs = append(dirs, world.Left)
		case 'R', 'r':
			dirs = append(dirs, world.Right)
		case '.':
			dirs = append(dirs, world.None)
		case ' ', '\t', '\n', '\r':
		default:
			return nil, fmt.Errorf("%w %q at offset %d", ErrMove, c, i)
		}
	}
	return dirs, nil
}

// Format renders directions back into a move string.
func Format(dirs []world.Direction) string {
	var sb strings.Builder
	for _, d := range dirs {
		switch d {
		case world.Up:
			sb.WriteByte('U')
		case world.Down:
			sb.WriteByte('D')
		case world.Left:
			sb.WriteByte('L')
		case world.Right:
			sb.WriteByte('R')
		default:
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// Run plays the script on a fresh session. It stops at the first tick that
// leaves the Playing state, so a script ends on a death or a completed level.
func Run(set *world.LevelSet, sc Script, rules world.Rules) (*world.Session, Summary, error) {
	dirs, err := sc.Directions()
	if err != nil {
		return nil, Summary{}, err
	}

	start := sc.Level - 1
	if sc.Level == 0 {
		start = 0
	}
	s, err := world.NewSession(set, start, rules)
	if err != nil {
		return nil, Summary{}, err
	}

	sum := Summary{Level: start + 1}
	for _, d := range dirs {
		res := s.Step(d)
		sum.Steps++
		if res.Moved {
			sum.Moves++
		}
		for _, ev := range res.Events {
			if ev.Kind == world.EventFall {
				sum.Falls++
			}
		}
		if s.State() != world.Playing {
			break
		}
	}

	sum.Diamonds = s.DiamondsRemaining()
	sum.Deaths = s.Deaths()
	sum.State = s.State()
	return s, sum, nil
}
