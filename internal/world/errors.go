package world

import (
	"errors"
	"fmt"
)

// ErrFormat is matched by every FormatError via errors.Is.
var ErrFormat = errors.New("world: malformed level data")

var (
	// ErrNoLevels is returned when a level set would be empty.
	ErrNoLevels = errors.New("world: level set is empty")

	// ErrLevelRange is returned for a level index outside the set.
	ErrLevelRange = errors.New("world: level index out of range")

	// ErrGameComplete is returned by operations that need a level in play
	// after the last level has been completed.
	ErrGameComplete = errors.New("world: game is complete")

	// ErrState is returned for a transition the current state does not allow.
	ErrState = errors.New("world: invalid state for operation")
)

// FormatError describes malformed level source or save data.
// Line and Col are 1-based; zero means the error is not tied to a position.
type FormatError struct {
	Source string
	Line   int
	Col    int
	Reason string
}

func (e *FormatError) Error() string {
	prefix := "level"
	if e.Source != "" {
		prefix = e.Source
	}
	switch {
	case e.Line > 0 && e.Col > 0:
		return fmt.Sprintf("%s:%d:%d: %s", prefix, e.Line, e.Col, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", prefix, e.Line, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", prefix, e.Reason)
	}
}

// Is lets errors.Is(err, ErrFormat) match any FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func formatErr(line, col int, format string, args ...any) *FormatError {
	return &FormatError{Line: line, Col: col, Reason: fmt.Sprintf(format, args...)}
}
