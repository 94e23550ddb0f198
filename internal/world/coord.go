package world

import "fmt"

// Position is a cell coordinate.
// X increases to the right, Y increases downward.
type Position struct {
	X int
	Y int
}

// P is a convenience constructor for Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns a new Position offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Step returns the neighbouring position in the given direction.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return p.Add(dx, dy)
}

// Direction is the movement intent for one tick.
type Direction uint8

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// Valid reports whether d is one of the defined directions.
func (d Direction) Valid() bool {
	return d <= Right
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case None:
		return "None"
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// Horizontal reports whether the direction moves along the X axis.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// IntentFromAxes folds the four held directional intents into one Direction.
// Opposite intents on the same axis, or movement on both axes, cancel the
// whole move.
func IntentFromAxes(left, right, up, down bool) Direction {
	if (left && right) || (up && down) {
		return None
	}

	horizontal := left || right
	vertical := up || down
	if horizontal && vertical {
		return None
	}

	switch {
	case left:
		return Left
	case right:
		return Right
	case up:
		return Up
	case down:
		return Down
	default:
		return None
	}
}
