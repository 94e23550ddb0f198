// Package core provides fundamental types and utilities for the rockfall
// platform. It contains no Bubble Tea dependency so that game logic stays
// pure and testable.
package core

// Rect represents an axis-aligned rectangle in cell coordinates.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Viewport returns the window of a size×size world shown in a w×h view,
// centred on (fx, fy) and clamped so it never scrolls past the edges.
// When the world is smaller than the view the window covers the whole world.
func Viewport(size, w, h, fx, fy int) Rect {
	vw := Min(w, size)
	vh := Min(h, size)
	x := Clamp(fx-vw/2, 0, size-vw)
	y := Clamp(fy-vh/2, 0, size-vh)
	return NewRect(x, y, vw, vh)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
