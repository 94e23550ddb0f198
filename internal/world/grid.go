package world

import (
	"fmt"
	"strings"
)

// DefaultSize is the canonical side length of a level.
const DefaultSize = 50

// Grid is a square board of tiles.
// Cells are stored in row-major order: index = y*N + x.
type Grid struct {
	n     int
	cells []Tile
}

// NewGrid creates an n×n grid filled with Gap.
func NewGrid(n int) *Grid {
	if n < 1 {
		panic(fmt.Sprintf("world: invalid grid size %d", n))
	}
	return &Grid{
		n:     n,
		cells: make([]Tile, n*n),
	}
}

// NewGridFilled creates an n×n grid with every cell set to t.
func NewGridFilled(n int, t Tile) *Grid {
	g := NewGrid(n)
	for i := range g.cells {
		g.cells[i] = t
	}
	return g
}

// Size returns the side length N.
func (g *Grid) Size() int {
	return g.n
}

// InBounds returns true if (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.n && y >= 0 && y < g.n
}

// Get returns the tile at (x, y).
// Anything outside the grid is Brick.
func (g *Grid) Get(x, y int) Tile {
	if !g.InBounds(x, y) {
		return Brick
	}
	return g.cells[y*g.n+x]
}

// At is Get for a Position.
func (g *Grid) At(p Position) Tile {
	return g.Get(p.X, p.Y)
}

// Set writes the tile at (x, y).
// Writing outside the grid is a programming error and panics.
func (g *Grid) Set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("world: Set(%d,%d) outside %dx%d grid", x, y, g.n, g.n))
	}
	g.cells[y*g.n+x] = t
}

// Put is Set for a Position.
func (g *Grid) Put(p Position, t Tile) {
	g.Set(p.X, p.Y, t)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Tile, len(g.cells))
	copy(cells, g.cells)
	return &Grid{n: g.n, cells: cells}
}

// Equal returns true if two grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.n != other.n {
		return false
	}
	for i, t := range g.cells {
		if t != other.cells[i] {
			return false
		}
	}
	return true
}

// Count returns the number of cells holding any of the given tiles.
func (g *Grid) Count(tiles ...Tile) int {
	count := 0
	for _, cell := range g.cells {
		for _, t := range tiles {
			if cell == t {
				count++
				break
			}
		}
	}
	return count
}

// Replace turns every `from` cell into `to` and returns how many changed.
func (g *Grid) Replace(from, to Tile) int {
	changed := 0
	for i, cell := range g.cells {
		if cell == from {
			g.cells[i] = to
			changed++
		}
	}
	return changed
}

// Diamonds returns the number of cells that still count toward completion.
func (g *Grid) Diamonds() int {
	return g.Count(Diamond, Safe)
}

// String renders the grid in level-source glyphs, one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.n * (g.n + 1))
	for y := 0; y < g.n; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < g.n; x++ {
			b.WriteByte(g.cells[y*g.n+x].Glyph())
		}
	}
	return b.String()
}
