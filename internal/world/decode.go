package world

import "strings"

// Template is a decoded level. It is never mutated after decoding;
// sessions work on clones of Grid.
type Template struct {
	Grid     *Grid    // terrain only, the start cell is Gap
	Start    Position // player start
	Diamonds int      // Diamond + Safe count at start
	Title    string
}

// ParseTemplate decodes the text form of a level: N rows of N glyphs
// separated by newlines. A trailing newline and a trailing '\r' per row
// are accepted.
func ParseTemplate(text string) (*Template, error) {
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")
	if text == "" {
		return nil, formatErr(0, 0, "empty level")
	}

	rows := strings.Split(text, "\n")
	for i, row := range rows {
		rows[i] = strings.TrimSuffix(row, "\r")
	}

	n := len(rows[0])
	for i, row := range rows {
		if len(row) != n {
			return nil, formatErr(i+1, 0, "row has %d cells, want %d", len(row), n)
		}
	}
	if len(rows) != n {
		return nil, formatErr(0, 0, "level is %dx%d, must be square", n, len(rows))
	}

	return decodeRows(n, func(y int) string { return rows[y] })
}

// DecodeGrid decodes the binary form: n*n glyph bytes in row-major order.
// This is the same layout ExportGrid produces.
func DecodeGrid(data []byte, n int) (*Template, error) {
	if n < 1 {
		return nil, formatErr(0, 0, "invalid grid size %d", n)
	}
	if len(data) != n*n {
		return nil, formatErr(0, 0, "buffer has %d bytes, want %d", len(data), n*n)
	}
	return decodeRows(n, func(y int) string { return string(data[y*n : (y+1)*n]) })
}

func decodeRows(n int, row func(y int) string) (*Template, error) {
	g := NewGrid(n)
	var start Position
	starts := 0

	for y := 0; y < n; y++ {
		r := row(y)
		for x := 0; x < n; x++ {
			t, ok := TileFromGlyph(r[x])
			if !ok {
				return nil, formatErr(y+1, x+1, "unknown glyph %q", r[x])
			}
			if t == Player {
				starts++
				start = P(x, y)
				t = Gap
			}
			g.Set(x, y, t)
		}
	}

	switch {
	case starts == 0:
		return nil, formatErr(0, 0, "no player start")
	case starts > 1:
		return nil, formatErr(0, 0, "%d player starts, want 1", starts)
	}

	return &Template{
		Grid:     g,
		Start:    start,
		Diamonds: g.Diamonds(),
	}, nil
}

// EncodeGrid produces the binary form of g with the player glyph at pos.
func EncodeGrid(g *Grid, pos Position) []byte {
	n := g.Size()
	out := make([]byte, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			out[y*n+x] = g.Get(x, y).Glyph()
		}
	}
	if g.InBounds(pos.X, pos.Y) {
		out[pos.Y*n+pos.X] = GlyphPlayer
	}
	return out
}

// WithTitle returns a copy of the template with the given title.
// The grid is shared, since templates are read-only.
func (t *Template) WithTitle(title string) *Template {
	c := *t
	c.Title = title
	return &c
}

// Size returns the grid side length.
func (t *Template) Size() int {
	return t.Grid.Size()
}

// Text returns the text form of the template, player included.
func (t *Template) Text() string {
	n := t.Grid.Size()
	data := EncodeGrid(t.Grid, t.Start)
	var b strings.Builder
	b.Grow(n * (n + 1))
	for y := 0; y < n; y++ {
		b.Write(data[y*n : (y+1)*n])
		b.WriteByte('\n')
	}
	return b.String()
}
