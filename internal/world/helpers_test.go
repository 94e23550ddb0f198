package world_test

import (
	"strings"
	"testing"

	"github.com/vovakirdan/rockfall/internal/world"
)

// level parses rows of glyphs into a template.
func level(t *testing.T, rows ...string) *world.Template {
	t.Helper()
	tpl, err := world.ParseTemplate(strings.Join(rows, "\n"))
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	return tpl
}

// session starts a session over the given templates at level 0.
func session(t *testing.T, rules world.Rules, templates ...*world.Template) *world.Session {
	t.Helper()
	set, err := world.NewLevelSet(templates...)
	if err != nil {
		t.Fatalf("NewLevelSet: %v", err)
	}
	s, err := world.NewSession(set, 0, rules)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func assertTile(t *testing.T, g *world.Grid, x, y int, want world.Tile) {
	t.Helper()
	if got := g.Get(x, y); got != want {
		t.Errorf("tile at (%d,%d) = %v, want %v", x, y, got, want)
	}
}
