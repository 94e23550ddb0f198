package world

import "fmt"

// LevelSet is an ordered, non-empty, read-only list of level templates.
type LevelSet struct {
	name   string
	levels []*Template
}

// NewLevelSet builds a level set. At least one template is required.
func NewLevelSet(templates ...*Template) (*LevelSet, error) {
	return NewNamedLevelSet("", templates...)
}

// NewNamedLevelSet builds a level set with a name used for storage keys.
func NewNamedLevelSet(name string, templates ...*Template) (*LevelSet, error) {
	if len(templates) == 0 {
		return nil, ErrNoLevels
	}
	levels := make([]*Template, len(templates))
	for i, t := range templates {
		if t == nil || t.Grid == nil {
			return nil, fmt.Errorf("world: level %d is nil", i)
		}
		levels[i] = t
	}
	return &LevelSet{name: name, levels: levels}, nil
}

// Name returns the set name, possibly empty.
func (ls *LevelSet) Name() string {
	return ls.name
}

// Len returns the number of levels.
func (ls *LevelSet) Len() int {
	return len(ls.levels)
}

// Level returns the template at index i.
func (ls *LevelSet) Level(i int) (*Template, error) {
	if i < 0 || i >= len(ls.levels) {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrLevelRange, i, len(ls.levels))
	}
	return ls.levels[i], nil
}

// Titles returns the level titles in order.
func (ls *LevelSet) Titles() []string {
	titles := make([]string, len(ls.levels))
	for i, t := range ls.levels {
		titles[i] = t.Title
	}
	return titles
}
