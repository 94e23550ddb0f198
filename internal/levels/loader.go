// Package levels loads level sets from directories, zip archives and the
// built-in collection. This package depends on world but world does not
// depend on levels.
package levels

import (
	"archive/zip"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/rockfall/internal/levels/formats"
	"github.com/vovakirdan/rockfall/internal/world"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// BuiltinName is the set name of the embedded levels.
const BuiltinName = "builtin"

// Level represents a complete level definition.
type Level struct {
	ID       string // file name without extension
	Title    string
	Author   string
	Template *world.Template
	FilePath string
}

// Loader handles loading levels from a directory or zip archive.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader. An empty root selects the
// built-in levels.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Name returns the set name used for storage keys.
func (l *Loader) Name() string {
	if l.Root == "" {
		return BuiltinName
	}
	return filepath.Base(l.Root)
}

// LoadAll loads every level file under the root.
// Levels are sorted by file path; the first invalid file fails the load.
func (l *Loader) LoadAll() ([]Level, error) {
	if l.Root == "" {
		sub, err := fs.Sub(builtinFS, "builtin")
		if err != nil {
			return nil, err
		}
		return LoadFS(sub)
	}

	info, err := os.Stat(l.Root)
	if err != nil {
		return nil, fmt.Errorf("opening level set: %w", err)
	}

	if !info.IsDir() && strings.EqualFold(filepath.Ext(l.Root), ".zip") {
		zr, err := zip.OpenReader(l.Root)
		if err != nil {
			return nil, fmt.Errorf("opening archive %s: %w", l.Root, err)
		}
		defer zr.Close()
		levels, err := LoadFS(zr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.Root, err)
		}
		return levels, nil
	}

	if !info.IsDir() {
		level, err := l.LoadFile(l.Root)
		if err != nil {
			return nil, err
		}
		return []Level{level}, nil
	}

	levels, err := LoadFS(os.DirFS(l.Root))
	if err != nil {
		return nil, err
	}
	for i := range levels {
		levels[i].FilePath = filepath.Join(l.Root, filepath.FromSlash(levels[i].FilePath))
	}
	return levels, nil
}

// LoadSet loads all levels into a world level set.
func (l *Loader) LoadSet() (*world.LevelSet, []Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, nil, err
	}
	templates := make([]*world.Template, len(levels))
	for i, lvl := range levels {
		templates[i] = lvl.Template
	}
	set, err := world.NewNamedLevelSet(l.Name(), templates...)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", l.Name(), err)
	}
	return set, levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	level, err := parseLevel(data, path)
	if err != nil {
		return Level{}, err
	}
	level.FilePath = path
	return level, nil
}

// LoadFS walks fsys and loads every supported level file, sorted by path.
func LoadFS(fsys fs.FS) ([]Level, error) {
	var names []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if isSupportedExtension(strings.ToLower(path.Ext(p))) {
			names = append(names, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking levels: %w", err)
	}

	// Sort for determinism
	sort.Strings(names)

	levels := make([]Level, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading file %s: %w", name, err)
		}
		level, err := parseLevel(data, name)
		if err != nil {
			return nil, err
		}
		level.FilePath = name
		levels = append(levels, level)
	}
	return levels, nil
}

func parseLevel(data []byte, name string) (Level, error) {
	parsed, err := formats.Parse(data, name)
	if err != nil {
		var fe *world.FormatError
		if errors.As(err, &fe) && fe.Source == "" {
			fe.Source = name
			return Level{}, err
		}
		return Level{}, fmt.Errorf("parsing file %s: %w", name, err)
	}

	id := path.Base(filepath.ToSlash(name))
	id = strings.TrimSuffix(id, path.Ext(id))
	title := parsed.Title
	if title == "" {
		title = formats.TitleFromName(name)
		parsed.Template = parsed.Template.WithTitle(title)
	}

	return Level{
		ID:       id,
		Title:    title,
		Author:   parsed.Author,
		Template: parsed.Template,
	}, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
