// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"path"
	"strings"

	"github.com/vovakirdan/rockfall/internal/world"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author,omitempty"`
	Map    string `yaml:"map"` // text form, one row per line
}

// Level represents a parsed level ready for use.
type Level struct {
	Title    string
	Author   string
	Template *world.Template
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if strings.TrimSpace(yl.Map) == "" {
		return Level{}, fmt.Errorf("missing map")
	}

	tpl, err := world.ParseTemplate(yl.Map)
	if err != nil {
		return Level{}, err
	}

	return Level{
		Title:    yl.Title,
		Author:   yl.Author,
		Template: tpl.WithTitle(yl.Title),
	}, nil
}

// MarshalYAML renders a template as a YAML level file.
func MarshalYAML(title, author string, tpl *world.Template) ([]byte, error) {
	return yaml.Marshal(YAMLLevel{
		Title:  title,
		Author: author,
		Map:    tpl.Text(),
	})
}

// ParseText parses a bare text level. The title is derived from the file name.
func ParseText(data []byte, name string) (Level, error) {
	tpl, err := world.ParseTemplate(string(data))
	if err != nil {
		return Level{}, err
	}
	title := TitleFromName(name)
	return Level{
		Title:    title,
		Template: tpl.WithTitle(title),
	}, nil
}

// TitleFromName turns "03-the_pit.txt" into "the pit".
func TitleFromName(name string) string {
	base := path.Base(name)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.TrimLeft(base, "0123456789-_ ")
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	if base == "" {
		return path.Base(name)
	}
	return base
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".txt", ".lvl"}
}

// Parse routes to the parser for the file extension.
func Parse(data []byte, name string) (Level, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".txt", ".lvl":
		return ParseText(data, name)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", path.Ext(name))
	}
}
