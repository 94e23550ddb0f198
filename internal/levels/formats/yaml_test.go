package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/rockfall/internal/world"
)

func TestParseYAML(t *testing.T) {
	data := []byte("title: Pit\nmap: |\n  W.*\n  .@.\n  ###\n")

	lvl, err := ParseYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "Pit", lvl.Title)
	assert.Equal(t, "Pit", lvl.Template.Title)
	assert.Equal(t, world.P(0, 0), lvl.Template.Start)
	assert.Equal(t, 1, lvl.Template.Diamonds)
}

func TestParseYAMLMissingMap(t *testing.T) {
	_, err := ParseYAML([]byte("title: Nothing\n"))
	assert.Error(t, err)
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	tpl, err := world.ParseTemplate("W.*\n .@\n###\n")
	require.NoError(t, err)

	data, err := MarshalYAML("Round", "me", tpl)
	require.NoError(t, err)

	back, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "Round", back.Title)
	assert.Equal(t, "me", back.Author)
	assert.True(t, back.Template.Grid.Equal(tpl.Grid))
	assert.Equal(t, tpl.Start, back.Template.Start)
}

func TestTitleFromName(t *testing.T) {
	tests := map[string]string{
		"03-the_pit.txt":     "the pit",
		"levels/cavern.lvl":  "cavern",
		"007.txt":            "007.txt",
		"rock-and-roll.yaml": "rock and roll",
	}
	for in, want := range tests {
		assert.Equal(t, want, TitleFromName(in), in)
	}
}

func TestParseUnsupportedExtension(t *testing.T) {
	_, err := Parse([]byte("W"), "level.json")
	assert.Error(t, err)
}
