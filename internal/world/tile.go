// Package world implements the rock-fall simulation: the tile grid, level
// decoding, rock physics, player moves and the level progression state machine.
// This package is UI-agnostic, deterministic and performs no I/O.
package world

// Tile is the content of one grid cell.
type Tile uint8

const (
	Gap Tile = iota
	Earth
	Brick
	Rock
	Diamond
	Key
	Safe
	Player // only appears in level sources and save buffers
	Blob
)

// Glyphs used by level sources and save buffers.
const (
	GlyphGap     = ' '
	GlyphEarth   = '.'
	GlyphBrick   = '#'
	GlyphRock    = '@'
	GlyphDiamond = '*'
	GlyphKey     = 'K'
	GlyphSafe    = '$'
	GlyphPlayer  = 'W'
	GlyphBlob    = '+'
)

// String returns the tile name.
func (t Tile) String() string {
	switch t {
	case Gap:
		return "Gap"
	case Earth:
		return "Earth"
	case Brick:
		return "Brick"
	case Rock:
		return "Rock"
	case Diamond:
		return "Diamond"
	case Key:
		return "Key"
	case Safe:
		return "Safe"
	case Player:
		return "Player"
	case Blob:
		return "Blob"
	default:
		return "Unknown"
	}
}

// Glyph returns the level-source character for the tile.
func (t Tile) Glyph() byte {
	switch t {
	case Gap:
		return GlyphGap
	case Earth:
		return GlyphEarth
	case Brick:
		return GlyphBrick
	case Rock:
		return GlyphRock
	case Diamond:
		return GlyphDiamond
	case Key:
		return GlyphKey
	case Safe:
		return GlyphSafe
	case Player:
		return GlyphPlayer
	case Blob:
		return GlyphBlob
	default:
		return '?'
	}
}

// TileFromGlyph maps a level-source character to a tile.
// Returns false for characters outside the glyph alphabet.
func TileFromGlyph(c byte) (Tile, bool) {
	switch c {
	case GlyphGap:
		return Gap, true
	case GlyphEarth:
		return Earth, true
	case GlyphBrick:
		return Brick, true
	case GlyphRock:
		return Rock, true
	case GlyphDiamond:
		return Diamond, true
	case GlyphKey:
		return Key, true
	case GlyphSafe:
		return Safe, true
	case GlyphPlayer:
		return Player, true
	case GlyphBlob:
		return Blob, true
	default:
		return Gap, false
	}
}

// IsRounded reports whether a rock resting on this tile can roll off it
// under the rounded roll-off rule.
func (t Tile) IsRounded() bool {
	switch t {
	case Rock, Diamond, Key, Blob:
		return true
	default:
		return false
	}
}

// CountsAsDiamond reports whether the tile counts toward diamonds remaining.
func (t Tile) CountsAsDiamond() bool {
	return t == Diamond || t == Safe
}
