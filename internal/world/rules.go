package world

import "fmt"

// RollOff selects which supports let a blocked rock slide sideways.
type RollOff uint8

const (
	// RollOffAny lets a rock slide off any non-Gap support.
	RollOffAny RollOff = iota
	// RollOffRounded only lets a rock slide off Rock, Diamond, Key or Blob.
	RollOffRounded
)

func (r RollOff) String() string {
	switch r {
	case RollOffAny:
		return "any"
	case RollOffRounded:
		return "rounded"
	default:
		return "unknown"
	}
}

// ParseRollOff parses "any" or "rounded".
func ParseRollOff(s string) (RollOff, error) {
	switch s {
	case "any", "":
		return RollOffAny, nil
	case "rounded":
		return RollOffRounded, nil
	default:
		return RollOffAny, fmt.Errorf("unknown roll-off rule %q (want any or rounded)", s)
	}
}

// Rules are the tunable parts of the simulation.
type Rules struct {
	RollOff      RollOff
	VerticalPush bool // allow pushing rocks up and down
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		RollOff:      RollOffAny,
		VerticalPush: true,
	}
}

// ClassicRules returns the rule set of the classic game: rocks only roll
// off rounded objects and can only be pushed sideways.
func ClassicRules() Rules {
	return Rules{
		RollOff:      RollOffRounded,
		VerticalPush: false,
	}
}

func (r Rules) canRollOff(support Tile) bool {
	if support == Gap {
		return false
	}
	if r.RollOff == RollOffRounded {
		return support.IsRounded()
	}
	return true
}
