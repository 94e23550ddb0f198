package world

import "fmt"

// Outcome describes the result of resolving one move.
type Outcome struct {
	Moved     bool
	To        Position // player position after the move
	Collected bool     // a diamond was picked up
	Unlocked  int      // safes turned into diamonds
	Events    []Event
}

// Resolve applies one player move to g and returns where the player ends up.
// The grid is mutated only when the move succeeds. Passing an undefined
// Direction panics.
func Resolve(g *Grid, pos Position, dir Direction, rules Rules) Outcome {
	if !dir.Valid() {
		panic(fmt.Sprintf("world: invalid direction %d", dir))
	}

	stay := Outcome{To: pos}
	if dir == None {
		return stay
	}

	dest := pos.Step(dir)
	out := Outcome{Moved: true, To: dest}

	switch g.At(dest) {
	case Gap, Earth:
		// walk or dig
	case Diamond:
		out.Collected = true
		out.Events = append(out.Events, Event{Kind: EventCollect, From: pos, To: dest})
	case Key:
		out.Unlocked = g.Replace(Safe, Diamond)
		out.Events = append(out.Events, Event{Kind: EventUnlock, From: pos, To: dest, Count: out.Unlocked})
	case Rock:
		if !dir.Horizontal() && !rules.VerticalPush {
			return stay
		}
		beyond := dest.Step(dir)
		if g.At(beyond) != Gap {
			return stay
		}
		g.Put(beyond, Rock)
		out.Events = append(out.Events, Event{Kind: EventPush, From: dest, To: beyond})
	case Brick, Safe, Blob:
		return stay
	default:
		// Player glyphs never reach a working grid.
		panic(fmt.Sprintf("world: unexpected tile %v at %v", g.At(dest), dest))
	}

	g.Put(dest, Gap)
	return out
}
