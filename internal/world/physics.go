package world

// FallResult summarizes one physics pass.
type FallResult struct {
	Moved   bool // at least one rock moved
	Crushed bool // a rock landed on the player
	Events  []Event
}

// Rockfall advances every rock by at most one cell.
//
// Rows are scanned from the bottom up and columns left to right, so a rock
// that lands in a lower row this pass is not visited again. A rock falls
// into a Gap below it. Otherwise, if its support allows rolling off, it
// tries to slide left then right; a slide needs both the side cell and the
// cell below it to be Gap. The player stands on Gap terrain: a rock may land
// on the player's cell (a crush) but cannot pass sideways through it.
//
// The pass always completes, even after a crush.
func Rockfall(g *Grid, player Position, rules Rules) FallResult {
	var res FallResult
	n := g.Size()

	for y := n - 1; y >= 0; y-- {
		for x := 0; x < n; x++ {
			if g.Get(x, y) != Rock {
				continue
			}

			from := P(x, y)
			to, ok := rockDestination(g, from, player, rules)
			if !ok {
				continue
			}

			g.Put(from, Gap)
			g.Put(to, Rock)
			res.Moved = true
			res.Events = append(res.Events, Event{Kind: EventFall, From: from, To: to})

			if to == player {
				res.Crushed = true
				res.Events = append(res.Events, Event{Kind: EventCrush, From: from, To: to})
			}
		}
	}

	return res
}

func rockDestination(g *Grid, from, player Position, rules Rules) (Position, bool) {
	below := from.Add(0, 1)
	support := g.At(below)
	if support == Gap {
		return below, true
	}
	if !rules.canRollOff(support) {
		return Position{}, false
	}

	for _, dx := range [2]int{-1, 1} {
		side := from.Add(dx, 0)
		if side == player || g.At(side) != Gap {
			continue
		}
		diag := from.Add(dx, 1)
		if g.At(diag) == Gap {
			return diag, true
		}
	}
	return Position{}, false
}
