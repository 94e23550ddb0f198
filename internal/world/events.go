package world

import "fmt"

// EventKind identifies what happened during a step.
type EventKind uint8

const (
	EventFall    EventKind = iota // a rock moved From -> To
	EventCollect                  // a diamond at To was collected
	EventUnlock                   // Count safes turned into diamonds
	EventCrush                    // a rock landed on the player at To
	EventPush                     // a rock was pushed From -> To
)

func (k EventKind) String() string {
	switch k {
	case EventFall:
		return "fall"
	case EventCollect:
		return "collect"
	case EventUnlock:
		return "unlock"
	case EventCrush:
		return "crush"
	case EventPush:
		return "push"
	default:
		return "unknown"
	}
}

// Event is a side-effect notification for the host (sound, flash, log).
// Events carry no state the host needs for correctness.
type Event struct {
	Kind  EventKind
	From  Position
	To    Position
	Count int
}

func (e Event) String() string {
	switch e.Kind {
	case EventUnlock:
		return fmt.Sprintf("unlock(%d)", e.Count)
	case EventCollect, EventCrush:
		return fmt.Sprintf("%s%v", e.Kind, e.To)
	default:
		return fmt.Sprintf("%s%v->%v", e.Kind, e.From, e.To)
	}
}
