package contact

import "fmt"

// State of one form instance. A submission runs idle → submitting →
// settled → idle; validation failures never leave idle.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSettled:
		return "settled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var transitions = map[State]State{
	StateIdle:       StateSubmitting,
	StateSubmitting: StateSettled,
	StateSettled:    StateIdle,
}

// CanTransition reports whether from → to is a legal step.
func CanTransition(from, to State) bool {
	next, ok := transitions[from]
	return ok && next == to
}
