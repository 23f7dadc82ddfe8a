package booking

import "fmt"

// State selects which subset of a user's bookings to list. It is either a
// temporal window computed against the clock at query time, or a literal
// status equality filter.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateApproved State = "APPROVED"
	StateRejected State = "REJECTED"
	StateCanceled State = "CANCELED"
)

// IsValid returns true if the selector is part of the closed literal set.
func (s State) IsValid() bool {
	switch s {
	case StateAll, StateCurrent, StatePast, StateFuture,
		StateWaiting, StateApproved, StateRejected, StateCanceled:
		return true
	}
	return false
}

// Status returns the status this selector filters on. Only meaningful for
// the status-literal selectors.
func (s State) Status() Status {
	return Status(s)
}

// ParseState converts a query literal to a State. The boundary layer calls
// this before the engine is ever invoked; the engine itself never sees an
// unrecognized literal.
func ParseState(s string) (State, error) {
	state := State(s)
	if !state.IsValid() {
		return "", fmt.Errorf("Unknown state: %s", s)
	}
	return state, nil
}
