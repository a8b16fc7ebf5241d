// Zoom session lifecycle states
package core

// State is the zoom session lifecycle state.
type State int

const (
	// StateIdle means no session exists.
	StateIdle State = iota
	// StateOpening means the enlarging transition is running.
	StateOpening
	// StateOpen means the zoomed image is at rest.
	StateOpen
	// StateClosing means the shrinking transition is running.
	StateClosing
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// CanOpen reports whether an open sequence may start from this state.
func (s State) CanOpen() bool {
	return s == StateIdle
}

// CanClose reports whether a close sequence may start from this state.
func (s State) CanClose() bool {
	return s == StateOpen
}

// Animating reports whether a transition is in flight.
func (s State) Animating() bool {
	return s == StateOpening || s == StateClosing
}
