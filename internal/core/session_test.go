package core

import "testing"

// TestStateGuards verifies which lifecycle states admit open and close
// sequences.
func TestStateGuards(t *testing.T) {
	cases := []struct {
		state     State
		canOpen   bool
		canClose  bool
		animating bool
	}{
		{StateIdle, true, false, false},
		{StateOpening, false, false, true},
		{StateOpen, false, true, false},
		{StateClosing, false, false, true},
	}

	for _, tc := range cases {
		if got := tc.state.CanOpen(); got != tc.canOpen {
			t.Errorf("%s: CanOpen = %v, expected %v", tc.state, got, tc.canOpen)
		}
		if got := tc.state.CanClose(); got != tc.canClose {
			t.Errorf("%s: CanClose = %v, expected %v", tc.state, got, tc.canClose)
		}
		if got := tc.state.Animating(); got != tc.animating {
			t.Errorf("%s: Animating = %v, expected %v", tc.state, got, tc.animating)
		}
	}
}

// TestStateString verifies the log names.
func TestStateString(t *testing.T) {
	names := map[State]string{
		StateIdle:    "idle",
		StateOpening: "opening",
		StateOpen:    "open",
		StateClosing: "closing",
		State(99):    "unknown",
	}
	for state, want := range names {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, expected %q", int(state), got, want)
		}
	}
}
