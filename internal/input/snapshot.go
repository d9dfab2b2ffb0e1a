// Package input turns terminal key events into a per-frame snapshot of logical actions.
package input

import "fmt"

// Action is a logical input the encounter reacts to.
type Action int

const (
	Select Action = iota
	Cancel
	Left
	Right
	Up
	Down
	HoldLeft
	HoldRight
	HoldUp
	HoldDown
	ViewTroupe
	Quit

	actionCount
)

var actionNames = [actionCount]string{
	Select:     "select",
	Cancel:     "cancel",
	Left:       "left",
	Right:      "right",
	Up:         "up",
	Down:       "down",
	HoldLeft:   "hold_left",
	HoldRight:  "hold_right",
	HoldUp:     "hold_up",
	HoldDown:   "hold_down",
	ViewTroupe: "view_troupe",
	Quit:       "quit",
}

// String returns the logical action name.
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction maps a logical name to its action.
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("unknown input action %q", name)
}

// Snapshot holds the state of every logical action for one frame.
// Edge flags stay set until a consumer clears them.
type Snapshot struct {
	states [actionCount]bool
}

// Pressed reports whether a is set without clearing it.
func (s *Snapshot) Pressed(a Action) bool {
	return s.states[a]
}

// Set writes the state of a.
func (s *Snapshot) Set(a Action, v bool) {
	s.states[a] = v
}

// Consume reports whether a is set and clears it.
func (s *Snapshot) Consume(a Action) bool {
	v := s.states[a]
	s.states[a] = false
	return v
}

// Reset clears every action.
func (s *Snapshot) Reset() {
	s.states = [actionCount]bool{}
}
