package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

const (
	// DefaultHoldGrace covers the terminal's delay before auto-repeat starts.
	DefaultHoldGrace = 500 * time.Millisecond
	// DefaultRepeatGrace keeps a hold alive between auto-repeats.
	DefaultRepeatGrace = 120 * time.Millisecond
)

// Terminal collects key events between frames.
// Terminals report presses and auto-repeats but never releases, so a hold
// lasts until no repeat has arrived for the grace window.
type Terminal struct {
	keys        *KeyTable
	holdGrace   time.Duration
	repeatGrace time.Duration

	edges     [actionCount]bool
	heldUntil [actionCount]time.Time
}

// NewTerminal creates a terminal input source with default timings.
func NewTerminal(keys *KeyTable) *Terminal {
	return &Terminal{
		keys:        keys,
		holdGrace:   DefaultHoldGrace,
		repeatGrace: DefaultRepeatGrace,
	}
}

// HandleKey records a key event received at now.
func (t *Terminal) HandleKey(ev *tcell.EventKey, now time.Time) {
	b, ok := t.keys.Lookup(ev)
	if !ok {
		return
	}

	if !b.HasHold {
		t.edges[b.Edge] = true
		return
	}

	if now.Before(t.heldUntil[b.Hold]) {
		// Auto-repeat of a held key
		t.heldUntil[b.Hold] = now.Add(t.repeatGrace)
		return
	}
	t.edges[b.Edge] = true
	t.heldUntil[b.Hold] = now.Add(t.holdGrace)
}

// Latch writes collected edges and current holds into the frame snapshot.
// Edges are handed over once; unconsumed snapshot edges are left alone.
func (t *Terminal) Latch(now time.Time, s *Snapshot) {
	for a := Action(0); a < actionCount; a++ {
		if t.edges[a] {
			s.Set(a, true)
			t.edges[a] = false
		}
	}
	for _, hold := range []Action{HoldLeft, HoldRight, HoldUp, HoldDown} {
		s.Set(hold, now.Before(t.heldUntil[hold]))
	}
}

// Release drops every pending edge and hold, used when a scene changes.
func (t *Terminal) Release() {
	t.edges = [actionCount]bool{}
	t.heldUntil = [actionCount]time.Time{}
}
