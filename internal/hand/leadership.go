package hand

import "fmt"

// Leadership tracks how many unit tiers have been deployed against a fixed capacity.
// The capacity is a selection gate: Spend does not clamp, CanAfford decides.
type Leadership struct {
	capacity int
	spent    int
}

// NewLeadership creates a budget with the given capacity.
func NewLeadership(capacity int) *Leadership {
	if capacity < 0 {
		panic(fmt.Sprintf("hand: negative leadership capacity %d", capacity))
	}
	return &Leadership{capacity: capacity}
}

// Capacity returns the budget for the encounter.
func (l *Leadership) Capacity() int { return l.capacity }

// Spent returns the tiers deployed so far.
func (l *Leadership) Spent() int { return l.spent }

// Remaining returns capacity minus spent.
func (l *Leadership) Remaining() int { return l.capacity - l.spent }

// CanAfford reports whether a unit of the given tier fits in what remains.
func (l *Leadership) CanAfford(tier int) bool {
	return l.capacity-l.spent >= tier
}

// Spend records a deployment of the given tier.
func (l *Leadership) Spend(tier int) {
	if tier < 0 {
		panic(fmt.Sprintf("hand: negative tier %d", tier))
	}
	l.spent += tier
}

// Reset clears spent points for a new encounter.
func (l *Leadership) Reset() {
	l.spent = 0
}
