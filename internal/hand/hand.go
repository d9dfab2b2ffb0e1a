// Package hand provides the card hand and the leadership budget that gates deployment.
package hand

import (
	"fmt"

	"github.com/samdwyer/troupe/internal/combat"
	"github.com/samdwyer/troupe/internal/entity"
)

// CardKind says what a card stands for.
type CardKind int

const (
	CardUnit CardKind = iota
	CardAction
)

// Card is a selectable handle on a deployable unit or an action.
type Card struct {
	Kind   CardKind
	Unit   *entity.Unit      // Set for CardUnit
	Action combat.ActionKind // Set for CardAction

	// Render hints
	Label string
	Glyph rune
}

// UnitCard creates a card that deploys u.
func UnitCard(u *entity.Unit) Card {
	return Card{Kind: CardUnit, Unit: u, Label: u.GetName(), Glyph: u.Glyph()}
}

// ActionCard creates a card that plays an action.
func ActionCard(kind combat.ActionKind, label string, glyph rune) Card {
	return Card{Kind: CardAction, Action: kind, Label: label, Glyph: glyph}
}

// Cost returns the leadership cost of playing the card.
func (c Card) Cost() int {
	if c.Kind == CardUnit {
		return c.Unit.Tier()
	}
	return 0
}

// Hand is an ordered set of cards; insertion order is play order.
type Hand struct {
	cards []Card
}

// New creates a hand holding the given cards.
func New(cards ...Card) *Hand {
	h := &Hand{}
	for _, c := range cards {
		h.Append(c)
	}
	return h
}

// Append adds a card at the end of the hand.
func (h *Hand) Append(c Card) {
	h.cards = append(h.cards, c)
}

// Len returns the number of cards.
func (h *Hand) Len() int {
	return len(h.cards)
}

// At returns the card at index i.
func (h *Hand) At(i int) Card {
	h.check(i)
	return h.cards[i]
}

// RemoveAt removes and returns the card at index i.
func (h *Hand) RemoveAt(i int) Card {
	h.check(i)
	c := h.cards[i]
	h.cards = append(h.cards[:i], h.cards[i+1:]...)
	return c
}

// Clear empties the hand.
func (h *Hand) Clear() {
	h.cards = nil
}

// Cards returns a copy of the cards in play order.
func (h *Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Next returns the column after col, wrapping to the first card.
// An empty hand has no columns; 0 is returned.
func (h *Hand) Next(col int) int {
	if len(h.cards) == 0 {
		return 0
	}
	return (col + 1) % len(h.cards)
}

// Prev returns the column before col, wrapping to the last card.
func (h *Hand) Prev(col int) int {
	n := len(h.cards)
	if n == 0 {
		return 0
	}
	return (col - 1 + n) % n
}

// Clamp re-derives a valid column after the hand changed size.
func (h *Hand) Clamp(col int) int {
	switch {
	case len(h.cards) == 0 || col < 0:
		return 0
	case col >= len(h.cards):
		return len(h.cards) - 1
	default:
		return col
	}
}

func (h *Hand) check(i int) {
	if i < 0 || i >= len(h.cards) {
		panic(fmt.Sprintf("hand: index %d out of range [0,%d)", i, len(h.cards)))
	}
}
