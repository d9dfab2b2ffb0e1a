package input

import "github.com/gdamore/tcell/v2"

// Binding is what a key does: an edge action and, for directions, the matching hold.
type Binding struct {
	Edge Action
	Hold Action
	// HasHold is false for keys without a held counterpart.
	HasHold bool
}

// KeyTable maps terminal keys to bindings.
type KeyTable struct {
	Keys  map[tcell.Key]Binding
	Runes map[rune]Binding
}

// DefaultKeyTable returns the default key bindings.
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]Binding{
			tcell.KeyLeft:       {Edge: Left, Hold: HoldLeft, HasHold: true},
			tcell.KeyRight:      {Edge: Right, Hold: HoldRight, HasHold: true},
			tcell.KeyUp:         {Edge: Up, Hold: HoldUp, HasHold: true},
			tcell.KeyDown:       {Edge: Down, Hold: HoldDown, HasHold: true},
			tcell.KeyEnter:      {Edge: Select},
			tcell.KeyBackspace:  {Edge: Cancel},
			tcell.KeyBackspace2: {Edge: Cancel},
			tcell.KeyEscape:     {Edge: Quit},
			tcell.KeyCtrlC:      {Edge: Quit},
		},
		Runes: map[rune]Binding{
			'h': {Edge: Left, Hold: HoldLeft, HasHold: true},
			'l': {Edge: Right, Hold: HoldRight, HasHold: true},
			'k': {Edge: Up, Hold: HoldUp, HasHold: true},
			'j': {Edge: Down, Hold: HoldDown, HasHold: true},
			' ': {Edge: Select},
			'z': {Edge: Select},
			'x': {Edge: Cancel},
			't': {Edge: ViewTroupe},
			'q': {Edge: Quit},
		},
	}
}

// Lookup returns the binding for a key event.
func (kt *KeyTable) Lookup(ev *tcell.EventKey) (Binding, bool) {
	if ev.Key() == tcell.KeyRune {
		b, ok := kt.Runes[ev.Rune()]
		return b, ok
	}
	b, ok := kt.Keys[ev.Key()]
	return b, ok
}
