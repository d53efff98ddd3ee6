package tui

import (
	"time"

	"github.com/fchimpan/kusa-pong/internal/input"
)

// Terminals only report key presses (plus autorepeat), never releases.
// heldKeys treats a key as held for holdFor after its last press, which
// bridges the gap before autorepeat kicks in.
type heldKeys struct {
	holdFor time.Duration
	now     time.Time
	last    map[input.Key]time.Time
}

const defaultHold = 180 * time.Millisecond

func newHeldKeys(holdFor time.Duration) *heldKeys {
	if holdFor <= 0 {
		holdFor = defaultHold
	}
	return &heldKeys{holdFor: holdFor, last: make(map[input.Key]time.Time)}
}

// opposite returns the key on the same axis of the same side.
var opposite = map[input.Key]input.Key{
	input.LeftUp:     input.LeftDown,
	input.LeftDown:   input.LeftUp,
	input.LeftLeft:   input.LeftRight,
	input.LeftRight:  input.LeftLeft,
	input.RightUp:    input.RightDown,
	input.RightDown:  input.RightUp,
	input.RightLeft:  input.RightRight,
	input.RightRight: input.RightLeft,
}

func (h *heldKeys) press(k input.Key, at time.Time) {
	h.last[k] = at
	// Reversing direction should not wait for the old key to expire.
	if o, ok := opposite[k]; ok {
		delete(h.last, o)
	}
}

func (h *heldKeys) setNow(t time.Time) { h.now = t }

func (h *heldKeys) reset() { clear(h.last) }

func (h *heldKeys) Pressed(k input.Key) bool {
	t, ok := h.last[k]
	if !ok {
		return false
	}
	return h.now.Sub(t) < h.holdFor
}

// keyMap maps Bubble Tea key strings to paddle keys.
var keyMap = map[string]input.Key{
	"w": input.LeftUp, "W": input.LeftUp,
	"s": input.LeftDown, "S": input.LeftDown,
	"a": input.LeftLeft, "A": input.LeftLeft,
	"d": input.LeftRight, "D": input.LeftRight,

	"up": input.RightUp, "i": input.RightUp, "I": input.RightUp,
	"down": input.RightDown, "k": input.RightDown, "K": input.RightDown,
	"left": input.RightLeft, "j": input.RightLeft, "J": input.RightLeft,
	"right": input.RightRight, "l": input.RightRight, "L": input.RightRight,
}
