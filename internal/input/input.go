package input

import (
	"fmt"

	"github.com/fchimpan/kusa-pong/internal/geom"
)

// Side identifies a paddle and the playfield edge it defends.
type Side int

const (
	Left Side = iota
	Right
)

// Sides lists both sides in index order.
var Sides = [2]Side{Left, Right}

func (s Side) Opponent() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Key is a logical, host-independent key. Each side owns four keys.
type Key int

const (
	LeftUp Key = iota
	LeftDown
	LeftLeft
	LeftRight
	RightUp
	RightDown
	RightLeft
	RightRight

	numKeys
)

// KeySource reports whether a logical key is currently held.
type KeySource interface {
	Pressed(k Key) bool
}

// Binding is the set of keys driving one paddle.
type Binding struct {
	Up, Down, Left, Right Key
}

func (b Binding) keys() [4]Key { return [4]Key{b.Up, b.Down, b.Left, b.Right} }

// Bindings holds one Binding per side, indexed by Side.
type Bindings [2]Binding

// DefaultBindings returns disjoint bindings for both sides.
func DefaultBindings() Bindings {
	return Bindings{
		Left:  {Up: LeftUp, Down: LeftDown, Left: LeftLeft, Right: LeftRight},
		Right: {Up: RightUp, Down: RightDown, Left: RightLeft, Right: RightRight},
	}
}

// Validate returns an error when a key is bound twice, either within one
// side or across both sides.
func (bs Bindings) Validate() error {
	seen := make(map[Key]Side, 8)
	for _, side := range Sides {
		for _, k := range bs[side].keys() {
			if k < 0 || k >= numKeys {
				return fmt.Errorf("%s binding uses unknown key %d", side, int(k))
			}
			if prev, ok := seen[k]; ok {
				return fmt.Errorf("key %d bound to both %s and %s", int(k), prev, side)
			}
			seen[k] = side
		}
	}
	return nil
}

// Intent maps the held keys of one side to a movement direction.
// The result is either zero or of unit length, so diagonals are not faster.
func (bs Bindings) Intent(src KeySource, side Side) geom.Vec {
	if src == nil {
		return geom.Vec{}
	}
	b := bs[side]
	var v geom.Vec
	if src.Pressed(b.Up) {
		v.Y++
	}
	if src.Pressed(b.Down) {
		v.Y--
	}
	if src.Pressed(b.Left) {
		v.X--
	}
	if src.Pressed(b.Right) {
		v.X++
	}
	return v.Normalize()
}

// Intents evaluates Intent for both sides.
func (bs Bindings) Intents(src KeySource) [2]geom.Vec {
	return [2]geom.Vec{bs.Intent(src, Left), bs.Intent(src, Right)}
}

// Set is a KeySource backed by a fixed set of held keys.
type Set map[Key]bool

func (s Set) Pressed(k Key) bool { return s[k] }
