package input

import (
	"math"
	"testing"
)

func TestIntent_AxisAligned(t *testing.T) {
	t.Parallel()

	bs := DefaultBindings()
	got := bs.Intent(Set{LeftUp: true}, Left)
	if got.X != 0 || got.Y != 1 {
		t.Fatalf("expected (0,1), got %+v", got)
	}
	got = bs.Intent(Set{RightLeft: true}, Right)
	if got.X != -1 || got.Y != 0 {
		t.Fatalf("expected (-1,0), got %+v", got)
	}
}

func TestIntent_DiagonalIsUnitLength(t *testing.T) {
	t.Parallel()

	bs := DefaultBindings()
	got := bs.Intent(Set{LeftUp: true, LeftRight: true}, Left)
	if math.Abs(got.Len()-1) > 1e-9 {
		t.Fatalf("expected unit length, got %v (%+v)", got.Len(), got)
	}
}

func TestIntent_OpposingKeysCancel(t *testing.T) {
	t.Parallel()

	bs := DefaultBindings()
	got := bs.Intent(Set{RightUp: true, RightDown: true}, Right)
	if !got.IsZero() {
		t.Fatalf("expected zero intent, got %+v", got)
	}
}

func TestIntent_SidesAreIndependent(t *testing.T) {
	t.Parallel()

	bs := DefaultBindings()
	keys := Set{LeftUp: true, LeftLeft: true}
	if got := bs.Intent(keys, Right); !got.IsZero() {
		t.Fatalf("right paddle should ignore left keys, got %+v", got)
	}
	in := bs.Intents(keys)
	if in[Left].IsZero() || !in[Right].IsZero() {
		t.Fatalf("unexpected intents: %+v", in)
	}
}

func TestIntent_NilSource(t *testing.T) {
	t.Parallel()

	if got := DefaultBindings().Intent(nil, Left); !got.IsZero() {
		t.Fatalf("expected zero intent, got %+v", got)
	}
}

func TestBindings_Validate(t *testing.T) {
	t.Parallel()

	if err := DefaultBindings().Validate(); err != nil {
		t.Fatalf("default bindings should be valid: %v", err)
	}

	shared := DefaultBindings()
	shared[Right].Up = LeftUp
	if err := shared.Validate(); err == nil {
		t.Fatalf("expected error for key shared across sides")
	}

	unknown := DefaultBindings()
	unknown[Left].Down = Key(42)
	if err := unknown.Validate(); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestSide_Opponent(t *testing.T) {
	t.Parallel()

	if Left.Opponent() != Right || Right.Opponent() != Left {
		t.Fatalf("opponent mapping broken")
	}
	if Left.String() != "left" || Right.String() != "right" {
		t.Fatalf("unexpected names: %s %s", Left, Right)
	}
}
