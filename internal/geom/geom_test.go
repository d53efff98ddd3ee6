package geom

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	n := V(3, 4).Normalize()
	if math.Abs(n.Len()-1) > 1e-12 {
		t.Fatalf("expected unit length, got %v", n.Len())
	}
	if z := (Vec{}).Normalize(); !z.IsZero() {
		t.Fatalf("zero vector should stay zero, got %+v", z)
	}
}

func TestClampLen(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   Vec
		want float64
	}{
		{"below", V(1, 0), 10},
		{"inside", V(0, 15), 15},
		{"above", V(30, 40), 20},
	}
	for _, tc := range cases {
		got := tc.in.ClampLen(10, 20).Len()
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%s: expected len %v, got %v", tc.name, tc.want, got)
		}
	}
	if z := (Vec{}).ClampLen(10, 20); !z.IsZero() {
		t.Fatalf("zero vector should stay zero, got %+v", z)
	}
}

func TestRectOverlaps(t *testing.T) {
	t.Parallel()

	a := RectAt(V(0, 0), V(10, 10))
	if !a.Overlaps(RectAt(V(9, 9), V(10, 10))) {
		t.Fatalf("expected overlap on both axes")
	}
	if a.Overlaps(RectAt(V(10, 0), V(10, 10))) {
		t.Fatalf("touching edges should not overlap")
	}
	if a.Overlaps(RectAt(V(0, 20), V(10, 10))) {
		t.Fatalf("separated on y should not overlap")
	}
	if a.Overlaps(RectAt(V(5, 50), V(10, 10))) {
		t.Fatalf("x overlap alone is not enough")
	}
}

func TestPlayfieldInner(t *testing.T) {
	t.Parallel()

	lo, hi := Playfield{Width: 800, Height: 600}.Inner(V(10, 50))
	if lo != V(-390, -250) || hi != V(390, 250) {
		t.Fatalf("unexpected bounds: %+v %+v", lo, hi)
	}

	lo, hi = Playfield{Width: 10, Height: 10}.Inner(V(20, 1))
	if lo.X != 0 || hi.X != 0 {
		t.Fatalf("oversized entity should collapse to center, got %+v %+v", lo, hi)
	}
}

func TestClampVec(t *testing.T) {
	t.Parallel()

	got := ClampVec(V(-5, 50), V(-1, -1), V(1, 1))
	if got != V(-1, 1) {
		t.Fatalf("unexpected clamp: %+v", got)
	}
}
