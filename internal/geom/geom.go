package geom

import "math"

// Vec is a 2D point or vector. Y grows upwards.
type Vec struct {
	X float64
	Y float64
}

func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec) Scale(k float64) Vec { return Vec{X: v.X * k, Y: v.Y * k} }
func (v Vec) LenSq() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec) IsZero() bool { return v.X == 0 && v.Y == 0 }
func (v Vec) Half() Vec { return v.Scale(0.5) }
func (v Vec) DistSq(o Vec) float64 { return v.Sub(o).LenSq() }

// Normalize returns the unit vector in v's direction.
// The zero vector is returned unchanged.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// ClampLen rescales v so that its length lies in [lo, hi].
// The zero vector has no direction and is returned unchanged.
func (v Vec) ClampLen(lo, hi float64) Vec {
	l := v.Len()
	if l == 0 {
		return v
	}
	switch {
	case l < lo:
		return v.Scale(lo / l)
	case l > hi:
		return v.Scale(hi / l)
	}
	return v
}

// Rect is an axis-aligned rectangle described by its center and half-extents.
type Rect struct {
	Center Vec
	Half   Vec
}

func RectAt(center, size Vec) Rect {
	return Rect{Center: center, Half: size.Half()}
}

func (r Rect) Min() Vec { return r.Center.Sub(r.Half) }
func (r Rect) Max() Vec { return r.Center.Add(r.Half) }

// Overlaps reports whether r and o intersect on both axes.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	rMin, rMax := r.Min(), r.Max()
	oMin, oMax := o.Min(), o.Max()
	return rMin.X < oMax.X && oMin.X < rMax.X &&
		rMin.Y < oMax.Y && oMin.Y < rMax.Y
}

// Playfield is the rectangular court, centered on the origin.
type Playfield struct {
	Width  float64
	Height float64
}

func (p Playfield) Half() Vec { return Vec{X: p.Width / 2, Y: p.Height / 2} }

// Inner returns the range of centers at which an entity with the given
// half-extents stays fully inside the playfield. If the entity is larger
// than the field on an axis, both bounds collapse to 0 on that axis.
func (p Playfield) Inner(half Vec) (lo, hi Vec) {
	ph := p.Half()
	hx := math.Max(ph.X-half.X, 0)
	hy := math.Max(ph.Y-half.Y, 0)
	return Vec{X: -hx, Y: -hy}, Vec{X: hx, Y: hy}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampVec clamps each component of v into [lo, hi].
func ClampVec(v, lo, hi Vec) Vec {
	return Vec{X: Clamp(v.X, lo.X, hi.X), Y: Clamp(v.Y, lo.Y, hi.Y)}
}
