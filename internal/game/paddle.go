package game

import (
	"github.com/fchimpan/kusa-pong/internal/geom"
)

// paddleBounds returns the box that a paddle's center must stay in:
// inside the field, and on its own side of the center line.
func (s *State) paddleBounds(p Paddle) (lo, hi geom.Vec) {
	half := p.Size.Half()
	lo, hi = s.Field.Inner(half)
	switch p.Side {
	case Left:
		hi.X = min(hi.X, -half.X)
		lo.X = min(lo.X, hi.X)
	case Right:
		lo.X = max(lo.X, half.X)
		hi.X = max(hi.X, lo.X)
	}
	return lo, hi
}

// movePaddle integrates one paddle and clamps it to its bounds.
// Zero intent or zero dt leaves the position untouched when it is already
// in bounds.
func (s *State) movePaddle(side Side, intent geom.Vec, dt float64) {
	p := &s.Paddles[side]
	if intent.LenSq() > 1 {
		intent = intent.Normalize()
	}
	next := p.Pos.Add(intent.Scale(s.cfg.Paddle.Speed * dt))
	lo, hi := s.paddleBounds(*p)
	p.Pos = geom.ClampVec(next, lo, hi)
}
