package game

import (
	"math"

	"github.com/fchimpan/kusa-pong/internal/geom"
	"github.com/fchimpan/kusa-pong/internal/input"
)

// resolvePaddle tests the ball against one paddle and, if they overlap
// and that paddle's guard is armed, bounces the ball off it. It reports
// whether a response fired.
func (s *State) resolvePaddle(side Side) bool {
	b := &s.Ball
	p := s.Paddles[side]

	bh, ph := b.Size.Half(), p.Size.Half()
	reach := bh.Len() + ph.Len()
	if b.Pos.DistSq(p.Pos) > reach*reach {
		return false
	}
	if !b.Rect().Overlaps(p.Rect()) {
		return false
	}
	if !b.Guard[side] {
		return false
	}
	b.Guard[side] = false
	b.Guard[side.Opponent()] = true

	cfg := s.cfg.Ball

	// Send the ball back towards the center line. For a ball approaching
	// the paddle this is a plain negation of Vel.X.
	vx := math.Abs(b.Vel.X) * cfg.HitSpeedup
	if side == Right {
		vx = -vx
	}

	deflection := 0.0
	if ph.Y > 0 {
		deflection = geom.Clamp((b.Pos.Y-p.Pos.Y)/ph.Y, -1, 1)
	}
	vy := deflection * cfg.BaseSpeed * cfg.DeflectionGain

	b.Vel = geom.V(vx, vy).ClampLen(cfg.MinSpeed, cfg.MaxSpeed)

	// Push the ball out past the paddle's inner edge.
	if side == Left {
		b.Pos.X = p.Pos.X + ph.X + bh.X
	} else {
		b.Pos.X = p.Pos.X - ph.X - bh.X
	}
	return true
}

func (s *State) resolveCollisions(ev *Events) {
	for _, side := range input.Sides {
		if s.resolvePaddle(side) {
			ev.Hits = append(ev.Hits, side)
		}
	}
}
