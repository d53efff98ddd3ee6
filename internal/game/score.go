package game

import (
	"log/slog"
	"math"

	"github.com/fchimpan/kusa-pong/internal/geom"
)

// checkGoal awards a point when the ball has fully left the field past a
// side's edge and re-serves it. A ball exactly on the goal line counts as
// out. When the ball is in bounds nothing changes and nil is returned.
func (s *State) checkGoal() *Goal {
	b := s.Ball
	line := s.Field.Width/2 + b.Size.X/2

	var conceder Side
	switch {
	case b.Pos.X >= line:
		conceder = Right
	case b.Pos.X <= -line:
		conceder = Left
	default:
		return nil
	}

	scorer := conceder.Opponent()
	s.Score[scorer]++
	g := &Goal{Scorer: scorer, Conceder: conceder, Score: s.Score}

	s.logger().Debug("goal",
		slog.String("scorer", scorer.String()),
		slog.Int("left", s.Score[Left]),
		slog.Int("right", s.Score[Right]),
	)

	s.serve(conceder)
	return g
}

// serve puts the ball back at the center, re-arms both guards and aims
// it at toward with BaseSpeed and a random angle within the serve cone.
// The ball stays put until the serve delay has elapsed.
func (s *State) serve(toward Side) {
	b := &s.Ball
	b.Pos = geom.Vec{}
	b.armGuards()

	maxAngle := s.cfg.Serve.AngleDeg * math.Pi / 180
	angle := (s.rng.Float64()*2 - 1) * maxAngle
	speed := s.cfg.Ball.BaseSpeed
	vx := speed * math.Cos(angle)
	if toward == Left {
		vx = -vx
	}
	b.Vel = geom.V(vx, speed*math.Sin(angle))

	s.Phase = Serving
	s.ServeTimer = s.cfg.Serve.Delay
	s.logger().Debug("serve", slog.String("toward", toward.String()))
}

// advanceServe counts the serve delay down and puts the ball in play once
// it has elapsed. It reports whether the ball went into play this frame.
func (s *State) advanceServe(dt float64) bool {
	if s.Phase != Serving {
		return false
	}
	s.ServeTimer -= dt
	if s.ServeTimer > 0 {
		return false
	}
	s.ServeTimer = 0
	s.Phase = InPlay
	return true
}
