package game

import (
	"math"

	"github.com/fchimpan/kusa-pong/internal/input"
)

// Goal describes a point being scored.
type Goal struct {
	Scorer   Side
	Conceder Side
	Score    [2]int // after the point
}

// Events is what happened during one Step.
type Events struct {
	Hits        []Side
	WallBounces int
	Served      bool // the ball went into play
	Goal        *Goal
}

// GoalSink is notified when a point is scored, e.g. to play a sound.
// Implementations must not block.
type GoalSink interface {
	GoalScored(scorer Side)
}

// Notify forwards the frame's goal, if any, to sink.
func (e Events) Notify(sink GoalSink) {
	if sink == nil || e.Goal == nil {
		return
	}
	sink.GoalScored(e.Goal.Scorer)
}

// Step runs one frame: paddles, then the ball, then paddle collisions,
// then goals. dt is clamped to [0, MaxFrameDt].
func (s *State) Step(dt float64, in Input) Events {
	dt = s.clampDt(dt)

	var ev Events
	for _, side := range input.Sides {
		s.movePaddle(side, in.Intent[side], dt)
	}

	ev.Served = s.advanceServe(dt)
	if s.Phase != InPlay {
		return ev
	}

	ev.WallBounces = s.moveBall(dt)
	s.resolveCollisions(&ev)
	ev.Goal = s.checkGoal()
	return ev
}

func (s *State) clampDt(dt float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	return min(dt, s.cfg.MaxFrameDt)
}
