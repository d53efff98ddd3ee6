package game

import (
	"math"
)

// moveBall advances the ball by its velocity and reflects it off the top
// and bottom walls. It returns the number of wall contacts (0 or 1).
//
// Velocity carries the speed; only paddle hits and serves change its
// magnitude.
func (s *State) moveBall(dt float64) int {
	b := &s.Ball
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))

	lo, hi := s.Field.Inner(b.Size.Half())
	switch {
	case b.Pos.Y >= hi.Y:
		b.Pos.Y = hi.Y
		b.Vel.Y = -math.Abs(b.Vel.Y)
		return 1
	case b.Pos.Y <= lo.Y:
		b.Pos.Y = lo.Y
		b.Vel.Y = math.Abs(b.Vel.Y)
		return 1
	}
	return 0
}
