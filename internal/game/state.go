package game

import (
	"log/slog"
	"math/rand/v2"

	"github.com/fchimpan/kusa-pong/internal/config"
	"github.com/fchimpan/kusa-pong/internal/geom"
	"github.com/fchimpan/kusa-pong/internal/input"
)

type Side = input.Side

const (
	Left  = input.Left
	Right = input.Right
)

// Phase is the ball's lifecycle stage.
type Phase int

const (
	// Serving: the ball waits at the center for the serve delay to elapse.
	Serving Phase = iota
	InPlay
)

func (p Phase) String() string {
	if p == Serving {
		return "serving"
	}
	return "in-play"
}

type Paddle struct {
	Side Side
	Pos  geom.Vec // center
	Size geom.Vec
}

func (p Paddle) Rect() geom.Rect { return geom.RectAt(p.Pos, p.Size) }

type Ball struct {
	Pos  geom.Vec // center
	Vel  geom.Vec
	Size geom.Vec

	// Guard[side] is true while a hit against that side's paddle may
	// produce a response.
	Guard [2]bool
}

func (b Ball) Rect() geom.Rect { return geom.RectAt(b.Pos, b.Size) }

func (b *Ball) armGuards() { b.Guard = [2]bool{true, true} }

// Input is the per-frame movement intent of both paddles, as produced by
// input.Bindings.Intents.
type Input struct {
	Intent [2]geom.Vec
}

// State owns every entity of a match: exactly two paddles, one ball and
// the score, indexed by Side.
type State struct {
	Field geom.Playfield

	Paddles [2]Paddle
	Ball    Ball
	Score   [2]int

	Phase      Phase
	ServeTimer float64

	// Log receives serve and goal events at debug level. Nil discards.
	Log *slog.Logger

	cfg config.Config
	rng *rand.Rand
}

// NewState sets up a match on the configured field. The opening serve
// direction is drawn from seed.
func NewState(cfg config.Config, seed uint64) State {
	s := State{
		Field: geom.Playfield{Width: cfg.Field.Width, Height: cfg.Field.Height},
		cfg:   cfg,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}

	size := geom.V(cfg.Paddle.Width, cfg.Paddle.Height)
	hx := s.Field.Width/2 - size.X/2
	s.Paddles[Left] = Paddle{Side: Left, Pos: geom.V(-hx, 0), Size: size}
	s.Paddles[Right] = Paddle{Side: Right, Pos: geom.V(hx, 0), Size: size}

	s.Ball = Ball{Size: geom.V(cfg.Ball.Size, cfg.Ball.Size)}
	toward := Left
	if s.rng.IntN(2) == 1 {
		toward = Right
	}
	s.serve(toward)
	return s
}

// SetField changes the playfield, for hosts whose viewport can be
// resized. Paddles are pulled back inside the new bounds immediately.
// Hosts with a fixed court, which both bundled hosts are, never call it;
// the field then stays the configured constant.
func (s *State) SetField(f geom.Playfield) {
	if f == s.Field || f.Width <= 0 || f.Height <= 0 {
		return
	}
	s.Field = f
	for _, side := range input.Sides {
		s.movePaddle(side, geom.Vec{}, 0)
	}
}

// Winner returns the first side to reach target points. A target of zero
// or less never produces a winner.
func (s *State) Winner(target int) (Side, bool) {
	if target <= 0 {
		return Left, false
	}
	for _, side := range input.Sides {
		if s.Score[side] >= target {
			return side, true
		}
	}
	return Left, false
}

func (s *State) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.New(slog.DiscardHandler)
}
