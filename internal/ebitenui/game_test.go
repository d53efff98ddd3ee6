package ebitenui

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fchimpan/kusa-pong/internal/config"
	"github.com/fchimpan/kusa-pong/internal/game"
	"github.com/fchimpan/kusa-pong/internal/geom"
	"github.com/fchimpan/kusa-pong/internal/input"
)

type goalRecorder struct{ scorers []game.Side }

func (r *goalRecorder) GoalScored(s game.Side) { r.scorers = append(r.scorers, s) }

func TestKeyMap_IsComplete(t *testing.T) {
	t.Parallel()

	seen := map[ebiten.Key]bool{}
	for _, side := range input.Sides {
		b := input.DefaultBindings()[side]
		for _, k := range []input.Key{b.Up, b.Down, b.Left, b.Right} {
			ek, ok := keyMap[k]
			require.True(t, ok, "key %d has no binding", k)
			require.False(t, seen[ek], "ebiten key %v bound twice", ek)
			seen[ek] = true
		}
	}
}

func TestToScreen(t *testing.T) {
	t.Parallel()

	f := geom.Playfield{Width: 800, Height: 600}
	x, y, w, h := toScreen(f, geom.RectAt(geom.V(-390, 0), geom.V(20, 100)))
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(250), y)
	assert.Equal(t, float32(20), w)
	assert.Equal(t, float32(100), h)
}

func TestAdvance_SubstepsAndScores(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Serve.Delay = 0
	cfg.WinScore = 1
	rec := &goalRecorder{}
	g, err := New(Options{Config: cfg, Seed: 3, Sink: rec})
	require.NoError(t, err)
	g.keys = input.Set{}

	g.state.Phase = game.InPlay
	g.state.Ball.Pos = geom.V(-1000, 100)
	// Well past the core's dt cap; must still be simulated in pieces.
	g.advance(0.2)

	assert.Equal(t, []game.Side{game.Right}, rec.scorers)
	assert.True(t, g.over)
	assert.Equal(t, game.Right, g.winner)
	assert.Equal(t, [2]int{0, 1}, g.state.Score)
}

func TestAdvance_PausedDoesNothing(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Serve.Delay = 0
	g, err := New(Options{Config: cfg, Seed: 3, Sink: &goalRecorder{}})
	require.NoError(t, err)
	g.keys = input.Set{input.LeftUp: true}
	g.paused = true

	before := g.state.Paddles
	g.advance(0.1)
	assert.Equal(t, before, g.state.Paddles)

	g.paused = false
	g.advance(0.1)
	assert.Greater(t, g.state.Paddles[game.Left].Pos.Y, 0.0)
}

func TestSineTone(t *testing.T) {
	t.Parallel()

	tone := sineTone(440, 0.01, 0.5)
	assert.Len(t, tone, int(0.01*sampleRate)*4)
	assert.Equal(t, tone[0:2], tone[2:4], "left and right channels match")
}

func TestNew_RejectsSharedBindings(t *testing.T) {
	t.Parallel()

	b := input.DefaultBindings()
	b[input.Left].Down = b[input.Right].Down
	_, err := New(Options{Config: config.Default(), Bindings: b})
	require.Error(t, err)
}
