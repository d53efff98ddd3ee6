// Package ebitenui hosts a match in a desktop window using Ebitengine.
// Unlike a terminal, the window reports real key-held state.
package ebitenui

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/fchimpan/kusa-pong/internal/config"
	"github.com/fchimpan/kusa-pong/internal/game"
	"github.com/fchimpan/kusa-pong/internal/geom"
	"github.com/fchimpan/kusa-pong/internal/input"
)

type Options struct {
	Config config.Config
	Seed   uint64
	Speed  float64
	Names  [2]string
	Logger *slog.Logger
	// Sink is told about goals. Nil plays a short beep.
	Sink game.GoalSink
	// Bindings assigns keys to paddles. The zero value means the defaults.
	Bindings input.Bindings
}

var (
	colorBackground = color.RGBA{0x0d, 0x11, 0x17, 0xff}
	colorNet        = color.RGBA{0x30, 0x36, 0x3d, 0xff}
	colorBall       = color.RGBA{0xff, 0xd3, 0x3d, 0xff}
	colorPaddles    = [2]color.RGBA{
		{0x40, 0xc4, 0x63, 0xff},
		{0x79, 0xc0, 0xff, 0xff},
	}
)

// keyMap binds Ebitengine keys to paddle keys: WASD for the left paddle,
// arrows for the right one.
var keyMap = map[input.Key]ebiten.Key{
	input.LeftUp:     ebiten.KeyW,
	input.LeftDown:   ebiten.KeyS,
	input.LeftLeft:   ebiten.KeyA,
	input.LeftRight:  ebiten.KeyD,
	input.RightUp:    ebiten.KeyArrowUp,
	input.RightDown:  ebiten.KeyArrowDown,
	input.RightLeft:  ebiten.KeyArrowLeft,
	input.RightRight: ebiten.KeyArrowRight,
}

type keyboard struct{}

func (keyboard) Pressed(k input.Key) bool {
	ek, ok := keyMap[k]
	return ok && ebiten.IsKeyPressed(ek)
}

type Game struct {
	cfg      config.Config
	seed     uint64
	speed    float64
	names    [2]string
	log      *slog.Logger
	sink     game.GoalSink
	keys     input.KeySource
	bindings input.Bindings

	state  game.State
	paused bool
	over   bool
	winner game.Side
}

const fixedStep = 1.0 / 120.0

func New(opts Options) (*Game, error) {
	bindings := opts.Bindings
	if bindings == (input.Bindings{}) {
		bindings = input.DefaultBindings()
	}
	if err := bindings.Validate(); err != nil {
		return nil, fmt.Errorf("key bindings: %w", err)
	}
	speed := opts.Speed
	if speed <= 0 {
		speed = 1
	}
	names := opts.Names
	for i, n := range names {
		if n == "" {
			names[i] = input.Sides[i].String()
		}
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	g := &Game{
		cfg:      opts.Config,
		seed:     opts.Seed,
		speed:    speed,
		names:    names,
		log:      log,
		sink:     opts.Sink,
		keys:     keyboard{},
		bindings: bindings,
	}
	g.newMatch()
	return g, nil
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	g, err := New(opts)
	if err != nil {
		return err
	}
	if g.sink == nil {
		g.sink = newBeeper()
	}
	ebiten.SetWindowSize(int(opts.Config.Field.Width), int(opts.Config.Field.Height))
	ebiten.SetWindowTitle(fmt.Sprintf("kusa-pong: %s vs %s", g.names[game.Left], g.names[game.Right]))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (g *Game) newMatch() {
	g.state = game.NewState(g.cfg, g.seed)
	g.state.Log = g.log
	g.paused = false
	g.over = false
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.seed++
		g.log.Info("rematch", slog.Uint64("seed", g.seed))
		g.newMatch()
		return nil
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if !g.over {
			g.paused = !g.paused
		}
	}
	g.advance(g.speed / float64(ebiten.TPS()))
	return nil
}

// advance splits dt into fixed-size steps so speed multipliers above 1
// don't run into the core's per-frame dt cap.
func (g *Game) advance(dt float64) {
	if g.paused || g.over {
		return
	}
	for dt > 0 && !g.over {
		d := min(dt, fixedStep)
		dt -= d
		in := game.Input{Intent: g.bindings.Intents(g.keys)}
		ev := g.state.Step(d, in)
		ev.Notify(g.sink)
		if ev.Goal == nil {
			continue
		}
		if side, ok := g.state.Winner(g.cfg.WinScore); ok {
			g.over = true
			g.winner = side
			g.log.Info("match over", slog.String("winner", side.String()))
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	w := float32(g.state.Field.Width)
	h := float32(g.state.Field.Height)
	for y := float32(0); y < h; y += 30 {
		vector.DrawFilledRect(screen, w/2-1, y, 2, 15, colorNet, false)
	}

	for _, p := range g.state.Paddles {
		drawRect(screen, g.state.Field, p.Rect(), colorPaddles[p.Side])
	}
	drawRect(screen, g.state.Field, g.state.Ball.Rect(), colorBall)

	hud := fmt.Sprintf("%s %d : %d %s", g.names[game.Left], g.state.Score[game.Left], g.state.Score[game.Right], g.names[game.Right])
	switch {
	case g.over:
		hud += fmt.Sprintf("   %s wins! (r rematch, esc quit)", g.names[g.winner])
	case g.paused:
		hud += "   paused (p resume)"
	}
	ebitenutil.DebugPrintAt(screen, hud, 10, 10)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.state.Field.Width), int(g.state.Field.Height)
}

// toScreen converts a court rectangle to a top-left anchored screen box.
func toScreen(f geom.Playfield, r geom.Rect) (x, y, w, h float32) {
	half := f.Half()
	lo, hi := r.Min(), r.Max()
	return float32(lo.X + half.X), float32(half.Y - hi.Y), float32(hi.X - lo.X), float32(hi.Y - lo.Y)
}

func drawRect(dst *ebiten.Image, f geom.Playfield, r geom.Rect, c color.Color) {
	x, y, w, h := toScreen(f, r)
	vector.DrawFilledRect(dst, x, y, w, h, c, false)
}
