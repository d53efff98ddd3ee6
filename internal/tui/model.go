package tui

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fchimpan/kusa-pong/internal/config"
	"github.com/fchimpan/kusa-pong/internal/game"
	"github.com/fchimpan/kusa-pong/internal/input"
)

type Options struct {
	Config config.Config
	Seed   uint64
	Speed  float64
	Names  [2]string
	Logger *slog.Logger
	// Sink is told about goals. Nil rings the terminal bell on stderr.
	Sink game.GoalSink
	// Bindings assigns keys to paddles. The zero value means the defaults.
	Bindings input.Bindings
}

type Model struct {
	cfg   config.Config
	seed  uint64
	speed float64
	names [2]string
	log   *slog.Logger
	sink  game.GoalSink
	now   func() time.Time

	lastTick time.Time
	acc      float64

	rng           *rand.Rand
	confetti      []confettiParticle
	confettiSpawn float64

	ready bool
	w     int
	h     int

	state    game.State
	keys     *heldKeys
	bindings input.Bindings

	paused   bool
	over     bool
	winner   game.Side
	flash    float64 // seconds of goal highlight left
	lastGoal game.Side

	viewBuf bytes.Buffer
	canvas  canvasBuf
}

const (
	fixedStep       = 1.0 / 120.0
	maxStepsPerTick = 10
	maxTickDt       = 0.05
	goalFlash       = 0.8
)

func NewModel(opts Options) (*Model, error) {
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
	sink := opts.Sink
	if sink == nil {
		sink = BellSink{W: os.Stderr}
	}
	return &Model{
		cfg:      opts.Config,
		seed:     opts.Seed,
		speed:    speed,
		names:    names,
		log:      log,
		sink:     sink,
		now:      time.Now,
		rng:      rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		keys:     newHeldKeys(defaultHold),
		bindings: bindings,
	}, nil
}

// BellSink rings the terminal bell on every goal. A nil W stays silent.
type BellSink struct {
	W io.Writer
}

func (b BellSink) GoalScored(game.Side) {
	if b.W != nil {
		_, _ = io.WriteString(b.W, "\a")
	}
}

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		d = time.Second / 60
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return tickCmd(time.Second / 60)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w = msg.Width
		m.h = msg.Height
		if !m.ready {
			m.newMatch()
			m.ready = true
		}
		m.canvas.Reset()
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		if m.lastTick.IsZero() {
			m.lastTick = now
			return m, tickCmd(m.frameDuration())
		}

		// Clamp real elapsed time so a stalled terminal doesn't warp the ball.
		dt := now.Sub(m.lastTick).Seconds()
		m.lastTick = now
		if dt < 0 {
			dt = 0
		}
		if dt > maxTickDt {
			dt = maxTickDt
		}

		m.keys.setNow(now)
		m.updateParty(dt)
		if m.flash > 0 {
			m.flash = math.Max(m.flash-dt, 0)
		}

		m.advance(dt)
		return m, tickCmd(m.frameDuration())
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "Q":
			return m, tea.Quit
		case "r", "R":
			if m.ready {
				m.resetMatch()
			}
			return m, nil
		case "p", "P", " ":
			if m.ready && !m.over {
				m.paused = !m.paused
				m.acc = 0
			}
			return m, nil
		case "+", "=":
			m.speed = math.Min(m.speed+0.1, 5)
			return m, nil
		case "-", "_":
			m.speed = math.Max(m.speed-0.1, 0.25)
			return m, nil
		}
		if k, ok := keyMap[msg.String()]; ok && !m.paused {
			m.keys.press(k, m.now())
		}
		return m, nil
	default:
		return m, nil
	}
}

// advance runs the simulation with a fixed timestep; fixed steps keep
// collisions reproducible regardless of the terminal's frame rate.
func (m *Model) advance(dt float64) {
	if !m.ready || m.paused || m.over {
		return
	}
	m.acc += dt * m.speed
	steps := 0
	for m.acc >= fixedStep && steps < maxStepsPerTick {
		m.step(fixedStep)
		m.acc -= fixedStep
		steps++
		if m.over {
			break
		}
	}
	// Too far behind: drop the remainder to keep the app responsive.
	if steps >= maxStepsPerTick {
		m.acc = math.Mod(m.acc, fixedStep)
	}
}

func (m *Model) step(dt float64) {
	ev := m.state.Step(dt, game.Input{Intent: m.bindings.Intents(m.keys)})
	ev.Notify(m.sink)
	if ev.Goal == nil {
		return
	}
	m.flash = goalFlash
	m.lastGoal = ev.Goal.Scorer
	if side, ok := m.state.Winner(m.cfg.WinScore); ok {
		m.over = true
		m.winner = side
		m.log.Info("match over",
			slog.String("winner", side.String()),
			slog.Int("left", m.state.Score[game.Left]),
			slog.Int("right", m.state.Score[game.Right]),
		)
	}
}

func (m *Model) frameDuration() time.Duration {
	if !m.ready || m.paused {
		return time.Second / 15
	}
	if m.over {
		return time.Second / 30
	}
	return time.Second / 60
}

func (m *Model) newMatch() {
	m.state = game.NewState(m.cfg, m.seed)
	m.state.Log = m.log
	m.lastTick = time.Time{}
	m.acc = 0
	m.confetti = nil
	m.confettiSpawn = 0
	m.paused = false
	m.over = false
	m.flash = 0
	m.keys.reset()
}

func (m *Model) resetMatch() {
	// Change seed so rematches feel fresh even with a fixed --seed.
	m.seed++
	m.rng = rand.New(rand.NewPCG(m.seed, m.seed^0x9e3779b97f4a7c15))
	m.log.Info("rematch", slog.Uint64("seed", m.seed))
	m.newMatch()
}

// court returns the drawable field size in cells.
func (m *Model) court() (cols, rows int) {
	return max(m.w-2, 20), max(m.h-6, 8)
}

func (m *Model) View() string {
	if !m.ready {
		return "loading...\n"
	}

	m.viewBuf.Reset()
	b := &m.viewBuf

	cols, rows := m.court()
	hud := renderHUD(m.names, m.state.Score, m.speed, m.flash > 0, m.lastGoal)

	infoLine := "first to " + fmt.Sprint(m.cfg.WinScore) + "  (p pause, r restart, q quit)"
	if m.cfg.WinScore <= 0 {
		infoLine = "endless match  (p pause, r restart, q quit)"
	}
	if m.state.Phase == game.Serving && !m.over {
		infoLine = "serving..."
	}

	contentW := cols
	if w := lipgloss.Width(hud); w > contentW {
		contentW = w
	}
	leftPad := 0
	if m.w > contentW {
		leftPad = (m.w - contentW) / 2
	}
	leftPadStr := strings.Repeat(" ", leftPad)

	// Lines: HUD(1) + info(1) + walls(2) + field(rows)
	contentH := 1 + 1 + rows + 2
	for i := 0; i < (m.h-contentH)/2; i++ {
		b.WriteString("\n")
	}

	b.WriteString(leftPadStr)
	b.WriteString(hud)
	b.WriteString("\n")
	b.WriteString(leftPadStr)
	b.WriteString(styleHudDim.Render(infoLine))
	b.WriteString("\n")

	var overlay *fieldOverlay
	switch {
	case m.over:
		overlay = &fieldOverlay{
			Title: "MATCH OVER",
			Lines: []string{
				fmt.Sprintf("%s wins!", m.names[m.winner]),
				fmt.Sprintf("score: %d - %d", m.state.Score[game.Left], m.state.Score[game.Right]),
			},
			Footer: "press r for a rematch, q to quit",
			Win:    true,
		}
	case m.paused:
		overlay = &fieldOverlay{
			Title:  "PAUSED",
			Lines:  []string{fmt.Sprintf("score: %d - %d", m.state.Score[game.Left], m.state.Score[game.Right])},
			Footer: "press p to resume",
		}
	}

	var confetti []confettiParticle
	if m.over {
		confetti = m.confetti
	}
	renderCourtTo(b, &m.state, cols, rows, leftPadStr, overlay, confetti, &m.canvas)

	if b.Len() == 0 || b.Bytes()[b.Len()-1] != '\n' {
		b.WriteByte('\n')
	}
	return b.String()
}

func renderHUD(names [2]string, score [2]int, speed float64, flashing bool, scorer game.Side) string {
	sep := styleHudDim.Render("  |  ")

	scoreStyle := [2]lipgloss.Style{styleHudScore, styleHudScore}
	if flashing {
		scoreStyle[scorer] = styleHudOk
	}

	return strings.Join([]string{
		styleLeft.Render(names[game.Left]) + " " + scoreStyle[game.Left].Render(fmt.Sprintf("%2d", score[game.Left])),
		styleHudDim.Render(" : "),
		scoreStyle[game.Right].Render(fmt.Sprintf("%-2d", score[game.Right])) + " " + styleRight.Render(names[game.Right]),
		sep,
		styleHudLabel.Render("speed ") + styleHudValue.Render(fmt.Sprintf("%.2fx", speed)),
		styleHudDim.Render("  (wasd vs ←↑↓→/ijkl, +/- speed)"),
	}, "")
}

type confettiParticle struct {
	X    int
	Y    float64
	VY   float64
	Cell string
}

func (m *Model) updateParty(dt float64) {
	if !m.ready {
		return
	}
	if !m.over {
		if len(m.confetti) > 0 {
			m.confetti = nil
			m.confettiSpawn = 0
		}
		return
	}

	w, h := m.court()

	out := m.confetti[:0]
	for i := range m.confetti {
		p := m.confetti[i]
		p.Y += p.VY * dt
		if p.Y < float64(h) {
			out = append(out, p)
		}
	}
	m.confetti = out

	m.confettiSpawn += dt * 45.0
	if m.confettiSpawn > 200 {
		m.confettiSpawn = 200
	}
	for m.confettiSpawn >= 1.0 {
		m.confettiSpawn -= 1.0
		ci := m.rng.IntN(len(confettiChars))
		co := m.rng.IntN(len(confettiColors))
		m.confetti = append(m.confetti, confettiParticle{
			X:    m.rng.IntN(w),
			Y:    -1,
			VY:   10.0 + m.rng.Float64()*25.0,
			Cell: confettiCells[ci][co],
		})
	}
}
