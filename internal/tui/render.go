package tui

import (
	"bytes"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fchimpan/kusa-pong/internal/game"
	"github.com/fchimpan/kusa-pong/internal/geom"
)

// ===== Render helpers (cached styles) =====

var (
	styleLeft  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#40c463"))
	styleRight = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#79c0ff"))
	styleBall  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd33d"))
	styleWall  = lipgloss.NewStyle().Foreground(lipgloss.Color("#30363d"))
	styleNet   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))

	paddleCells = [2]string{styleLeft.Render("█"), styleRight.Render("█")}
	ballCell    = styleBall.Render("●")
	wallCell    = styleWall.Render("─")
	netCell     = styleNet.Render("┊")

	styleHudLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	styleHudValue = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d0d7de"))
	styleHudScore = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd33d"))
	styleHudOk    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7ee787"))
	styleHudDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
)

var (
	confettiChars  = []rune{'*', '+', 'x', 'o', '~', '^'}
	confettiColors = []lipgloss.Color{
		lipgloss.Color("#ff7b72"),
		lipgloss.Color("#ffd33d"),
		lipgloss.Color("#7ee787"),
		lipgloss.Color("#79c0ff"),
		lipgloss.Color("#d2a8ff"),
	}
	confettiCells = func() [][]string {
		cells := make([][]string, len(confettiChars))
		for i, ch := range confettiChars {
			row := make([]string, len(confettiColors))
			for j, col := range confettiColors {
				row[j] = lipgloss.NewStyle().Foreground(col).Render(string(ch))
			}
			cells[i] = row
		}
		return cells
	}()
)

// projection maps court coordinates (origin at the center, y up) onto a
// cols x rows cell grid (origin top-left, y down).
type projection struct {
	half       geom.Vec
	sx, sy     float64
	cols, rows int
}

func newProjection(f geom.Playfield, cols, rows int) projection {
	return projection{
		half: f.Half(),
		sx:   float64(cols) / f.Width,
		sy:   float64(rows) / f.Height,
		cols: cols,
		rows: rows,
	}
}

func (p projection) col(x float64) int {
	return clampInt(int(math.Floor((x+p.half.X)*p.sx)), 0, p.cols-1)
}

func (p projection) row(y float64) int {
	return clampInt(int(math.Floor((p.half.Y-y)*p.sy)), 0, p.rows-1)
}

func (p projection) cell(v geom.Vec) (x, y int) { return p.col(v.X), p.row(v.Y) }

// span returns the inclusive cell range covered by r. Every rectangle
// covers at least one cell.
func (p projection) span(r geom.Rect) (x0, y0, x1, y1 int) {
	lo, hi := r.Min(), r.Max()
	x0 = p.col(lo.X)
	y0 = p.row(hi.Y)
	x1 = clampInt(int(math.Ceil((hi.X+p.half.X)*p.sx))-1, x0, p.cols-1)
	y1 = clampInt(int(math.Ceil((p.half.Y-lo.Y)*p.sy))-1, y0, p.rows-1)
	return x0, y0, x1, y1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type canvasBuf struct {
	w     int
	h     int
	cells []string // flat: y*w + x
}

func (c *canvasBuf) Reset() {
	c.w = 0
	c.h = 0
	c.cells = nil
}

func (c *canvasBuf) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		c.Reset()
		return
	}
	n := w * h
	if c.w == w && c.h == h && cap(c.cells) >= n {
		c.cells = c.cells[:n]
		return
	}
	c.w = w
	c.h = h
	c.cells = make([]string, n)
}

func (c *canvasBuf) Fill(cell string) {
	for i := range c.cells {
		c.cells[i] = cell
	}
}

func (c *canvasBuf) Set(x, y int, cell string) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell
}

type fieldOverlay struct {
	Title  string
	Lines  []string
	Footer string
	Win    bool
}

// drawCourt paints walls, net, paddles and ball. Rows 0 and rows+1 are the
// walls; the field itself occupies rows 1..rows.
func drawCourt(canvas *canvasBuf, s *game.State, cols, rows int) {
	canvas.Resize(cols, rows+2)
	canvas.Fill(" ")

	for x := 0; x < cols; x++ {
		canvas.Set(x, 0, wallCell)
		canvas.Set(x, rows+1, wallCell)
	}
	for y := 1; y <= rows; y += 2 {
		canvas.Set(cols/2, y, netCell)
	}

	proj := newProjection(s.Field, cols, rows)
	for _, p := range s.Paddles {
		x0, y0, x1, y1 := proj.span(p.Rect())
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				canvas.Set(x, y+1, paddleCells[p.Side])
			}
		}
	}

	bx, by := proj.cell(s.Ball.Pos)
	canvas.Set(bx, by+1, ballCell)
}

func renderCourtTo(out *bytes.Buffer, s *game.State, cols, rows int, leftPad string, overlay *fieldOverlay, confetti []confettiParticle, canvas *canvasBuf) {
	if cols <= 0 || rows <= 0 {
		return
	}
	drawCourt(canvas, s, cols, rows)

	for i := range confetti {
		canvas.Set(confetti[i].X, int(confetti[i].Y)+1, confetti[i].Cell)
	}
	if overlay != nil {
		applyOverlay(canvas, overlay)
	}

	for y := 0; y < canvas.h; y++ {
		if leftPad != "" {
			out.WriteString(leftPad)
		}
		rowOff := y * canvas.w
		for x := 0; x < canvas.w; x++ {
			out.WriteString(canvas.cells[rowOff+x])
		}
		out.WriteByte('\n')
	}
}

func applyOverlay(canvas *canvasBuf, ov *fieldOverlay) {
	h := canvas.h
	w := canvas.w
	if h == 0 || w == 0 {
		return
	}

	lines := make([]string, 0, 2+len(ov.Lines))
	if ov.Title != "" {
		lines = append(lines, ov.Title)
	}
	lines = append(lines, ov.Lines...)
	if ov.Footer != "" {
		lines = append(lines, ov.Footer)
	}

	innerW := 0
	for _, s := range lines {
		innerW = max(innerW, lipgloss.Width(s))
	}
	innerH := len(lines)

	// 1 cell of padding and 1 of border on each side.
	boxW := min(innerW+4, w)
	boxH := min(innerH+4, h)

	x0 := (w - boxW) / 2
	y0 := (h - boxH) / 2

	borderColor := "#30363d"
	titleColor := "#ff7b72"
	if ov.Win {
		borderColor = "#7ee787"
		titleColor = "#7ee787"
	}

	borderStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(titleColor))
	scoreStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd33d"))
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#d0d7de"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	panelStyle := lipgloss.NewStyle().Background(lipgloss.Color("#161b22"))

	bgCell := panelStyle.Render(" ")
	for y := y0; y < y0+boxH; y++ {
		for x := x0; x < x0+boxW; x++ {
			canvas.Set(x, y, bgCell)
		}
	}

	hLine := borderStyle.Render("─")
	vLine := borderStyle.Render("│")
	for x := x0 + 1; x < x0+boxW-1; x++ {
		canvas.Set(x, y0, hLine)
		canvas.Set(x, y0+boxH-1, hLine)
	}
	for y := y0 + 1; y < y0+boxH-1; y++ {
		canvas.Set(x0, y, vLine)
		canvas.Set(x0+boxW-1, y, vLine)
	}
	canvas.Set(x0, y0, borderStyle.Render("╭"))
	canvas.Set(x0+boxW-1, y0, borderStyle.Render("╮"))
	canvas.Set(x0, y0+boxH-1, borderStyle.Render("╰"))
	canvas.Set(x0+boxW-1, y0+boxH-1, borderStyle.Render("╯"))

	tx0 := x0 + 2
	ty0 := y0 + 2
	for i, line := range lines {
		y := ty0 + i
		if y >= y0+boxH-2 {
			break
		}
		line = truncateCells(line, innerW)
		startX := tx0 + (innerW-lipgloss.Width(line))/2

		var st lipgloss.Style
		switch {
		case i == 0 && ov.Title != "":
			st = titleStyle
		case strings.HasPrefix(line, "score:"):
			st = scoreStyle
		case i == len(lines)-1 && ov.Footer != "":
			st = helpStyle
		default:
			st = textStyle
		}

		cellStyle := panelStyle.Foreground(st.GetForeground())
		x := startX
		for _, r := range line {
			rw := max(lipgloss.Width(string(r)), 1)
			if x+rw > x0+boxW-2 {
				break
			}
			canvas.Set(x, y, cellStyle.Render(string(r)))
			// A wide rune spans the following cells, which then print nothing.
			for k := 1; k < rw; k++ {
				canvas.Set(x+k, y, "")
			}
			x += rw
		}
	}
}

// truncateCells cuts s to at most w terminal cells, never splitting a rune.
func truncateCells(s string, w int) string {
	used := 0
	for i, r := range s {
		rw := max(lipgloss.Width(string(r)), 1)
		if used+rw > w {
			return s[:i]
		}
		used += rw
	}
	return s
}
