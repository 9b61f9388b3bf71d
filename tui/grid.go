package tui

import (
	"math"
	"strings"

	"github.com/ByLCY/flowlayout/host"
	"github.com/ByLCY/flowlayout/layout"
)

// grid is a character canvas; one cell covers cellW x cellH layout units.
type grid struct {
	cells        [][]rune
	cellW, cellH float64
}

func newGrid(cols, rows int, cellW, cellH float64) *grid {
	g := &grid{cellW: cellW, cellH: cellH, cells: make([][]rune, rows)}
	for i := range g.cells {
		g.cells[i] = []rune(strings.Repeat(" ", cols))
	}
	return g
}

func (g *grid) rows() int { return len(g.cells) }

func (g *grid) cols() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// span maps a rect to cell bounds [x0,x1) x [y0,y1), at least one cell wide
// and tall, unclipped.
func (g *grid) span(r layout.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Round(r.Left / g.cellW))
	y0 = int(math.Round(r.Top / g.cellH))
	x1 = max(int(math.Round(r.Right/g.cellW)), x0+1)
	y1 = max(int(math.Round(r.Bottom/g.cellH)), y0+1)
	return
}

func (g *grid) set(x, y int, ch rune) {
	if y < 0 || y >= g.rows() || x < 0 || x >= g.cols() {
		return
	}
	g.cells[y][x] = ch
}

// drawView draws an item as a box with its label centred; disappearing
// items are shaded instead of boxed.
func (g *grid) drawView(v *host.View) {
	x0, y0, x1, y1 := g.span(v.Rect)
	w, h := x1-x0, y1-y0
	boxed := w >= 2 && h >= 2 && v.Placement != layout.PlacedDisappearing
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			g.set(x, y, cellRune(x, y, x0, y0, x1, y1, boxed, v.Placement))
		}
	}
	inner := w - 2
	if !boxed {
		inner = w
	}
	label := []rune(v.Label)
	if inner <= 0 || len(label) == 0 {
		return
	}
	if len(label) > inner {
		label = label[:inner]
	}
	ly := y0 + h/2
	lx := x0 + (w-len(label))/2
	for i, ch := range label {
		g.set(lx+i, ly, ch)
	}
}

func cellRune(x, y, x0, y0, x1, y1 int, boxed bool, p layout.Placement) rune {
	switch {
	case p == layout.PlacedDisappearing:
		return '░'
	case !boxed:
		return '█'
	case y == y0 && x == x0:
		return '┌'
	case y == y0 && x == x1-1:
		return '┐'
	case y == y1-1 && x == x0:
		return '└'
	case y == y1-1 && x == x1-1:
		return '┘'
	case y == y0 || y == y1-1:
		return '─'
	case x == x0 || x == x1-1:
		return '│'
	default:
		return ' '
	}
}

func (g *grid) String() string {
	lines := make([]string, len(g.cells))
	for i, row := range g.cells {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}
