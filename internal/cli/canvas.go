package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/treedisplay/pkg/render/nodelink"
)

// Terminal cells are treated as cellWidth x cellHeight pixels when mapping
// diagram coordinates and container sizes.
const (
	cellWidth  = 10.0
	cellHeight = 10.0
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellLink
	cellNode
)

var canvasStyles = map[cellKind]lipgloss.Style{
	cellLink: lipgloss.NewStyle().Foreground(colorGray),
	cellNode: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(colorGreen),
}

// canvas is a fixed-size grid of terminal cells.
type canvas struct {
	w, h  int
	runes [][]rune
	kinds [][]cellKind
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{w: w, h: h, runes: make([][]rune, h), kinds: make([][]cellKind, h)}
	for y := range c.runes {
		c.runes[y] = []rune(strings.Repeat(" ", w))
		c.kinds[y] = make([]cellKind, w)
	}
	return c
}

func (c *canvas) set(x, y int, r rune, k cellKind) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.runes[y][x] = r
	c.kinds[y][x] = k
}

// line draws a straight link between two cells. Cells already taken by a
// node are left alone.
func (c *canvas) line(x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	r := '│'
	switch {
	case dx == 0 && dy == 0:
		return
	case dy == 0:
		r = '─'
	case dx == 0:
	case (dx > 0) == (dy > 0):
		r = '\\'
	default:
		r = '/'
	}

	steps := max(abs(dx), abs(dy))
	for i := 0; i <= steps; i++ {
		x := x0 + int(math.Round(float64(dx*i)/float64(steps)))
		y := y0 + int(math.Round(float64(dy*i)/float64(steps)))
		if x >= 0 && y >= 0 && x < c.w && y < c.h && c.kinds[y][x] == cellNode {
			continue
		}
		c.set(x, y, r, cellLink)
	}
}

// box draws a node footprint fo around the cell (cx, cy) with label centered
// on its middle row.
func (c *canvas) box(cx, cy int, fo nodelink.ForeignObject, label string) {
	left := cx + int(math.Round(fo.X/cellWidth))
	top := cy + int(math.Round(fo.Y/cellHeight))
	w := max(int(math.Round(fo.Width/cellWidth)), 3)
	h := max(int(math.Round(fo.Height/cellHeight)), 3)

	for y := top; y < top+h; y++ {
		for x := left; x < left+w; x++ {
			r := ' '
			switch {
			case y == top && x == left:
				r = '┌'
			case y == top && x == left+w-1:
				r = '┐'
			case y == top+h-1 && x == left:
				r = '└'
			case y == top+h-1 && x == left+w-1:
				r = '┘'
			case y == top || y == top+h-1:
				r = '─'
			case x == left || x == left+w-1:
				r = '│'
			}
			c.set(x, y, r, cellNode)
		}
	}

	text := []rune(nodelink.Truncate(label, w-2))
	start := left + 1 + (w-2-len(text))/2
	mid := top + h/2
	for i, r := range text {
		c.set(start+i, mid, r, cellNode)
	}
}

// String renders the grid, styling runs of equal cell kinds.
func (c *canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.w; {
			k := c.kinds[y][x]
			end := x
			for end < c.w && c.kinds[y][end] == k {
				end++
			}
			run := string(c.runes[y][x:end])
			if style, ok := canvasStyles[k]; ok {
				run = style.Render(run)
			}
			b.WriteString(run)
			x = end
		}
	}
	return b.String()
}

// plain returns the grid without styling.
func (c *canvas) plain() string {
	lines := make([]string, c.h)
	for y := range c.runes {
		lines[y] = string(c.runes[y])
	}
	return strings.Join(lines, "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
