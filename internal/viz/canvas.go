package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBase = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Ink identifies what drew a cell; the renderer maps it to a style.
// Zero is blank, later strokes overwrite the ink of a shared cell.
type Ink int

const (
	InkNone Ink = iota
	InkAxis
	// InkArrow is the ink of the first arrow; arrow i draws with InkArrow+i.
	InkArrow
)

// Canvas is a grid of Braille cells. Sub-pixel coordinates run from (0, 0)
// at the top left to (2*Cols-1, 4*Rows-1).
type Canvas struct {
	Cols, Rows int
	cells      [][]rune
	ink        [][]Ink
	text       [][]bool
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{Cols: cols, Rows: rows}
	c.cells = make([][]rune, rows)
	c.ink = make([][]Ink, rows)
	c.text = make([][]bool, rows)
	for i := range c.cells {
		c.cells[i] = make([]rune, cols)
		c.ink[i] = make([]Ink, cols)
		c.text[i] = make([]bool, cols)
	}
	c.Clear()
	return c
}

// Width and Height are the canvas size in sub-pixels.
func (c *Canvas) Width() int  { return c.Cols * 2 }
func (c *Canvas) Height() int { return c.Rows * 4 }

func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = brailleBase
			c.ink[i][j] = InkNone
			c.text[i][j] = false
		}
	}
}

// Set lights the sub-pixel at (x, y). Out-of-range points and cells
// holding a label are ignored.
func (c *Canvas) Set(x, y int, ink Ink) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Cols || row >= c.Rows || c.text[row][col] {
		return
	}
	c.cells[row][col] |= pixelMap[y%4][x%2]
	c.ink[row][col] = ink
}

// Lit reports whether the sub-pixel at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Cols || y/4 >= c.Rows {
		return false
	}
	return c.cells[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

// Line draws a segment using Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int, ink Ink) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Arrow draws a segment from (x0, y0) to (x1, y1) with a two-stroke head.
func (c *Canvas) Arrow(x0, y0, x1, y1 int, ink Ink) {
	c.Line(x0, y0, x1, y1, ink)
	dx, dy := float64(x1-x0), float64(y1-y0)
	length := math.Hypot(dx, dy)
	if length < 3 {
		return
	}
	head := math.Max(2, 0.25*length)
	back := math.Atan2(-dy, -dx)
	for _, spread := range []float64{-math.Pi / 7, math.Pi / 7} {
		a := back + spread
		hx := x1 + int(math.Round(head*math.Cos(a)))
		hy := y1 + int(math.Round(head*math.Sin(a)))
		c.Line(x1, y1, hx, hy, ink)
	}
}

// Label writes text starting at the cell holding sub-pixel (x, y). Label
// cells are not overwritten by later strokes.
func (c *Canvas) Label(x, y int, text string, ink Ink) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if row >= c.Rows {
		return
	}
	for _, r := range text {
		if col >= c.Cols {
			return
		}
		c.cells[row][col] = r
		c.ink[row][col] = ink
		c.text[row][col] = true
		col++
	}
}

// String returns the canvas without styling.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render returns the canvas with each run of equal ink styled by style.
func (c *Canvas) Render(style func(Ink) lipgloss.Style) string {
	var b strings.Builder
	for i, row := range c.cells {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.ink[i][j] == c.ink[i][start] {
				continue
			}
			run := string(row[start:j])
			if ink := c.ink[i][start]; ink != InkNone {
				run = style(ink).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
