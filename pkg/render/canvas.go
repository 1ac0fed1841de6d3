package render

import (
	"image"
	"math"

	"github.com/gizak/termui/v3/drawille"

	"github.com/dkoosis/trendline/pkg/chart"
)

const brailleBase = 0x2800

// canvas is a braille dot matrix backed by termui's drawille canvas: each
// terminal cell holds 2x4 dots and keeps the color of the last series that
// touched it. Dots outside cols x rows are dropped.
type canvas struct {
	cols, rows int
	dots       *drawille.Canvas
	palette    []string
	cells      map[image.Point]drawille.Cell
}

func newCanvas(cols, rows int) *canvas {
	return &canvas{cols: cols, rows: rows, dots: drawille.NewCanvas()}
}

// dotWidth and dotHeight are the canvas size in dots.
func (c *canvas) dotWidth() int  { return c.cols * 2 }
func (c *canvas) dotHeight() int { return c.rows * 4 }

// colorIndex interns a color string as a drawille color.
func (c *canvas) colorIndex(color string) drawille.Color {
	for i, p := range c.palette {
		if p == color {
			return drawille.Color(i)
		}
	}
	c.palette = append(c.palette, color)
	return drawille.Color(len(c.palette) - 1)
}

// set lights the dot at (x, y).
func (c *canvas) set(x, y int, color string) {
	if x < 0 || y < 0 || x >= c.dotWidth() || y >= c.dotHeight() {
		return
	}
	c.dots.SetPoint(image.Pt(x, y), c.colorIndex(color))
	c.cells = nil
}

// step lights every stride-th dot along a segment, both ends included
// when stride is 1.
func (c *canvas) step(a, b chart.Pt, stride int, color string) {
	steps := int(math.Ceil(math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))))
	for s := 0; s <= steps; s += stride {
		t := 0.0
		if steps > 0 {
			t = float64(s) / float64(steps)
		}
		c.set(int(math.Round(a.X+t*(b.X-a.X))), int(math.Round(a.Y+t*(b.Y-a.Y))), color)
	}
}

// polyline draws connected segments, every other dot when dotted.
func (c *canvas) polyline(pts []chart.Pt, color string, dotted bool) {
	if len(pts) == 1 {
		c.set(int(math.Round(pts[0].X)), int(math.Round(pts[0].Y)), color)
		return
	}
	stride := 1
	if dotted {
		stride = 2
	}
	for i := 1; i < len(pts); i++ {
		c.step(pts[i-1], pts[i], stride, color)
	}
}

// marker lights a 2x2 block centred on p.
func (c *canvas) marker(p chart.Pt, color string) {
	x, y := int(math.Round(p.X)), int(math.Round(p.Y))
	for dx := -1; dx <= 0; dx++ {
		for dy := -1; dy <= 0; dy++ {
			c.set(x+dx, y+dy, color)
		}
	}
}

// cell returns the glyph and color at a cell, and whether any dot is lit.
func (c *canvas) cell(col, row int) (rune, string, bool) {
	if c.cells == nil {
		c.cells = c.dots.GetCells()
	}
	got, ok := c.cells[image.Pt(col, row)]
	if !ok || got.Rune == brailleBase {
		return ' ', "", false
	}
	return got.Rune, c.palette[got.Color], true
}
