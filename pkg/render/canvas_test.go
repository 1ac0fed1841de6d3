package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkoosis/trendline/pkg/chart"
)

func TestCanvas_CombinesDotsInACell(t *testing.T) {
	t.Parallel()

	cv := newCanvas(2, 1)
	cv.set(0, 0, "#111111")
	cv.set(1, 3, "#64b5f6")

	g, color, lit := cv.cell(0, 0)
	assert.True(t, lit)
	assert.Equal(t, rune(brailleBase+0x01+0x80), g)
	assert.Equal(t, "#64b5f6", color, "last writer owns the cell color")

	_, _, lit = cv.cell(1, 0)
	assert.False(t, lit)
}

func TestCanvas_DropsDotsOutsideTheGrid(t *testing.T) {
	t.Parallel()

	cv := newCanvas(1, 1)
	cv.set(-1, 0, "#fff")
	cv.set(2, 0, "#fff")
	cv.set(0, 4, "#fff")

	_, _, lit := cv.cell(0, 0)
	assert.False(t, lit)
}

func TestCanvas_DottedLineSkipsDots(t *testing.T) {
	t.Parallel()

	solid := newCanvas(4, 1)
	solid.polyline([]chart.Pt{{X: 0, Y: 0}, {X: 7, Y: 0}}, "#fff", false)
	dotted := newCanvas(4, 1)
	dotted.polyline([]chart.Pt{{X: 0, Y: 0}, {X: 7, Y: 0}}, "#fff", true)

	for col := 0; col < 4; col++ {
		g, _, _ := solid.cell(col, 0)
		assert.Equal(t, rune(brailleBase+0x01+0x08), g, "solid col %d", col)
		g, _, _ = dotted.cell(col, 0)
		assert.Equal(t, rune(brailleBase+0x01), g, "dotted col %d", col)
	}
}
