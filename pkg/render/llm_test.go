package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/trendline/pkg/chart"
	"github.com/dkoosis/trendline/pkg/pattern"
)

func TestLLM_Render_Sample(t *testing.T) {
	t.Parallel()

	out := NewLLM().Render(pattern.FromSample())

	require.True(t, strings.HasPrefix(out, "SCOPE: 2 patterns, 1 charts, 5 points\n"), out)
	assert.Contains(t, out, "CHART: Sample (5 points, 1 series)")
	assert.Contains(t, out, "x: Jan .. May")
	assert.Contains(t, out, "SERIES value: 400 300 600 800 500")
	assert.Contains(t, out, "DATASET: Sample data")
	assert.Contains(t, out, "Peak: 800")
	assert.NotContains(t, out, "\x1b[", "no ANSI escapes")
}

func TestLLM_Render_MarksGapsAndBands(t *testing.T) {
	t.Parallel()

	spec := chart.SampleSpec()
	spec.Title = "Gappy"
	spec.Lines[0].Values = chart.Values{1, chart.Gap(), 2.5, 3, 4}
	spec.Bands = []chart.Band{{
		Name:  "Range",
		Upper: chart.Values{chart.Gap(), 2, 3, 4, 5},
		Lower: chart.Values{chart.Gap(), 0, 1, 2, 3},
		Fill:  "#000",
	}}

	out := NewLLM().Render([]pattern.Pattern{&pattern.LineChart{Label: "g", Chart: spec}})

	assert.Contains(t, out, "CHART: Gappy")
	assert.Contains(t, out, "SERIES value: 1 - 2.50 3 4")
	assert.Contains(t, out, "BAND Range upper: - 2 3 4 5")
	assert.Contains(t, out, "BAND Range lower: - 0 1 2 3")
}

func TestLLM_Render_OtherPatterns(t *testing.T) {
	t.Parallel()

	out := NewLLM().Render([]pattern.Pattern{
		&pattern.Sparkline{Label: "Vol", Values: []float64{1, 2.5}},
		&pattern.Comparison{Label: "Proj", Shifts: []pattern.Shift{
			{Series: "CCI", From: 50, To: 55, Unit: " pts"},
		}},
		&pattern.Leaderboard{Label: "Top", Of: 3, Entries: []pattern.RankedMonth{
			{Month: time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), Value: 80},
		}},
		&pattern.Error{Source: "load", Message: "boom"},
	})

	assert.Contains(t, out, "SCOPE: 4 patterns, 0 charts, 0 points")
	assert.Contains(t, out, "TREND: Vol\n  1.00 2.50")
	assert.Contains(t, out, "CCI: 50.00 -> 55.00 (+5.00 pts)")
	assert.Contains(t, out, "RANK: Top (1 of 3)\n  1. Mar 2024 80.00")
	assert.Contains(t, out, "ERR load: boom")
}
