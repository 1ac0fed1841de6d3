package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/trendline/pkg/analysis"
	"github.com/dkoosis/trendline/pkg/chart"
	"github.com/dkoosis/trendline/pkg/pattern"
	"github.com/dkoosis/trendline/pkg/series"
)

func countBraille(s string) int {
	n := 0
	for _, r := range s {
		if r > brailleBase && r <= brailleBase+0xff {
			n++
		}
	}
	return n
}

func TestTerminal_RenderChart_DrawsSample(t *testing.T) {
	t.Parallel()

	r := NewTerminal(MonoTheme(), 60)
	out := r.RenderChart(chart.SampleSpec(), FrameOptions{Progress: 1})

	assert.Positive(t, countBraille(out))
	assert.Contains(t, out, "Jan")
	assert.Contains(t, out, "May")
	assert.Contains(t, out, "┄", "dashed grid")
	assert.Contains(t, out, "└")

	legend := strings.Index(out, "-- value")
	require.GreaterOrEqual(t, legend, 0)
	assert.Greater(t, legend, strings.LastIndex(out, "May"), "legend sits below the axis")
}

func TestTerminal_RenderChart_RevealsWithProgress(t *testing.T) {
	t.Parallel()

	r := NewTerminal(MonoTheme(), 60)
	spec := chart.SampleSpec()

	start := countBraille(r.RenderChart(spec, FrameOptions{Progress: 0}))
	mid := countBraille(r.RenderChart(spec, FrameOptions{Progress: 0.5}))
	end := countBraille(r.RenderChart(spec, FrameOptions{Progress: 1}))

	assert.Less(t, start, mid)
	assert.Less(t, mid, end)
}

func TestTerminal_RenderChart_ShowsTooltipAtCursor(t *testing.T) {
	t.Parallel()

	r := NewTerminal(MonoTheme(), 60)
	out := r.RenderChart(chart.SampleSpec(), FrameOptions{Progress: 1, Cursor: 2, ShowCursor: true})

	assert.Contains(t, out, "Mar")
	assert.Contains(t, out, "value: 600")
}

func TestTerminal_RenderChart_HonoursHeightAndEmptySpec(t *testing.T) {
	t.Parallel()

	r := NewTerminal(MonoTheme(), 60)
	out := r.RenderChart(chart.SampleSpec(), FrameOptions{Height: 8, Progress: 1})
	// 8 plot rows, the axis, the x labels and the legend.
	assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 11)

	assert.Empty(t, r.RenderChart(nil, FrameOptions{}))
	assert.Empty(t, r.RenderChart(&chart.Spec{}, FrameOptions{}))
}

func TestTerminal_RenderChart_DrawsDashboard(t *testing.T) {
	t.Parallel()

	full := series.GenerateIndex(series.GenOptions{})
	v, err := analysis.BuildView(full, series.Period1Y, []analysis.MovingAverage{analysis.MA4Month, analysis.MA1Year})
	require.NoError(t, err)

	out := NewTerminal(DefaultTheme(), 100).RenderChart(chart.DashboardSpec(v), FrameOptions{Progress: 1})

	assert.Contains(t, out, "CCI Value")
	assert.Contains(t, out, "4-Month MA")
	assert.Contains(t, out, "1-Year MA")
	assert.Contains(t, out, "Projection Range")
	assert.Less(t, strings.Index(out, "4-Month MA"), strings.Index(out, "CCI Value"), "legend sits on top")
}

func TestTerminal_Render_Patterns(t *testing.T) {
	t.Parallel()

	r := NewTerminal(MonoTheme(), 80)
	out := r.Render(pattern.FromSample())

	assert.Contains(t, out, "Sample Data")
	assert.Contains(t, out, "Peak:")
	assert.Contains(t, out, "800")
	assert.Positive(t, countBraille(out))
}

func TestTerminal_Render_DashboardPanels(t *testing.T) {
	t.Parallel()

	full := series.GenerateIndex(series.GenOptions{})
	v, err := analysis.BuildView(full, series.Period1Y, nil)
	require.NoError(t, err)
	m, err := analysis.Summarize(v.Visible, v.Projection)
	require.NoError(t, err)

	out := NewTerminal(MonoTheme(), 100).Render(pattern.FromDashboard(v, m))

	assert.Contains(t, out, "Current Value:")
	assert.Contains(t, out, "12-Month Projection")
	assert.Contains(t, out, "Highest Readings (top 5 of 12)")
	assert.Contains(t, out, " 1. ")
}

func TestTerminal_Render_Error(t *testing.T) {
	t.Parallel()

	out := NewTerminal(MonoTheme(), 80).Render([]pattern.Pattern{
		&pattern.Error{Source: "load", Message: "boom"},
	})
	assert.Equal(t, "x load: boom\n", out)
}

func TestSparkline(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "▁█", sparkline([]float64{0, 7}, nil))
	assert.Equal(t, "▁▁▁", sparkline([]float64{3, 3, 3}, nil))
	assert.Equal(t, "▁▄█", sparkline([]float64{-5, 4, 50}, &chart.Domain{Min: 0, Max: 8}))
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "600", formatValue(600))
	assert.Equal(t, "1,250", formatValue(1250))
	assert.Equal(t, "72.41", formatValue(72.4123))
}

func TestThemeByName(t *testing.T) {
	t.Parallel()

	for _, name := range ThemeNames() {
		assert.Equal(t, name, ThemeByName(name).Name)
	}
	assert.Equal(t, "default", ThemeByName("neon").Name)
	assert.False(t, MonoTheme().Color)
}

func TestFlatten_BlendsOntoBackground(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#333333", flatten("rgba(255, 255, 255, 0.2)", "#000000"))
	assert.Equal(t, "#1e1e1e", flatten("rgba(244, 63, 94, 0)", "#1e1e1e"))
	assert.Equal(t, "#64b5f6", flatten("#64b5f6", "#1e1e1e"), "opaque colors pass through")
	assert.Equal(t, "#f43f5e", flatten("rgba(244, 63, 94, 0.1)", ""), "no background keeps full strength")
	assert.Equal(t, "teal", flatten("teal", "#000000"))

	assert.Equal(t, "#f43f5e", opaque("rgba(244, 63, 94, 0.1)"), "band strokes keep full strength")
}

func TestRenderChart_FlattensTranslucentTooltip(t *testing.T) {
	t.Parallel()

	spec := chart.SampleSpec()
	spec.Background = "#000000"
	spec.Tooltip.Background = "rgba(255, 255, 255, 0.2)"

	out := NewTerminal(DefaultTheme(), 80).RenderChart(spec, FrameOptions{Cursor: 2, ShowCursor: true, Progress: 1})
	assert.Contains(t, out, "Mar")
	assert.Contains(t, out, "600")
}
