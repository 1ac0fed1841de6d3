package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/trendline/pkg/chart"
	"github.com/dkoosis/trendline/pkg/pattern"
)

func TestHTML_Render_Sample(t *testing.T) {
	t.Parallel()

	out := NewHTML().Render(pattern.FromSample())

	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "echarts")
	assert.Contains(t, out, "#64b5f6")
	assert.Contains(t, out, "Jan")
	assert.Contains(t, out, "600px")
}

func TestHTML_Render_SampleStyling(t *testing.T) {
	t.Parallel()

	out := NewHTML().Render(pattern.FromSample())

	assert.Contains(t, out, "height:300px")
	assert.Contains(t, out, `"color":"#fff"`, "axis and legend text")
	assert.Contains(t, out, `"backgroundColor":"#333"`, "tooltip background")
	assert.Contains(t, out, `"textStyle":{"color":"#fff"}`, "tooltip text")
	assert.Contains(t, out, `"xAxis":{"axisLine":{"lineStyle":{"color":"#fff"}}}`)
	assert.Contains(t, out, `"animationDuration":1500`)
	assert.Contains(t, out, `"animationEasing":"cubicInOut"`)
	assert.NotContains(t, out, "%MY_ECHARTS%")
	assert.NotContains(t, out, "dataZoom", "the sample chart does not zoom")
}

func TestHTML_Render_ZoomableChart(t *testing.T) {
	t.Parallel()

	spec := chart.SampleSpec()
	spec.Zoom = true
	out := NewHTML().Render([]pattern.Pattern{&pattern.LineChart{Chart: spec}})

	assert.Contains(t, out, `"dataZoom":[{"type":"slider"`)
	assert.Contains(t, out, `{"type":"inside"`)
}

func TestEchartsEasing(t *testing.T) {
	t.Parallel()

	tests := map[chart.Easing]string{
		chart.Linear:    "linear",
		chart.Ease:      "cubicOut",
		chart.EaseIn:    "cubicIn",
		chart.EaseOut:   "cubicOut",
		chart.EaseInOut: "cubicInOut",
		"":              "linear",
	}
	for in, want := range tests {
		assert.Equal(t, want, echartsEasing(in), string(in))
	}
}

func TestHTML_Write_NeedsChart(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := NewHTML().Write(&buf, []pattern.Pattern{&pattern.Error{Message: "x"}})
	require.ErrorIs(t, err, ErrNoChart)

	out := NewHTML().Render(nil)
	assert.Contains(t, out, ErrNoChart.Error())
}

func TestChartOf(t *testing.T) {
	t.Parallel()

	spec := chart.SampleSpec()
	got, err := ChartOf([]pattern.Pattern{&pattern.Error{Message: "x"}, &pattern.LineChart{Chart: spec}})
	require.NoError(t, err)
	assert.Same(t, spec, got)

	_, err = ChartOf([]pattern.Pattern{&pattern.Error{Source: "index", Message: "no observations"}})
	require.ErrorIs(t, err, ErrNoChart)
	assert.Contains(t, err.Error(), "index: no observations")

	_, err = ChartOf(nil)
	assert.Equal(t, ErrNoChart, err)
}

func TestLineData_MapsGapsToDash(t *testing.T) {
	t.Parallel()

	data := lineData(chart.Values{1, chart.Gap()})
	require.Len(t, data, 2)
	assert.Equal(t, 1.0, data[0].Value)
	assert.Equal(t, "-", data[1].Value)
	assert.Equal(t, "dashed", dashType("3 3"))
	assert.Equal(t, "solid", dashType(""))
}
