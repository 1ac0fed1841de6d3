package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/dkoosis/trendline/pkg/chart"
	"github.com/dkoosis/trendline/pkg/pattern"
)

// ErrNoChart is returned when there is no line chart to draw.
var ErrNoChart = errors.New("no line chart in patterns")

// HTML renders the first line chart as a self-contained ECharts page.
// Summary metrics become the chart subtitle.
type HTML struct{}

// NewHTML creates an HTML renderer.
func NewHTML() *HTML {
	return &HTML{}
}

// Render formats patterns as an HTML page. Failures are reported inside
// the page body.
func (h *HTML) Render(patterns []pattern.Pattern) string {
	var buf bytes.Buffer
	if err := h.Write(&buf, patterns); err != nil {
		return "<!DOCTYPE html><html><body><pre>" + html.EscapeString(err.Error()) + "</pre></body></html>\n"
	}
	return buf.String()
}

// ChartOf returns the first line chart in patterns. Without one the error
// wraps ErrNoChart and carries the first Error pattern's message.
func ChartOf(patterns []pattern.Pattern) (*chart.Spec, error) {
	var failure *pattern.Error
	for _, p := range patterns {
		switch v := p.(type) {
		case *pattern.LineChart:
			if v.Chart != nil {
				return v.Chart, nil
			}
		case *pattern.Error:
			if failure == nil {
				failure = v
			}
		}
	}
	if failure == nil {
		return nil, ErrNoChart
	}
	if failure.Source != "" {
		return nil, fmt.Errorf("%w: %s: %s", ErrNoChart, failure.Source, failure.Message)
	}
	return nil, fmt.Errorf("%w: %s", ErrNoChart, failure.Message)
}

// Write streams the page to w.
func (h *HTML) Write(w io.Writer, patterns []pattern.Pattern) error {
	spec, err := ChartOf(patterns)
	if err != nil {
		return err
	}
	var subtitle []string
	for _, p := range patterns {
		if v, ok := p.(*pattern.Summary); ok {
			for _, m := range v.Metrics {
				subtitle = append(subtitle, m.Label+": "+m.Value)
			}
		}
	}
	line, err := echartsLine(spec, strings.Join(subtitle, "  ·  "))
	if err != nil {
		return err
	}
	if err := line.Render(w); err != nil {
		return fmt.Errorf("render echarts page: %w", err)
	}
	return nil
}

func echartsLine(spec *chart.Spec, subtitle string) (*charts.Line, error) {
	axisLine := &opts.AxisLine{LineStyle: &opts.LineStyle{Color: spec.Axis.Stroke}}
	axisLabel := &opts.AxisLabel{Color: spec.Axis.Text}
	split := &opts.SplitLine{
		Show:      opts.Bool(spec.Grid.Show),
		LineStyle: &opts.LineStyle{Color: spec.Grid.Stroke, Type: dashType(spec.Grid.Dash)},
	}

	legend := opts.Legend{
		Show:      opts.Bool(true),
		TextStyle: &opts.TextStyle{Color: spec.Legend.Text},
	}
	if spec.Legend.Position == chart.LegendTop {
		legend.Top = "30"
	} else {
		legend.Bottom = "0"
	}

	yAxis := opts.YAxis{
		Name:      spec.YLabel,
		AxisLabel: axisLabel,
		AxisLine:  axisLine,
		SplitLine: split,
	}
	if spec.YDomain != nil {
		yAxis.Min = spec.YDomain.Min
		yAxis.Max = spec.YDomain.Max
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       pageTitle(spec),
			Width:           strconv.Itoa(spec.Width) + "px",
			Height:          strconv.Itoa(spec.Height) + "px",
			BackgroundColor: spec.Background,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:         spec.Title,
			Subtitle:      subtitle,
			TitleStyle:    &opts.TextStyle{Color: spec.Axis.Text},
			SubtitleStyle: &opts.TextStyle{Color: spec.Axis.Text},
		}),
		charts.WithLegendOpts(legend),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: axisLabel,
			SplitLine: split,
		}),
		charts.WithYAxisOpts(yAxis),
	)
	if spec.Zoom {
		line.SetGlobalOptions(charts.WithDataZoomOpts(
			opts.DataZoom{Type: "slider"},
			opts.DataZoom{Type: "inside"},
		))
	}
	overrides, err := styleOverrides(spec)
	if err != nil {
		return nil, err
	}
	line.AddJSFuncs(overrides)

	anim := charts.WithAnimationOpts(opts.Animation{
		Animation:         opts.Bool(spec.Animation.Duration > 0),
		AnimationDuration: int(spec.Animation.Duration.Milliseconds()),
		AnimationEasing:   echartsEasing(spec.Animation.Easing),
	})

	line.SetXAxis(spec.Categories)
	for _, l := range spec.Lines {
		series := []charts.SeriesOpts{
			charts.WithLineStyleOpts(opts.LineStyle{Color: l.Stroke, Width: float32(l.StrokeWidth)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: l.Stroke}),
			charts.WithLineChartOpts(opts.LineChart{
				Smooth:     opts.Bool(l.Smooth),
				ShowSymbol: opts.Bool(l.Dots),
			}),
			anim,
		}
		if l.Fill != "" {
			series = append(series, charts.WithAreaStyleOpts(opts.AreaStyle{Color: l.Fill}))
		}
		line.AddSeries(l.Name, lineData(l.Values), series...)
	}
	for _, b := range spec.Bands {
		style := charts.WithLineStyleOpts(opts.LineStyle{Color: opaque(b.Fill), Type: "dashed", Width: 1})
		item := charts.WithItemStyleOpts(opts.ItemStyle{Color: opaque(b.Fill)})
		noDots := charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)})
		line.AddSeries(b.Name+" (upper)", lineData(b.Upper), style, item, noDots, anim)
		line.AddSeries(b.Name+" (lower)", lineData(b.Lower), style, item, noDots, anim)
	}
	return line, nil
}

// The go-echarts option structs have no tooltip colors and no x axis line,
// so those are merged into the option after the chart is created.
type echartsStyle struct {
	Tooltip struct {
		BackgroundColor string `json:"backgroundColor"`
		BorderColor     string `json:"borderColor,omitempty"`
		TextStyle       struct {
			Color string `json:"color"`
		} `json:"textStyle"`
	} `json:"tooltip"`
	XAxis struct {
		AxisLine struct {
			LineStyle struct {
				Color string `json:"color"`
			} `json:"lineStyle"`
		} `json:"axisLine"`
	} `json:"xAxis"`
}

// styleOverrides returns a script that applies the tooltip and x axis
// colors to the rendered chart.
func styleOverrides(spec *chart.Spec) (string, error) {
	var st echartsStyle
	st.Tooltip.BackgroundColor = spec.Tooltip.Background
	st.Tooltip.BorderColor = spec.Tooltip.Border
	st.Tooltip.TextStyle.Color = spec.Tooltip.Text
	st.XAxis.AxisLine.LineStyle.Color = spec.Axis.Stroke
	b, err := json.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("encode chart style: %w", err)
	}
	return "%MY_ECHARTS%.setOption(" + string(b) + ");", nil
}

// echartsEasing maps a CSS timing function onto the nearest ECharts easing.
func echartsEasing(e chart.Easing) string {
	switch e {
	case chart.EaseIn:
		return "cubicIn"
	case chart.EaseOut, chart.Ease:
		return "cubicOut"
	case chart.EaseInOut:
		return "cubicInOut"
	default:
		return "linear"
	}
}

// lineData maps gaps to "-", which ECharts draws as a break in the line.
func lineData(vs chart.Values) []opts.LineData {
	out := make([]opts.LineData, len(vs))
	for i, v := range vs {
		if chart.IsGap(v) {
			out[i] = opts.LineData{Value: "-"}
			continue
		}
		out[i] = opts.LineData{Value: v}
	}
	return out
}

func dashType(dash string) string {
	if dash == "" {
		return "solid"
	}
	return "dashed"
}

func pageTitle(spec *chart.Spec) string {
	if spec.Title != "" {
		return spec.Title
	}
	return "trendline"
}
