package pattern

import (
	"slices"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dkoosis/trendline/pkg/analysis"
	"github.com/dkoosis/trendline/pkg/chart"
	"github.com/dkoosis/trendline/pkg/series"
)

// printer formats numbers with English digit grouping.
var printer = message.NewPrinter(language.English)

// TopMonths is how many readings the leaderboard keeps.
const TopMonths = 5

// FromSample returns the demo chart and a one-line dataset summary.
func FromSample() []Pattern {
	s := series.Sample()
	return []Pattern{
		&LineChart{Label: "Sample", Chart: chart.FromSeries(s)},
		&Summary{
			Label: "Sample data",
			Kind:  SummaryKindDataset,
			Metrics: []SummaryItem{
				{Label: "Points", Value: printer.Sprintf("%d", s.Len()), Tone: ToneNeutral},
				{Label: "Peak", Value: printer.Sprintf("%.0f", s.Max()), Tone: ToneNeutral},
				{Label: "Low", Value: printer.Sprintf("%.0f", s.Min()), Tone: ToneNeutral},
			},
		},
	}
}

// FromIndex slices ts to the period, adds the chosen overlays and maps the
// result through FromDashboard. When the view can be drawn but not
// summarized, the chart is kept and the metrics become an Error pattern.
func FromIndex(ts series.TimeSeries, period series.Period, mas []analysis.MovingAverage) ([]Pattern, error) {
	v, err := analysis.BuildView(ts, period, mas)
	if err != nil {
		return nil, err
	}
	m, err := analysis.Summarize(v.Visible, v.Projection)
	if err != nil {
		spec := chart.DashboardSpec(v)
		return []Pattern{
			&LineChart{Label: spec.Title, Chart: spec},
			&Error{Source: "metrics", Message: err.Error()},
		}, nil
	}
	return FromDashboard(v, m), nil
}

// Index is FromIndex for callers that render failures inline: an error
// becomes a lone Error pattern.
func Index(ts series.TimeSeries, period series.Period, mas []analysis.MovingAverage) []Pattern {
	out, err := FromIndex(ts, period, mas)
	if err != nil {
		return []Pattern{&Error{Source: "index", Message: err.Error()}}
	}
	return out
}

// FromDashboard maps an analytics view and its metrics to patterns: the chart,
// headline metrics, a volatility sparkline, the projection comparison and
// the strongest months in view.
func FromDashboard(v analysis.View, m analysis.Metrics) []Pattern {
	spec := chart.DashboardSpec(v)
	out := []Pattern{
		&LineChart{Label: spec.Title, Chart: spec},
		metricsSummary(m),
	}

	if vol, err := analysis.RollingStdDev(v.Visible, analysis.WindowFourMonth); err == nil && vol.Len() > 0 {
		// Volatility is never negative, so the glyphs start from zero.
		out = append(out, &Sparkline{
			Label:  "4-Month Volatility",
			Values: vol.Values(),
			Unit:   " pts",
			Scale:  &chart.Domain{Min: 0, Max: slices.Max(vol.Values())},
		})
	}

	if m.HasProjection {
		out = append(out, &Comparison{
			Label: "12-Month Projection",
			Shifts: []Shift{{
				Series: v.Visible.Name(),
				From:   m.Current,
				To:     m.Projected,
				Unit:   " pts",
			}},
		})
	}

	out = append(out, topMonths(v.Visible))
	return out
}

func metricsSummary(m analysis.Metrics) *Summary {
	s := &Summary{
		Label: "Metrics",
		Kind:  SummaryKindMetrics,
		Metrics: []SummaryItem{
			{
				Label: "Current Value",
				Value: printer.Sprintf("%.2f", m.Current),
				Delta: printer.Sprintf("%+.2f", m.Delta),
				Tone:  ToneOf(m.Delta),
			},
			{
				Label: "Monthly Change",
				Value: printer.Sprintf("%.2f", m.Delta),
				Delta: printer.Sprintf("%+.1f%%", m.DeltaPct),
				Tone:  ToneOf(m.Delta),
			},
		},
	}
	if m.HasVolatility {
		s.Metrics = append(s.Metrics, SummaryItem{
			Label: "4-Month Volatility",
			Value: printer.Sprintf("%.2f", m.Volatility),
			Tone:  ToneNeutral,
		})
	}
	if m.HasProjection {
		s.Metrics = append(s.Metrics, SummaryItem{
			Label: "12-Month Projection",
			Value: printer.Sprintf("%.2f", m.Projected),
			Delta: printer.Sprintf("%+.2f", m.ProjectedDiff),
			Tone:  ToneOf(m.ProjectedDiff),
		})
	}
	return s
}

func topMonths(ts series.TimeSeries) *Leaderboard {
	obs := ts.Observations()
	sort.SliceStable(obs, func(i, j int) bool { return obs[i].Value > obs[j].Value })
	n := min(TopMonths, len(obs))

	lb := &Leaderboard{
		Label:  "Highest readings",
		Series: ts.Name(),
		Of:     len(obs),
	}
	for _, o := range obs[:n] {
		lb.Entries = append(lb.Entries, RankedMonth{Month: o.Date, Value: o.Value})
	}
	return lb
}
