package analysis

import (
	"fmt"

	"github.com/dkoosis/trendline/pkg/series"
)

// Metrics are the headline numbers shown beside the chart.
type Metrics struct {
	Current       float64 `json:"current"`
	Delta         float64 `json:"delta"`
	DeltaPct      float64 `json:"delta_pct"`
	Volatility    float64 `json:"volatility"`
	HasVolatility bool    `json:"has_volatility"`
	Projected     float64 `json:"projected"`
	ProjectedDiff float64 `json:"projected_diff"`
	HasProjection bool    `json:"has_projection"`
}

// Summarize computes metrics for the visible window and its projection.
// At least two observations are required for the month-over-month change.
func Summarize(ts series.TimeSeries, proj Projection) (Metrics, error) {
	n := ts.Len()
	if n < 2 {
		return Metrics{}, fmt.Errorf("summarize: %w: need 2 observations, have %d", ErrInsufficientData, n)
	}

	cur := ts.At(n - 1).Value
	prev := ts.At(n - 2).Value
	m := Metrics{
		Current: cur,
		Delta:   cur - prev,
	}
	if prev != 0 {
		m.DeltaPct = (cur - prev) / prev * 100
	}

	if vol, err := RollingStdDev(ts, WindowFourMonth); err == nil {
		if last, ok := vol.Last(); ok {
			m.Volatility = last.Value
			m.HasVolatility = true
		}
	}

	if last, ok := proj.Projected.Last(); ok {
		m.Projected = last.Value
		m.ProjectedDiff = last.Value - cur
		m.HasProjection = true
	}
	return m, nil
}
