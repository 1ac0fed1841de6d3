package analysis

import (
	"fmt"
	"math"

	"github.com/dkoosis/trendline/pkg/series"
)

// DefaultProjectionMonths is the forecast horizon used by the dashboard.
const DefaultProjectionMonths = 12

// Projection is a forecast line with an uncertainty cone around it.
type Projection struct {
	Projected series.TimeSeries
	Upper     series.TimeSeries
	Lower     series.TimeSeries
}

// Len is the number of forecast months.
func (p Projection) Len() int { return p.Projected.Len() }

// Project extends ts by months month-ends. The curve is one sine period of
// amplitude 10 plus a +5 drift, anchored at the last reading; the cone widens
// linearly to +/-10 at the horizon.
func Project(ts series.TimeSeries, months int) (Projection, error) {
	last, ok := ts.Last()
	if !ok {
		return Projection{}, fmt.Errorf("project: %w: empty series", ErrInsufficientData)
	}
	if months <= 0 {
		months = DefaultProjectionMonths
	}

	dates := series.MonthEnds(last.Date, months)
	proj := make([]series.Observation, months)
	upper := make([]series.Observation, months)
	lower := make([]series.Observation, months)
	for j, d := range dates {
		t := 0.0
		if months > 1 {
			t = float64(j) / float64(months-1)
		}
		v := last.Value + 10*math.Sin(2*math.Pi*t) + 5*t
		u := 10 * t
		proj[j] = series.Observation{Date: d, Value: v}
		upper[j] = series.Observation{Date: d, Value: v + u}
		lower[j] = series.Observation{Date: d, Value: v - u}
	}

	return Projection{
		Projected: series.NewTimeSeries("Projection", proj...),
		Upper:     series.NewTimeSeries("Upper", upper...),
		Lower:     series.NewTimeSeries("Lower", lower...),
	}, nil
}
