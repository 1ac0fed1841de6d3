// Package analysis derives secondary series and headline metrics from an index.
package analysis

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/dkoosis/trendline/pkg/series"
)

var (
	// ErrInvalidWindow is returned for rolling windows smaller than one.
	ErrInvalidWindow = errors.New("rolling window must be at least 1")
	// ErrInsufficientData is returned when a series is too short for the operation.
	ErrInsufficientData = errors.New("insufficient data")
)

// Common rolling windows, in months.
const (
	WindowFourMonth = 4
	WindowOneYear   = 12
)

// RollingMean returns the trailing mean over window observations. The result
// starts at the first index with a full window, so it is window-1 shorter than ts.
func RollingMean(ts series.TimeSeries, window int) (series.TimeSeries, error) {
	return rolling(ts, window, fmt.Sprintf("%d-Month MA", window), func(xs []float64) float64 {
		return stat.Mean(xs, nil)
	})
}

// RollingStdDev returns the trailing sample standard deviation (N-1).
func RollingStdDev(ts series.TimeSeries, window int) (series.TimeSeries, error) {
	return rolling(ts, window, fmt.Sprintf("%d-Month Volatility", window), func(xs []float64) float64 {
		if len(xs) < 2 {
			return 0
		}
		return stat.StdDev(xs, nil)
	})
}

func rolling(ts series.TimeSeries, window int, name string, fn func([]float64) float64) (series.TimeSeries, error) {
	if window < 1 {
		return series.TimeSeries{}, fmt.Errorf("%w: got %d", ErrInvalidWindow, window)
	}
	values := ts.Values()
	dates := ts.Dates()
	if len(values) < window {
		return series.NewTimeSeries(name), nil
	}

	out := make([]series.Observation, 0, len(values)-window+1)
	for i := window - 1; i < len(values); i++ {
		out = append(out, series.Observation{
			Date:  dates[i],
			Value: fn(values[i-window+1 : i+1]),
		})
	}
	return series.NewTimeSeries(name, out...), nil
}
