package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dkoosis/trendline/pkg/series"
)

// ErrUnknownMovingAverage is returned by ParseMovingAverage for unrecognised names.
var ErrUnknownMovingAverage = errors.New("unknown moving average")

// MovingAverage names an overlay the dashboard can toggle.
type MovingAverage string

const (
	MA4Month MovingAverage = "4m"
	MA1Year  MovingAverage = "1y"
)

// DefaultMovingAverages is the overlay set shown when none is chosen.
func DefaultMovingAverages() []MovingAverage { return []MovingAverage{MA4Month} }

// MovingAverages lists the supported overlays in legend order.
func MovingAverages() []MovingAverage { return []MovingAverage{MA4Month, MA1Year} }

// Window is the number of months averaged.
func (m MovingAverage) Window() int {
	if m == MA1Year {
		return WindowOneYear
	}
	return WindowFourMonth
}

// Display is the legend label.
func (m MovingAverage) Display() string {
	if m == MA1Year {
		return "1-Year MA"
	}
	return "4-Month MA"
}

// ParseMovingAverage accepts "4m", "1y" or the legend labels.
func ParseMovingAverage(s string) (MovingAverage, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, m := range MovingAverages() {
		if norm == string(m) || norm == strings.ToLower(m.Display()) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected 4m or 1y)", ErrUnknownMovingAverage, s)
}

// ParseMovingAverages parses a comma separated list, ignoring blanks and duplicates.
func ParseMovingAverages(s string) ([]MovingAverage, error) {
	var out []MovingAverage
	seen := make(map[MovingAverage]bool)
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		m, err := ParseMovingAverage(part)
		if err != nil {
			return nil, err
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}

// Overlay is a computed moving average aligned to the visible window.
type Overlay struct {
	Kind   MovingAverage
	Series series.TimeSeries
}

// View is everything the dashboard draws for one period selection.
type View struct {
	Period     series.Period
	Visible    series.TimeSeries
	Overlays   []Overlay
	Projection Projection
}

// BuildView slices full to the period and derives overlays and a projection.
// Moving averages are computed over the full history before trimming, so the
// first visible months still carry a value.
func BuildView(full series.TimeSeries, period series.Period, mas []MovingAverage) (View, error) {
	visible := period.Apply(full)
	if visible.Len() == 0 {
		return View{}, fmt.Errorf("build view: %w: no observations", ErrInsufficientData)
	}

	v := View{Period: period, Visible: visible}
	for _, m := range mas {
		ma, err := RollingMean(full, m.Window())
		if err != nil {
			return View{}, fmt.Errorf("build view: %s: %w", m.Display(), err)
		}
		v.Overlays = append(v.Overlays, Overlay{
			Kind:   m,
			Series: alignTo(ma, visible).Rename(m.Display()),
		})
	}

	proj, err := Project(visible, DefaultProjectionMonths)
	if err != nil {
		return View{}, fmt.Errorf("build view: %w", err)
	}
	v.Projection = proj
	return v, nil
}

// alignTo keeps the observations of ts whose dates fall inside window.
func alignTo(ts, window series.TimeSeries) series.TimeSeries {
	if window.Len() == 0 {
		return series.NewTimeSeries(ts.Name())
	}
	start := window.At(0).Date
	var kept []series.Observation
	for _, o := range ts.Observations() {
		if !o.Date.Before(start) {
			kept = append(kept, o)
		}
	}
	return series.NewTimeSeries(ts.Name(), kept...)
}
