package series

import (
	"math"
	"math/rand/v2"
	"time"
)

// Observation is one dated reading.
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// TimeSeries is an ordered, immutable run of dated observations.
type TimeSeries struct {
	name string
	obs  []Observation
}

// NewTimeSeries builds a time series. The slice is copied.
func NewTimeSeries(name string, obs ...Observation) TimeSeries {
	cp := make([]Observation, len(obs))
	copy(cp, obs)
	return TimeSeries{name: name, obs: cp}
}

func (ts TimeSeries) Name() string { return ts.name }
func (ts TimeSeries) Len() int     { return len(ts.obs) }

// At returns the i-th observation.
func (ts TimeSeries) At(i int) Observation { return ts.obs[i] }

// Last returns the final observation and false when the series is empty.
func (ts TimeSeries) Last() (Observation, bool) {
	if len(ts.obs) == 0 {
		return Observation{}, false
	}
	return ts.obs[len(ts.obs)-1], true
}

// Observations returns a copy of the observations.
func (ts TimeSeries) Observations() []Observation {
	cp := make([]Observation, len(ts.obs))
	copy(cp, ts.obs)
	return cp
}

// Values returns the readings in order.
func (ts TimeSeries) Values() []float64 {
	out := make([]float64, len(ts.obs))
	for i, o := range ts.obs {
		out[i] = o.Value
	}
	return out
}

// Dates returns the observation dates in order.
func (ts TimeSeries) Dates() []time.Time {
	out := make([]time.Time, len(ts.obs))
	for i, o := range ts.obs {
		out[i] = o.Date
	}
	return out
}

// Tail keeps the last n observations. n >= Len keeps everything; n <= 0 keeps nothing.
func (ts TimeSeries) Tail(n int) TimeSeries {
	if n >= len(ts.obs) {
		return NewTimeSeries(ts.name, ts.obs...)
	}
	if n <= 0 {
		return TimeSeries{name: ts.name}
	}
	return NewTimeSeries(ts.name, ts.obs[len(ts.obs)-n:]...)
}

// Rename returns a copy carrying a different name.
func (ts TimeSeries) Rename(name string) TimeSeries {
	return NewTimeSeries(name, ts.obs...)
}

// Labels formats each date as a category label ("Jan 2024").
func (ts TimeSeries) Labels() []string {
	out := make([]string, len(ts.obs))
	for i, o := range ts.obs {
		out[i] = o.Date.Format("Jan 2006")
	}
	return out
}

// GenOptions controls the synthetic index generator.
type GenOptions struct {
	Name   string
	Months int
	End    time.Time
	// Seed zero selects DefaultSeed, so seeds 0 and 42 give the same index.
	Seed uint64
}

// Defaults for GenerateIndex.
const (
	DefaultIndexName   = "CCI Index"
	DefaultIndexMonths = 120
	DefaultSeed        = 42
)

// DefaultEnd is the reference date the index is generated up to.
var DefaultEnd = time.Date(2025, time.January, 14, 0, 0, 0, 0, time.UTC)

// GenerateIndex produces a monthly index with a yearly seasonal swing plus
// Gaussian noise (sigma 5) around a base of 50. Output is deterministic per seed.
func GenerateIndex(opts GenOptions) TimeSeries {
	if opts.Name == "" {
		opts.Name = DefaultIndexName
	}
	if opts.Months <= 0 {
		opts.Months = DefaultIndexMonths
	}
	if opts.End.IsZero() {
		opts.End = DefaultEnd
	}
	if opts.Seed == 0 {
		opts.Seed = DefaultSeed
	}

	dates := monthEndsUpTo(opts.End, opts.Months)
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	n := len(dates)
	obs := make([]Observation, n)
	for i, d := range dates {
		t := 0.0
		if n > 1 {
			t = 10 * float64(i) / float64(n-1)
		}
		base := 50 + 25*math.Sin(t*2*math.Pi/12)
		obs[i] = Observation{Date: d, Value: base + rng.NormFloat64()*5}
	}
	return TimeSeries{name: opts.Name, obs: obs}
}

// MonthEnds returns the n month-end dates strictly after the given date.
func MonthEnds(after time.Time, n int) []time.Time {
	out := make([]time.Time, 0, max(n, 0))
	cur := monthEnd(after)
	if !cur.After(after) {
		cur = monthEnd(firstOfNextMonth(cur))
	}
	for len(out) < n {
		out = append(out, cur)
		cur = monthEnd(firstOfNextMonth(cur))
	}
	return out
}

// monthEndsUpTo returns n consecutive month ends, the last on or before end.
func monthEndsUpTo(end time.Time, n int) []time.Time {
	last := monthEnd(end)
	if last.After(end) {
		last = monthEnd(time.Date(end.Year(), end.Month(), 0, 0, 0, 0, 0, end.Location()))
	}
	out := make([]time.Time, n)
	y, m := last.Year(), last.Month()
	for i := n - 1; i >= 0; i-- {
		out[i] = monthEnd(time.Date(y, m, 1, 0, 0, 0, 0, end.Location()))
		m--
		if m < time.January {
			m = time.December
			y--
		}
	}
	return out
}

func monthEnd(t time.Time) time.Time {
	// Day 0 of the next month normalises to the last day of this one.
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}

func firstOfNextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
}
