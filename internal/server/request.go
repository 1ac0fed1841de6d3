package server

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/dkoosis/trendline/pkg/analysis"
	"github.com/dkoosis/trendline/pkg/pattern"
	"github.com/dkoosis/trendline/pkg/series"
)

// Dataset names the data a request charts.
type Dataset string

const (
	DatasetSample Dataset = "sample"
	DatasetIndex  Dataset = "index"
)

// Request is a parsed chart query.
type Request struct {
	Dataset        Dataset
	Period         series.Period
	MovingAverages []analysis.MovingAverage
	// Seed feeds the index generator; zero (or seed=0 in the query)
	// selects series.DefaultSeed.
	Seed uint64
}

// paramError reports a query parameter that could not be parsed.
type paramError struct {
	param string
	err   error
}

func (e *paramError) Error() string { return fmt.Sprintf("parameter %q: %v", e.param, e.err) }
func (e *paramError) Unwrap() error { return e.err }

// parseRequest reads the chart query over the defaults.
func parseRequest(q url.Values, defaults Request) (Request, error) {
	req := defaults
	if req.Period == "" {
		req.Period = series.DefaultPeriod
	}

	if v, ok := lookup(q, "dataset"); ok {
		switch Dataset(v) {
		case DatasetSample, DatasetIndex:
			req.Dataset = Dataset(v)
		default:
			return Request{}, &paramError{"dataset", fmt.Errorf("unknown dataset %q (expected sample or index)", v)}
		}
	}
	if v, ok := lookup(q, "period"); ok {
		p, err := series.ParsePeriod(v)
		if err != nil {
			return Request{}, &paramError{"period", err}
		}
		req.Period = p
	}
	if v, ok := q["ma"]; ok {
		var all []analysis.MovingAverage
		for _, item := range v {
			mas, err := analysis.ParseMovingAverages(item)
			if err != nil {
				return Request{}, &paramError{"ma", err}
			}
			all = append(all, mas...)
		}
		req.MovingAverages = dedupe(all)
	}
	if v, ok := lookup(q, "seed"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Request{}, &paramError{"seed", fmt.Errorf("not a non-negative integer: %q", v)}
		}
		req.Seed = seed
	}
	return req, nil
}

// lookup returns the first non-empty value of key.
func lookup(q url.Values, key string) (string, bool) {
	v := q.Get(key)
	return v, v != ""
}

func dedupe(mas []analysis.MovingAverage) []analysis.MovingAverage {
	seen := make(map[analysis.MovingAverage]bool, len(mas))
	out := mas[:0]
	for _, m := range mas {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// patterns builds the output for req. Failures come back as Error
// patterns for the renderers to report.
func (s *Server) patterns(req Request) []pattern.Pattern {
	if req.Dataset == DatasetIndex {
		ts := series.GenerateIndex(series.GenOptions{Seed: req.Seed})
		return pattern.Index(ts, req.Period, req.MovingAverages)
	}
	out := pattern.FromSample()
	for _, p := range out {
		if lc, ok := p.(*pattern.LineChart); ok {
			s.style.Apply(lc.Chart)
		}
	}
	return out
}
