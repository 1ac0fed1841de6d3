package series

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPeriod is returned by ParsePeriod for unrecognised names.
var ErrUnknownPeriod = errors.New("unknown period")

// Period selects how much history a view shows.
type Period string

const (
	Period6M  Period = "6m"
	Period1Y  Period = "1y"
	Period3Y  Period = "3y"
	Period10Y Period = "10y"
	PeriodMax Period = "max"
)

// DefaultPeriod is the window shown when none is chosen.
const DefaultPeriod = Period6M

// Periods lists every period in display order.
func Periods() []Period {
	return []Period{Period6M, Period1Y, Period3Y, Period10Y, PeriodMax}
}

// Months returns the number of trailing months the period covers.
// PeriodMax reports -1, meaning "everything".
func (p Period) Months() int {
	switch p {
	case Period6M:
		return 6
	case Period1Y:
		return 12
	case Period3Y:
		return 36
	case Period10Y:
		return 120
	default:
		return -1
	}
}

// Display returns the human label used in menus and headers.
func (p Period) Display() string {
	switch p {
	case Period6M:
		return "6 Months"
	case Period1Y:
		return "1 Year"
	case Period3Y:
		return "3 Years"
	case Period10Y:
		return "10 Years"
	default:
		return "Max"
	}
}

// Next cycles to the following period, wrapping after Max.
func (p Period) Next() Period {
	all := Periods()
	for i, q := range all {
		if q == p {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// Apply trims ts to the period.
func (p Period) Apply(ts TimeSeries) TimeSeries {
	n := p.Months()
	if n < 0 {
		return ts.Tail(ts.Len())
	}
	return ts.Tail(n)
}

// ParsePeriod accepts short names ("6m", "1y") and display names ("6 Months").
func ParsePeriod(s string) (Period, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, p := range Periods() {
		if norm == string(p) || norm == strings.ToLower(p.Display()) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected 6m, 1y, 3y, 10y, max)", ErrUnknownPeriod, s)
}
