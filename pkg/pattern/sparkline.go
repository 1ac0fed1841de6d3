package pattern

import "github.com/dkoosis/trendline/pkg/chart"

// Sparkline is a one-line trend of a derived series, such as rolling
// volatility.
type Sparkline struct {
	Label  string
	Values []float64
	Unit   string
	// Scale pins the glyph range. Nil scales to the data.
	Scale *chart.Domain
}

func (s *Sparkline) Type() PatternType { return PatternTypeSparkline }
