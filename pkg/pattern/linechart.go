package pattern

import "github.com/dkoosis/trendline/pkg/chart"

// LineChart carries a full chart description for renderers that can draw it.
type LineChart struct {
	Label string
	Chart *chart.Spec
}

func (l *LineChart) Type() PatternType { return PatternTypeLineChart }
