// Package pattern holds what trendline shows: the line chart itself and the
// smaller readouts that sit beside it. A pattern carries values only; each
// renderer owns how it looks.
package pattern

// PatternType names a pattern in JSON output and renderer dispatch.
type PatternType string

const (
	PatternTypeLineChart   PatternType = "line-chart"
	PatternTypeSummary     PatternType = "summary"
	PatternTypeLeaderboard PatternType = "leaderboard"
	PatternTypeSparkline   PatternType = "sparkline"
	PatternTypeComparison  PatternType = "comparison"
	PatternTypeError       PatternType = "error"
)

// Pattern is implemented by everything FromSample, FromDashboard and
// FromIndex return.
type Pattern interface {
	Type() PatternType
}
