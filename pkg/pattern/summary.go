package pattern

// SummaryKind tells renderers whether a summary describes a dataset or the
// headline metrics of a view.
type SummaryKind string

const (
	SummaryKindMetrics SummaryKind = "metrics"
	SummaryKindDataset SummaryKind = "dataset"
)

// Tone is the direction a reading moved. Renderers pick arrows and colors
// from it.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneUp      Tone = "up"
	ToneDown    Tone = "down"
)

// ToneOf maps a signed change to its Tone.
func ToneOf(delta float64) Tone {
	switch {
	case delta > 0:
		return ToneUp
	case delta < 0:
		return ToneDown
	default:
		return ToneNeutral
	}
}

// Summary is a labelled group of headline readings. The dashboard shows it as
// cards; the other renderers as aligned rows.
type Summary struct {
	Label   string
	Kind    SummaryKind
	Metrics []SummaryItem
}

// SummaryItem is one reading. Value and Delta are preformatted.
type SummaryItem struct {
	Label string
	Value string
	Delta string
	Tone  Tone
}

func (s *Summary) Type() PatternType { return PatternTypeSummary }
