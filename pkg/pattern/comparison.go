package pattern

// Comparison sets current readings against where they are headed.
type Comparison struct {
	Label  string
	Shifts []Shift
}

// Shift is one series moving from a current reading to a later one.
type Shift struct {
	Series string
	From   float64
	To     float64
	Unit   string
}

// Delta returns To minus From.
func (s Shift) Delta() float64 { return s.To - s.From }

func (c *Comparison) Type() PatternType { return PatternTypeComparison }
