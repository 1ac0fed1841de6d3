package pattern

// Error reports a failure to produce a pattern, so renderers can surface it
// inline instead of aborting the whole output.
type Error struct {
	Source  string
	Message string
}

func (e *Error) Type() PatternType { return PatternTypeError }
