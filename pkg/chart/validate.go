package chart

import (
	"errors"
	"fmt"
)

// ErrInvalidSpec wraps every validation failure.
var ErrInvalidSpec = errors.New("invalid chart spec")

// Validate checks that the spec is drawable. All problems are reported
// together, each wrapping ErrInvalidSpec.
func (s *Spec) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidSpec}, args...)...))
	}
	color := func(field, value string) {
		if value == "" {
			return
		}
		if _, err := ParseColor(value); err != nil {
			fail("%s: %v", field, err)
		}
	}

	if s.Width <= 0 || s.Height <= 0 {
		fail("size must be positive, got %dx%d", s.Width, s.Height)
	}
	n := len(s.Categories)
	if n == 0 {
		fail("no categories")
	}
	if s.YDomain != nil && s.YDomain.Max <= s.YDomain.Min {
		fail("y domain max %g must exceed min %g", s.YDomain.Max, s.YDomain.Min)
	}

	color("background", s.Background)
	color("grid.stroke", s.Grid.Stroke)
	color("axis.stroke", s.Axis.Stroke)
	color("axis.text", s.Axis.Text)
	color("tooltip.background", s.Tooltip.Background)
	color("tooltip.text", s.Tooltip.Text)
	color("tooltip.border", s.Tooltip.Border)
	color("legend.text", s.Legend.Text)

	for i, l := range s.Lines {
		if len(l.Values) != n {
			fail("line %d (%s): %d values for %d categories", i, l.Name, len(l.Values), n)
		}
		if l.StrokeWidth < 0 {
			fail("line %d (%s): negative stroke width", i, l.Name)
		}
		color(fmt.Sprintf("line %d stroke", i), l.Stroke)
		color(fmt.Sprintf("line %d fill", i), l.Fill)
	}
	for i, b := range s.Bands {
		if len(b.Upper) != n || len(b.Lower) != n {
			fail("band %d (%s): bounds must have %d values", i, b.Name, n)
		}
		color(fmt.Sprintf("band %d fill", i), b.Fill)
	}

	if s.Animation.Duration < 0 {
		fail("negative animation duration")
	}
	if !s.Animation.Easing.Valid() {
		fail("unknown easing %q", s.Animation.Easing)
	}
	return errors.Join(errs...)
}
