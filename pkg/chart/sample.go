package chart

import (
	"time"

	"github.com/dkoosis/trendline/pkg/series"
)

// Demo chart styling.
const (
	SampleWidth      = 600
	SampleHeight     = 300
	SampleLineColor  = "#64b5f6"
	SampleLineWidth  = 2
	SampleTextColor  = "#fff"
	SampleGridDash   = "3 3"
	SampleGridStroke = "#555"
	SampleTooltipBG  = "#333"
	SampleBackground = "#1e1e1e"
	SampleDuration   = 1500 * time.Millisecond
	SampleEasing     = EaseInOut
)

// SampleSpec returns the demo chart: the five-month sample as a single
// smooth line on a dark 600x300 container.
func SampleSpec() *Spec {
	return FromSeries(series.Sample())
}

// FromSeries wraps one categorical series in the demo styling.
func FromSeries(s series.Series) *Spec {
	return &Spec{
		Width:      SampleWidth,
		Height:     SampleHeight,
		Background: SampleBackground,
		Categories: s.Labels(),
		Grid:       Grid{Show: true, Stroke: SampleGridStroke, Dash: SampleGridDash},
		Axis:       Axis{Stroke: SampleTextColor, Text: SampleTextColor},
		Tooltip:    Tooltip{Background: SampleTooltipBG, Text: SampleTextColor},
		Legend:     Legend{Text: SampleTextColor, Position: LegendBottom},
		Lines: []Line{{
			Name:        s.Name(),
			Values:      s.Values(),
			Stroke:      SampleLineColor,
			StrokeWidth: SampleLineWidth,
			Smooth:      true,
			Dots:        true,
		}},
		Animation: Animation{Duration: SampleDuration, Easing: SampleEasing},
	}
}

// Style is the cosmetic subset of a Spec that configuration may override.
// Zero fields leave the spec untouched.
type Style struct {
	Width             int           `yaml:"width"`
	Height            int           `yaml:"height"`
	Background        string        `yaml:"background"`
	GridStroke        string        `yaml:"grid_stroke"`
	GridDash          string        `yaml:"grid_dash"`
	HideGrid          bool          `yaml:"hide_grid"`
	AxisColor         string        `yaml:"axis_color"`
	TooltipBackground string        `yaml:"tooltip_background"`
	LegendColor       string        `yaml:"legend_color"`
	LineColor         string        `yaml:"line_color"`
	LineWidth         float64       `yaml:"line_width"`
	AnimationDuration time.Duration `yaml:"animation_duration"`
	Easing            Easing        `yaml:"easing"`
}

// Apply copies the set fields of st onto s. LineColor and LineWidth target
// the first series only.
func (st Style) Apply(s *Spec) {
	if st.Width > 0 {
		s.Width = st.Width
	}
	if st.Height > 0 {
		s.Height = st.Height
	}
	if st.Background != "" {
		s.Background = st.Background
	}
	if st.GridStroke != "" {
		s.Grid.Stroke = st.GridStroke
	}
	if st.GridDash != "" {
		s.Grid.Dash = st.GridDash
	}
	if st.HideGrid {
		s.Grid.Show = false
	}
	if st.AxisColor != "" {
		s.Axis.Stroke = st.AxisColor
		s.Axis.Text = st.AxisColor
	}
	if st.TooltipBackground != "" {
		s.Tooltip.Background = st.TooltipBackground
	}
	if st.LegendColor != "" {
		s.Legend.Text = st.LegendColor
	}
	if len(s.Lines) > 0 {
		if st.LineColor != "" {
			s.Lines[0].Stroke = st.LineColor
		}
		if st.LineWidth > 0 {
			s.Lines[0].StrokeWidth = st.LineWidth
		}
	}
	if st.AnimationDuration > 0 {
		s.Animation.Duration = st.AnimationDuration
	}
	if st.Easing != "" {
		s.Animation.Easing = st.Easing
	}
}

// IsZero reports whether st overrides nothing.
func (st Style) IsZero() bool { return st == Style{} }
