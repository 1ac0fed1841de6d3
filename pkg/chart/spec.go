// Package chart holds the declarative description of a line chart: data,
// geometry and cosmetic styling. Renderers in pkg/render turn a Spec into
// terminal text, HTML, images or JSON; nothing here draws.
package chart

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// Spec is a complete chart widget: container, grid, axes, tooltip, legend,
// line series and animation.
type Spec struct {
	Title      string    `json:"title,omitempty"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Background string    `json:"background,omitempty"`
	Categories []string  `json:"categories"`
	Grid       Grid      `json:"grid"`
	Axis       Axis      `json:"axis"`
	YDomain    *Domain   `json:"y_domain,omitempty"`
	YLabel     string    `json:"y_label,omitempty"`
	Tooltip    Tooltip   `json:"tooltip"`
	Legend     Legend    `json:"legend"`
	Lines      []Line    `json:"lines"`
	Bands      []Band    `json:"bands,omitempty"`
	Animation  Animation `json:"animation"`
	// Zoom lets interactive surfaces pan and zoom along the category axis.
	Zoom bool `json:"zoom,omitempty"`
}

// Grid is the cartesian grid drawn behind the series.
type Grid struct {
	Show   bool   `json:"show"`
	Stroke string `json:"stroke"`
	// Dash is an SVG-style dash array, e.g. "3 3". Empty means solid.
	Dash string `json:"dash,omitempty"`
}

// Axis styles both axes.
type Axis struct {
	Stroke string `json:"stroke"`
	Text   string `json:"text"`
}

// Domain fixes the value axis range.
type Domain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Tooltip styles the hover/cursor readout.
type Tooltip struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Border     string `json:"border,omitempty"`
}

// LegendPosition places the legend relative to the plot.
type LegendPosition string

const (
	LegendTop    LegendPosition = "top"
	LegendBottom LegendPosition = "bottom"
)

// Legend styles the series key.
type Legend struct {
	Text     string         `json:"text"`
	Position LegendPosition `json:"position"`
}

// Line is one series. Values align with Spec.Categories; NaN marks a gap.
type Line struct {
	Name        string  `json:"name"`
	Values      Values  `json:"values"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"stroke_width"`
	Smooth      bool    `json:"smooth,omitempty"`
	Dots        bool    `json:"dots,omitempty"`
	// Fill shades the area under the line when set.
	Fill string `json:"fill,omitempty"`
}

// Band is a shaded range between two value runs, such as a forecast cone.
type Band struct {
	Name  string `json:"name"`
	Upper Values `json:"upper"`
	Lower Values `json:"lower"`
	Fill  string `json:"fill"`
}

// Animation controls how series are revealed.
type Animation struct {
	Duration time.Duration `json:"duration_ms"`
	Easing   Easing        `json:"easing"`
}

// MarshalJSON writes the duration in milliseconds.
func (a Animation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DurationMS int64  `json:"duration_ms"`
		Easing     Easing `json:"easing"`
	}{a.Duration.Milliseconds(), a.Easing})
}

// Values is a numeric run where NaN marks a missing reading.
type Values []float64

// MarshalJSON encodes NaN as null; encoding/json rejects NaN outright.
func (v Values) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, len(v)*8+2)
	buf = append(buf, '[')
	for i, f := range v {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			buf = append(buf, "null"...)
			continue
		}
		buf = strconv.AppendFloat(buf, f, 'f', -1, 64)
	}
	buf = append(buf, ']')
	return buf, nil
}

// Gap is the placeholder for a missing value.
func Gap() float64 { return math.NaN() }

// IsGap reports whether v marks a missing value.
func IsGap(v float64) bool { return math.IsNaN(v) }

// Extent returns the smallest and largest non-gap values across lines and
// bands. ok is false when there are none.
func (s *Spec) Extent() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	visit := func(vs Values) {
		for _, v := range vs {
			if IsGap(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	for _, l := range s.Lines {
		visit(l.Values)
	}
	for _, b := range s.Bands {
		visit(b.Upper)
		visit(b.Lower)
	}
	return lo, hi, ok
}

// TooltipItem is one series reading at a category.
type TooltipItem struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// TooltipContent is what the tooltip shows for a category.
type TooltipContent struct {
	Label string        `json:"label"`
	Items []TooltipItem `json:"items"`
}

// TooltipAt collects the non-gap series values at category i.
func (s *Spec) TooltipAt(i int) (TooltipContent, bool) {
	if i < 0 || i >= len(s.Categories) {
		return TooltipContent{}, false
	}
	tc := TooltipContent{Label: s.Categories[i]}
	for _, l := range s.Lines {
		if i < len(l.Values) && !IsGap(l.Values[i]) {
			tc.Items = append(tc.Items, TooltipItem{Name: l.Name, Value: l.Values[i], Color: l.Stroke})
		}
	}
	return tc, true
}
