package chart

import (
	"time"

	"github.com/dkoosis/trendline/pkg/analysis"
	"github.com/dkoosis/trendline/pkg/series"
)

// Dashboard palette.
const (
	IndexColor      = "#6366F1"
	IndexFill       = "rgba(99, 102, 241, 0.1)"
	MA4Color        = "#22C55E"
	MA1YColor       = "#38BDF8"
	ProjectionColor = "#F43F5E"
	ProjectionFill  = "rgba(244, 63, 94, 0.1)"
	DashboardText   = "#F8FAFC"
	DashboardBG     = "#0F172A"
	DashboardGrid   = "rgba(255, 255, 255, 0.05)"
	DashboardHeight = 600
	DashboardWidth  = 1000
)

// DashboardSpec lays out an analytics view: the index with an area fill,
// selected moving averages, and a projection line joined to the last
// reading with its uncertainty cone.
func DashboardSpec(v analysis.View) *Spec {
	visible := v.Visible
	n := visible.Len()
	proj := v.Projection
	total := n + proj.Len()

	categories := append(visible.Labels(), proj.Projected.Labels()...)
	index := make(map[time.Time]int, total)
	for i, d := range visible.Dates() {
		index[d] = i
	}
	for j, d := range proj.Projected.Dates() {
		index[d] = n + j
	}

	place := func(ts series.TimeSeries) Values {
		vals := gaps(total)
		for _, o := range ts.Observations() {
			if i, ok := index[o.Date]; ok {
				vals[i] = o.Value
			}
		}
		return vals
	}

	spec := &Spec{
		Title:      visible.Name() + " (" + v.Period.Display() + ")",
		Width:      DashboardWidth,
		Height:     DashboardHeight,
		Background: DashboardBG,
		Categories: categories,
		Grid:       Grid{Show: true, Stroke: DashboardGrid},
		Axis:       Axis{Stroke: DashboardText, Text: DashboardText},
		YDomain:    &Domain{Min: 0, Max: 100},
		YLabel:     "CCI Value",
		Tooltip:    Tooltip{Background: "#1E293B", Text: DashboardText, Border: IndexColor},
		Legend:     Legend{Text: DashboardText, Position: LegendTop},
		Animation:  Animation{Duration: SampleDuration, Easing: EaseOut},
		Zoom:       true,
	}

	spec.Lines = append(spec.Lines, Line{
		Name:        visible.Name(),
		Values:      place(visible),
		Stroke:      IndexColor,
		StrokeWidth: 2,
		Fill:        IndexFill,
	})
	for _, o := range v.Overlays {
		c := MA4Color
		if o.Kind == analysis.MA1Year {
			c = MA1YColor
		}
		spec.Lines = append(spec.Lines, Line{
			Name:        o.Series.Name(),
			Values:      place(o.Series),
			Stroke:      c,
			StrokeWidth: 1.5,
		})
	}

	if proj.Len() > 0 {
		pv := place(proj.Projected)
		if last, ok := visible.Last(); ok {
			pv[n-1] = last.Value
		}
		spec.Lines = append(spec.Lines, Line{
			Name:        proj.Projected.Name(),
			Values:      pv,
			Stroke:      ProjectionColor,
			StrokeWidth: 2,
		})
		spec.Bands = append(spec.Bands, Band{
			Name:  "Projection Range",
			Upper: place(proj.Upper),
			Lower: place(proj.Lower),
			Fill:  ProjectionFill,
		})
	}
	return spec
}

func gaps(n int) Values {
	v := make(Values, n)
	for i := range v {
		v[i] = Gap()
	}
	return v
}
