package chart

import (
	"math"

	"gonum.org/v1/plot"
)

// Pt is a position on the pixel grid, y growing downward.
type Pt struct {
	X, Y float64
}

// Margins reserve space around the plot area, in pixels.
type Margins struct {
	Left, Right, Top, Bottom float64
}

// Tick is a labelled value-axis position.
type Tick struct {
	Value float64
	Label string
	Y     float64
}

// Layout maps chart data onto a width x height pixel grid.
type Layout struct {
	Width, Height float64
	Plot          Margins // plot area edges, absolute pixels
	YMin, YMax    float64
	YTicks        []Tick
	n             int
}

// NewLayout computes scales for spec on a grid of the given size. maxTicks
// bounds how many value-axis labels are kept; zero keeps them all.
func NewLayout(spec *Spec, width, height float64, m Margins, maxTicks int) Layout {
	l := Layout{
		Width:  width,
		Height: height,
		Plot: Margins{
			Left:   m.Left,
			Right:  math.Max(m.Left+1, width-m.Right),
			Top:    m.Top,
			Bottom: math.Max(m.Top+1, height-m.Bottom),
		},
		n: len(spec.Categories),
	}
	l.YMin, l.YMax = valueDomain(spec)

	var ticks []Tick
	for _, t := range (plot.DefaultTicks{}).Ticks(l.YMin, l.YMax) {
		if t.Label == "" || t.Value < l.YMin || t.Value > l.YMax {
			continue
		}
		ticks = append(ticks, Tick{Value: t.Value, Label: t.Label, Y: l.Y(t.Value)})
	}
	if maxTicks > 0 && len(ticks) > maxTicks {
		stride := int(math.Ceil(float64(len(ticks)) / float64(maxTicks)))
		thinned := ticks[:0:0]
		for i := 0; i < len(ticks); i += stride {
			thinned = append(thinned, ticks[i])
		}
		ticks = thinned
	}
	l.YTicks = ticks
	return l
}

// valueDomain is the fixed domain when set, otherwise zero (or the data
// minimum when negative) up to the data maximum rounded to a nice step.
func valueDomain(spec *Spec) (float64, float64) {
	if spec.YDomain != nil {
		return spec.YDomain.Min, spec.YDomain.Max
	}
	lo, hi, ok := spec.Extent()
	if !ok {
		return 0, 1
	}
	lo = math.Min(0, lo)
	if hi <= lo {
		hi = lo + 1
	}
	step := niceStep((hi - lo) / 4)
	return math.Floor(lo/step) * step, math.Ceil(hi/step) * step
}

// niceStep rounds raw up to 1, 2, 2.5 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if m*mag >= raw {
			return m * mag
		}
	}
	return 10 * mag
}

// X returns the horizontal pixel of category i. Categories are evenly
// spaced edge to edge; a lone category sits in the middle.
func (l Layout) X(i int) float64 {
	if l.n <= 1 {
		return (l.Plot.Left + l.Plot.Right) / 2
	}
	return l.Plot.Left + float64(i)*(l.Plot.Right-l.Plot.Left)/float64(l.n-1)
}

// Y returns the vertical pixel of value v.
func (l Layout) Y(v float64) float64 {
	span := l.YMax - l.YMin
	if span == 0 {
		return l.Plot.Bottom
	}
	frac := (v - l.YMin) / span
	return l.Plot.Bottom - frac*(l.Plot.Bottom-l.Plot.Top)
}

// Nearest returns the category whose x is closest to px.
func (l Layout) Nearest(px float64) int {
	if l.n <= 1 {
		return 0
	}
	step := (l.Plot.Right - l.Plot.Left) / float64(l.n-1)
	i := int(math.Round((px - l.Plot.Left) / step))
	return max(0, min(l.n-1, i))
}

// Segments converts values to polylines, splitting at gaps.
func (l Layout) Segments(values Values) [][]Pt {
	var out [][]Pt
	var cur []Pt
	for i, v := range values {
		if IsGap(v) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, Pt{X: l.X(i), Y: l.Y(v)})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// Reveal truncates a polyline to the given fraction of its arc length,
// interpolating the final point.
func Reveal(path []Pt, progress float64) []Pt {
	if progress >= 1 || len(path) < 2 {
		return path
	}
	if progress <= 0 {
		return path[:1]
	}
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += dist(path[i-1], path[i])
	}
	want := total * progress
	out := []Pt{path[0]}
	for i := 1; i < len(path); i++ {
		d := dist(path[i-1], path[i])
		if d >= want {
			f := 0.0
			if d > 0 {
				f = want / d
			}
			out = append(out, Pt{
				X: path[i-1].X + f*(path[i].X-path[i-1].X),
				Y: path[i-1].Y + f*(path[i].Y-path[i-1].Y),
			})
			return out
		}
		want -= d
		out = append(out, path[i])
	}
	return out
}

func dist(a, b Pt) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }
