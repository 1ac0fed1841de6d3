package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/dkoosis/trendline/pkg/chart"
)

// ErrUnsupportedFormat is returned for image formats WriteImage cannot encode.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// maxXLabels bounds how many category labels the x axis prints.
const maxXLabels = 12

// ImageFormats lists the formats WriteImage accepts.
func ImageFormats() []string { return []string{"svg", "png", "pdf"} }

// WriteImage draws spec as a static image. One chart pixel maps to one
// point, so a 600x300 spec becomes a 600x300pt canvas.
func WriteImage(w io.Writer, spec *chart.Spec, format string) error {
	if !slices.Contains(ImageFormats(), format) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	p, err := buildPlot(spec)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(vg.Points(float64(spec.Width)), vg.Points(float64(spec.Height)), format)
	if err != nil {
		return fmt.Errorf("create %s writer: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}

func buildPlot(spec *chart.Spec) (*plot.Plot, error) {
	text := colorOr(spec.Axis.Text, color.Black)
	stroke := colorOr(spec.Axis.Stroke, color.Black)

	p := plot.New()
	p.BackgroundColor = colorOr(spec.Background, color.White)
	p.Title.Text = spec.Title
	p.Title.TextStyle.Color = text
	p.Y.Label.Text = spec.YLabel

	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Color = text
		ax.LineStyle.Color = stroke
		ax.Tick.Label.Color = text
		ax.Tick.LineStyle.Color = stroke
	}

	l := chart.NewLayout(spec, 100, 100, chart.Margins{}, 0)
	p.Y.Min, p.Y.Max = l.YMin, l.YMax
	p.X.Min, p.X.Max = 0, math.Max(1, float64(len(spec.Categories)-1))
	p.X.Tick.Marker = categoryTicks(spec.Categories)

	if spec.Grid.Show {
		g := plotter.NewGrid()
		gc := colorOr(spec.Grid.Stroke, color.Gray{Y: 0x80})
		dashes := parseDash(spec.Grid.Dash)
		g.Vertical.Color, g.Horizontal.Color = gc, gc
		g.Vertical.Dashes, g.Horizontal.Dashes = dashes, dashes
		p.Add(g)
	}

	for _, b := range spec.Bands {
		poly, err := bandPolygon(b)
		if err != nil {
			return nil, err
		}
		if poly != nil {
			p.Add(poly)
		}
	}

	for _, ln := range spec.Lines {
		c := colorOr(ln.Stroke, color.Black)
		var first *plotter.Line
		for _, xys := range runs(ln.Values) {
			if ln.Fill != "" {
				area, err := plotter.NewPolygon(underArea(xys, l.YMin))
				if err != nil {
					return nil, fmt.Errorf("area for %q: %w", ln.Name, err)
				}
				area.Color = colorOr(ln.Fill, color.Transparent)
				area.LineStyle.Width = 0
				p.Add(area)
			}
			line, err := plotter.NewLine(xys)
			if err != nil {
				return nil, fmt.Errorf("line %q: %w", ln.Name, err)
			}
			line.LineStyle.Color = c
			line.LineStyle.Width = vg.Points(math.Max(ln.StrokeWidth, 0.5))
			p.Add(line)
			if first == nil {
				first = line
			}
			if ln.Dots {
				dots, err := plotter.NewScatter(xys)
				if err != nil {
					return nil, fmt.Errorf("dots for %q: %w", ln.Name, err)
				}
				dots.GlyphStyle.Color = c
				dots.GlyphStyle.Radius = vg.Points(3)
				dots.GlyphStyle.Shape = draw.CircleGlyph{}
				p.Add(dots)
			}
		}
		if first != nil {
			p.Legend.Add(ln.Name, first)
		}
	}

	p.Legend.TextStyle.Color = colorOr(spec.Legend.Text, color.Black)
	p.Legend.Top = spec.Legend.Position == chart.LegendTop
	return p, nil
}

// categoryTicks labels category indices, thinning labels on long runs.
func categoryTicks(cats []string) plot.ConstantTicks {
	stride := max(1, int(math.Ceil(float64(len(cats))/maxXLabels)))
	ticks := make(plot.ConstantTicks, 0, len(cats))
	for i, c := range cats {
		label := ""
		if i%stride == 0 {
			label = c
		}
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: label})
	}
	return ticks
}

// runs splits values into contiguous point runs at gaps.
func runs(vs chart.Values) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for i, v := range vs {
		if chart.IsGap(v) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: float64(i), Y: v})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func underArea(xys plotter.XYs, floor float64) plotter.XYs {
	out := make(plotter.XYs, 0, len(xys)+2)
	out = append(out, plotter.XY{X: xys[0].X, Y: floor})
	out = append(out, xys...)
	return append(out, plotter.XY{X: xys[len(xys)-1].X, Y: floor})
}

// bandPolygon outlines the indices where both bounds are present. It
// returns nil when the band has fewer than two such indices.
func bandPolygon(b chart.Band) (*plotter.Polygon, error) {
	var upper, lower plotter.XYs
	for i := range min(len(b.Upper), len(b.Lower)) {
		if chart.IsGap(b.Upper[i]) || chart.IsGap(b.Lower[i]) {
			continue
		}
		upper = append(upper, plotter.XY{X: float64(i), Y: b.Upper[i]})
		lower = append(lower, plotter.XY{X: float64(i), Y: b.Lower[i]})
	}
	if len(upper) < 2 {
		return nil, nil
	}
	slices.Reverse(lower)
	poly, err := plotter.NewPolygon(append(upper, lower...))
	if err != nil {
		return nil, fmt.Errorf("band %q: %w", b.Name, err)
	}
	poly.Color = colorOr(b.Fill, color.Transparent)
	poly.LineStyle.Width = 0
	return poly, nil
}

// parseDash reads an SVG dash array such as "3 3" into point lengths.
func parseDash(dash string) []vg.Length {
	var out []vg.Length
	for _, f := range strings.Fields(strings.ReplaceAll(dash, ",", " ")) {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || v < 0 {
			return nil
		}
		out = append(out, vg.Points(v))
	}
	return out
}

func colorOr(s string, fallback color.Color) color.Color {
	c, err := chart.ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
