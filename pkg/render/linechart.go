package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/trendline/pkg/chart"
)

// FrameOptions controls one terminal frame of a chart.
type FrameOptions struct {
	// Width is the total frame width in cells; zero uses the renderer width.
	Width int
	// Height is the plot height in rows; zero derives it from the spec's
	// aspect ratio.
	Height int
	// Progress is the eased reveal fraction in [0, 1].
	Progress float64
	// Cursor selects the category the tooltip describes when ShowCursor is set.
	Cursor     int
	ShowCursor bool
}

const (
	minPlotRows = 6
	maxPlotRows = 24
	minPlotCols = 10
)

// RenderChart draws spec as a braille line chart with axes, grid, legend
// and an optional tooltip for the cursor column.
func (t *Terminal) RenderChart(spec *chart.Spec, opt FrameOptions) string {
	if spec == nil || len(spec.Categories) == 0 {
		return ""
	}
	width := opt.Width
	if width <= 0 {
		width = t.width
	}

	// Tick labels depend only on the value domain, so a provisional
	// layout is enough to size the gutter.
	sizing := chart.NewLayout(spec, 100, 100, chart.Margins{}, 0)
	gutter := 0
	for _, tk := range sizing.YTicks {
		gutter = max(gutter, runewidth.StringWidth(tk.Label))
	}
	cols := max(minPlotCols, width-gutter-2)
	rows := opt.Height
	if rows <= 0 {
		rows = plotRows(spec, cols)
	}

	cv := newCanvas(cols, rows)
	l := chart.NewLayout(spec, float64(cv.dotWidth()), float64(cv.dotHeight()),
		chart.Margins{Left: 1, Right: 2, Top: 1, Bottom: 2}, rows/2+1)

	for _, b := range spec.Bands {
		c := opaque(b.Fill)
		for _, seg := range l.Segments(b.Upper) {
			cv.polyline(chart.Reveal(seg, opt.Progress), c, true)
		}
		for _, seg := range l.Segments(b.Lower) {
			cv.polyline(chart.Reveal(seg, opt.Progress), c, true)
		}
	}
	for _, line := range spec.Lines {
		for _, seg := range l.Segments(line.Values) {
			cv.polyline(chart.Reveal(seg, opt.Progress), line.Stroke, false)
			if line.Dots && opt.Progress >= 1 {
				for _, p := range seg {
					cv.marker(p, line.Stroke)
				}
			}
		}
	}

	tickRows := make(map[int]string, len(l.YTicks))
	for _, tk := range l.YTicks {
		tickRows[min(rows-1, int(tk.Y)/4)] = tk.Label
	}
	catCols := make(map[int]bool, len(spec.Categories))
	for i := range spec.Categories {
		catCols[min(cols-1, int(l.X(i))/2)] = true
	}
	cursorCol := -1
	if opt.ShowCursor && opt.Cursor >= 0 && opt.Cursor < len(spec.Categories) {
		cursorCol = min(cols-1, int(l.X(opt.Cursor))/2)
	}

	p := newPainter(t.theme)
	axis := p.style(spec.Axis.Stroke)
	text := p.style(spec.Axis.Text)
	grid := p.style(flatten(spec.Grid.Stroke, spec.Background))
	hGrid, vGrid := "─", "│"
	if spec.Grid.Dash != "" {
		hGrid, vGrid = "┄", "┆"
	}

	var body []string
	if spec.YLabel != "" {
		body = append(body, text.Render(spec.YLabel))
	}
	for r := 0; r < rows; r++ {
		var sb strings.Builder
		label, isTick := tickRows[r]
		sb.WriteString(text.Render(padLeft(label, gutter)))
		sb.WriteString(" ")
		if isTick {
			sb.WriteString(axis.Render("┤"))
		} else {
			sb.WriteString(axis.Render("│"))
		}
		for c := 0; c < cols; c++ {
			if g, color, lit := cv.cell(c, r); lit {
				sb.WriteString(p.style(color).Render(string(g)))
				continue
			}
			switch {
			case c == cursorCol:
				sb.WriteString(p.style(spec.Tooltip.Border).Render("│"))
			case spec.Grid.Show && isTick:
				sb.WriteString(grid.Render(hGrid))
			case spec.Grid.Show && catCols[c]:
				sb.WriteString(grid.Render(vGrid))
			default:
				sb.WriteString(" ")
			}
		}
		body = append(body, sb.String())
	}
	body = append(body,
		strings.Repeat(" ", gutter+1)+axis.Render("└"+strings.Repeat("─", cols)),
		strings.Repeat(" ", gutter+2)+text.Render(xLabels(spec.Categories, l, cols)),
	)

	var out []string
	if spec.Title != "" {
		out = append(out, t.theme.Bold.Render(spec.Title))
	}
	legend := t.legend(spec, p)
	if spec.Legend.Position == chart.LegendTop {
		out = append(out, legend)
	}
	out = append(out, body...)
	if spec.Legend.Position != chart.LegendTop {
		out = append(out, strings.Repeat(" ", gutter+2)+legend)
	}
	if cursorCol >= 0 {
		if tc, ok := spec.TooltipAt(opt.Cursor); ok {
			out = append(out, t.tooltip(spec.Tooltip, spec.Background, tc, p))
		}
	}
	return strings.Join(out, "\n") + "\n"
}

// plotRows derives a row count from the spec's aspect ratio. Terminal cells
// are roughly twice as tall as they are wide.
func plotRows(spec *chart.Spec, cols int) int {
	if spec.Width <= 0 || spec.Height <= 0 {
		return minPlotRows
	}
	r := int(math.Round(float64(cols) * float64(spec.Height) / float64(spec.Width) / 2))
	return max(minPlotRows, min(maxPlotRows, r))
}

// xLabels places category labels under their columns, dropping any that
// would collide with the previous one.
func xLabels(cats []string, l chart.Layout, cols int) string {
	var sb strings.Builder
	pos := 0
	for i, c := range cats {
		w := runewidth.StringWidth(c)
		start := int(l.X(i))/2 - w/2
		start = max(0, min(cols-w, start))
		if start < pos || (pos > 0 && start == pos) {
			continue
		}
		sb.WriteString(strings.Repeat(" ", start-pos))
		sb.WriteString(c)
		pos = start + w
	}
	return sb.String()
}

func (t *Terminal) legend(spec *chart.Spec, p *painter) string {
	text := p.style(spec.Legend.Text)
	var items []string
	for _, l := range spec.Lines {
		items = append(items, p.style(l.Stroke).Render(t.theme.Icons.Line)+" "+text.Render(l.Name))
	}
	for _, b := range spec.Bands {
		items = append(items, p.style(opaque(b.Fill)).Render(t.theme.Icons.Band)+" "+text.Render(b.Name))
	}
	return strings.Join(items, "  ")
}

func (t *Terminal) tooltip(style chart.Tooltip, background string, tc chart.TooltipContent, p *painter) string {
	lines := []string{t.theme.Bold.Render(tc.Label)}
	for _, it := range tc.Items {
		lines = append(lines, p.style(it.Color).Render(t.theme.Icons.Info)+" "+it.Name+": "+formatValue(it.Value))
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if t.theme.Color {
		box = box.
			BorderForeground(lipgloss.Color(hexOf(style.Border))).
			Foreground(lipgloss.Color(hexOf(style.Text))).
			Background(lipgloss.Color(flatten(style.Background, background)))
	}
	return box.Render(strings.Join(lines, "\n"))
}

// painter caches one lipgloss style per chart color.
type painter struct {
	color  bool
	styles map[string]lipgloss.Style
}

func newPainter(th Theme) *painter {
	return &painter{color: th.Color, styles: map[string]lipgloss.Style{}}
}

func (p *painter) style(c string) lipgloss.Style {
	if !p.color || c == "" {
		return lipgloss.NewStyle()
	}
	if s, ok := p.styles[c]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(hexOf(c)))
	p.styles[c] = s
	return s
}

// hexOf normalizes a chart color to #rrggbb for the terminal. Unparseable
// colors pass through for lipgloss to interpret.
func hexOf(c string) string {
	nc, err := chart.ParseColor(c)
	if err != nil {
		return c
	}
	return chart.Hex(nc)
}

// opaque drops the alpha channel so translucent fills stay visible as
// strokes.
func opaque(c string) string {
	nc, err := chart.ParseColor(c)
	if err != nil {
		return c
	}
	nc.A = 0xff
	return chart.Hex(nc)
}

// flatten composites a translucent surface color over the chart background,
// since terminal cells have no alpha. Without a usable background it falls
// back to opaque.
func flatten(c, background string) string {
	nc, err := chart.ParseColor(c)
	if err != nil {
		return c
	}
	bg, err := chart.ParseColor(background)
	if err != nil {
		return opaque(c)
	}
	bg.A = 0xff
	return chart.Hex(chart.Blend(nc, bg))
}
