package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/dkoosis/trendline/pkg/chart"
	"github.com/dkoosis/trendline/pkg/pattern"
)

// LLM renders patterns as terse plain text optimized for AI consumption.
// Zero ANSI codes, a SCOPE line first, then one block per pattern in input order.
type LLM struct {
	// PlotHeight is the asciigraph height in rows.
	PlotHeight int
}

// NewLLM creates an LLM renderer.
func NewLLM() *LLM {
	return &LLM{PlotHeight: 10}
}

// Render formats all patterns for LLM consumption.
func (l *LLM) Render(patterns []pattern.Pattern) string {
	var sb strings.Builder
	sb.WriteString("SCOPE: " + llmScope(patterns) + "\n")

	for _, p := range patterns {
		switch v := p.(type) {
		case *pattern.LineChart:
			l.renderChart(&sb, v)
		case *pattern.Summary:
			sb.WriteString("\n" + strings.ToUpper(string(v.Kind)) + ": " + v.Label + "\n")
			for _, m := range v.Metrics {
				line := "  " + m.Label + ": " + m.Value
				if m.Delta != "" {
					line += " (" + m.Delta + ")"
				}
				sb.WriteString(line + "\n")
			}
		case *pattern.Sparkline:
			sb.WriteString("\nTREND: " + v.Label + "\n")
			sb.WriteString("  " + joinFloats(v.Values, 2) + "\n")
		case *pattern.Comparison:
			sb.WriteString("\nCOMPARE: " + v.Label + "\n")
			for _, c := range v.Shifts {
				sb.WriteString(fmt.Sprintf("  %s: %.2f -> %.2f (%+.2f%s)\n", c.Series, c.From, c.To, c.Delta(), c.Unit))
			}
		case *pattern.Leaderboard:
			sb.WriteString(fmt.Sprintf("\nRANK: %s (%d of %d)\n", v.Label, len(v.Entries), v.Of))
			for i, e := range v.Entries {
				sb.WriteString(fmt.Sprintf("  %d. %s %.2f\n", i+1, e.Month.Format("Jan 2006"), e.Value))
			}
		case *pattern.Error:
			sb.WriteString("\nERR " + v.Source + ": " + v.Message + "\n")
		}
	}
	return sb.String()
}

func (l *LLM) renderChart(sb *strings.Builder, lc *pattern.LineChart) {
	spec := lc.Chart
	if spec == nil {
		return
	}
	sb.WriteString(fmt.Sprintf("\nCHART: %s (%d points, %d series)\n", chartName(lc), len(spec.Categories), len(spec.Lines)))
	if len(spec.Categories) > 0 {
		sb.WriteString("  x: " + spec.Categories[0] + " .. " + spec.Categories[len(spec.Categories)-1] + "\n")
	}
	for _, line := range spec.Lines {
		sb.WriteString("  SERIES " + line.Name + ": " + joinValues(line.Values) + "\n")
	}
	for _, b := range spec.Bands {
		sb.WriteString("  BAND " + b.Name + " upper: " + joinValues(b.Upper) + "\n")
		sb.WriteString("  BAND " + b.Name + " lower: " + joinValues(b.Lower) + "\n")
	}
	if len(spec.Lines) == 0 {
		return
	}
	data := present(spec.Lines[0].Values)
	if len(data) < 2 {
		return
	}
	sb.WriteString(asciigraph.Plot(data,
		asciigraph.Height(l.PlotHeight),
		asciigraph.Caption(spec.Lines[0].Name),
		asciigraph.Precision(0),
	))
	sb.WriteString("\n")
}

func chartName(lc *pattern.LineChart) string {
	if lc.Chart.Title != "" {
		return lc.Chart.Title
	}
	return lc.Label
}

func llmScope(patterns []pattern.Pattern) string {
	charts, points := 0, 0
	for _, p := range patterns {
		if lc, ok := p.(*pattern.LineChart); ok && lc.Chart != nil {
			charts++
			points += len(lc.Chart.Categories)
		}
	}
	return fmt.Sprintf("%d patterns, %d charts, %d points", len(patterns), charts, points)
}

// present drops gaps so asciigraph sees a contiguous run.
func present(vs chart.Values) []float64 {
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		if !chart.IsGap(v) {
			out = append(out, v)
		}
	}
	return out
}

func joinValues(vs chart.Values) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		if chart.IsGap(v) {
			parts[i] = "-"
			continue
		}
		prec := -1
		if v != math.Trunc(v) {
			prec = 2
		}
		parts[i] = strconv.FormatFloat(v, 'f', prec, 64)
	}
	return strings.Join(parts, " ")
}

func joinFloats(vs []float64, prec int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'f', prec, 64)
	}
	return strings.Join(parts, " ")
}
