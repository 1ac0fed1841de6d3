package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dkoosis/trendline/pkg/chart"
	"github.com/dkoosis/trendline/pkg/pattern"
)

var (
	printer = message.NewPrinter(language.English)
	title   = cases.Title(language.English)
)

// Terminal renders patterns as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Theme returns the renderer's theme.
func (t *Terminal) Theme() Theme { return t.theme }

// Render formats all patterns for terminal display.
func (t *Terminal) Render(patterns []pattern.Pattern) string {
	var sections []string
	for _, p := range patterns {
		s := t.renderOne(p)
		if s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n")
}

func (t *Terminal) renderOne(p pattern.Pattern) string {
	switch v := p.(type) {
	case *pattern.LineChart:
		return t.RenderChart(v.Chart, FrameOptions{Progress: 1})
	case *pattern.Summary:
		return t.renderSummary(v)
	case *pattern.Leaderboard:
		return t.renderLeaderboard(v)
	case *pattern.Sparkline:
		return t.renderSparkline(v)
	case *pattern.Comparison:
		return t.renderComparison(v)
	case *pattern.Error:
		return t.renderError(v)
	default:
		return ""
	}
}

func (t *Terminal) renderSummary(s *pattern.Summary) string {
	var sb strings.Builder
	if s.Label != "" {
		sb.WriteString(t.theme.Bold.Render(title.String(s.Label)))
		sb.WriteString("\n")
	}
	maxLabel := 0
	for _, m := range s.Metrics {
		maxLabel = max(maxLabel, runewidth.StringWidth(m.Label))
	}
	for _, m := range s.Metrics {
		sb.WriteString("  ")
		icon, style := t.iconStyle(m.Tone)
		sb.WriteString(style.Render(icon + " " + padRight(m.Label+":", maxLabel+1) + " " + m.Value))
		if m.Delta != "" {
			sb.WriteString(t.theme.Muted.Render(" (" + m.Delta + ")"))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderLeaderboard(l *pattern.Leaderboard) string {
	if len(l.Entries) == 0 {
		return ""
	}
	var sb strings.Builder
	if l.Label != "" {
		header := title.String(l.Label)
		if l.Of > len(l.Entries) {
			header += fmt.Sprintf(" (top %d of %d)", len(l.Entries), l.Of)
		}
		sb.WriteString(t.theme.Bold.Render(header))
		sb.WriteString("\n")
	}

	values := make([]string, len(l.Entries))
	width := 0
	for i, e := range l.Entries {
		values[i] = printer.Sprintf("%.2f", e.Value)
		width = max(width, runewidth.StringWidth(values[i]))
	}
	for i, e := range l.Entries {
		sb.WriteString("  ")
		sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("%2d. ", i+1)))
		sb.WriteString(t.theme.Primary.Render(e.Month.Format("Jan 2006")))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Warning.Render(padLeft(values[i], width)))
		sb.WriteString("\n")
	}
	return sb.String()
}

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// sparkline maps values onto block glyphs. A nil scale spans the data.
func sparkline(values []float64, scale *chart.Domain) string {
	var lo, hi float64
	if scale != nil {
		lo, hi = scale.Min, scale.Max
	} else {
		lo, hi = values[0], values[0]
		for _, v := range values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	var sb strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * 7)
		sb.WriteRune(sparkBlocks[max(0, min(7, idx))])
	}
	return sb.String()
}

func (t *Terminal) renderSparkline(s *pattern.Sparkline) string {
	if len(s.Values) == 0 {
		return ""
	}
	var sb strings.Builder
	if s.Label != "" {
		sb.WriteString(t.theme.Primary.Render(s.Label + ": "))
	}
	sb.WriteString(t.theme.Success.Render(sparkline(s.Values, s.Scale)))
	latest := s.Values[len(s.Values)-1]
	sb.WriteString(t.theme.Muted.Render(printer.Sprintf(" %.2f%s", latest, s.Unit)))
	sb.WriteString("\n")
	return sb.String()
}

func (t *Terminal) renderComparison(c *pattern.Comparison) string {
	if len(c.Shifts) == 0 {
		return ""
	}
	var sb strings.Builder
	if c.Label != "" {
		sb.WriteString(t.theme.Bold.Render(c.Label))
		sb.WriteString("\n")
	}
	for _, shift := range c.Shifts {
		sb.WriteString("  ")
		sb.WriteString(shift.Series + ": ")
		sb.WriteString(t.theme.Muted.Render(printer.Sprintf("%.2f → %.2f", shift.From, shift.To)))
		sb.WriteString(" ")

		arrow, style := t.theme.Icons.Flat, t.theme.Muted
		switch pattern.ToneOf(shift.Delta()) {
		case pattern.ToneUp:
			arrow, style = t.theme.Icons.Up, t.theme.Success
		case pattern.ToneDown:
			arrow, style = t.theme.Icons.Down, t.theme.Error
		}
		sb.WriteString(style.Render(printer.Sprintf("%s %.2f%s", arrow, math.Abs(shift.Delta()), shift.Unit)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderError(e *pattern.Error) string {
	msg := t.theme.Icons.Fail + " " + e.Message
	if e.Source != "" {
		msg = t.theme.Icons.Fail + " " + e.Source + ": " + e.Message
	}
	return t.theme.Error.Render(msg) + "\n"
}

func (t *Terminal) iconStyle(tone pattern.Tone) (string, lipgloss.Style) {
	switch tone {
	case pattern.ToneUp:
		return t.theme.Icons.Up, t.theme.Success
	case pattern.ToneDown:
		return t.theme.Icons.Down, t.theme.Error
	default:
		return t.theme.Icons.Info, t.theme.Primary
	}
}

// formatValue prints whole numbers without decimals and everything else
// to two places, grouping thousands.
func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return printer.Sprintf("%.0f", v)
	}
	return printer.Sprintf("%.2f", v)
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}
