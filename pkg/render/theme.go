package render

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles and glyphs the terminal renderer draws with.
type Theme struct {
	Name    string
	Primary lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	// Color reports whether chart strokes keep their own colors.
	Color bool
	Icons ThemeIcons
}

// ThemeIcons are the glyphs for trend arrows, errors and legend swatches.
type ThemeIcons struct {
	Up     string
	Down   string
	Flat   string
	Info   string
	Fail   string
	Bullet string
	Line   string // legend swatch for a series
	Band   string // legend swatch for a projection band
}

// palette is the ANSI 256 colors of one theme. Empty entries leave text
// unstyled.
type palette struct {
	primary, up, warn, down, muted string
}

func (p palette) style(c string) lipgloss.Style {
	if c == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

func newTheme(name string, p palette, icons ThemeIcons) Theme {
	return Theme{
		Name:    name,
		Primary: p.style(p.primary),
		Success: p.style(p.up),
		Warning: p.style(p.warn),
		Error:   p.style(p.down),
		Muted:   p.style(p.muted),
		Bold:    lipgloss.NewStyle().Bold(true),
		Color:   p != palette{},
		Icons:   icons,
	}
}

var unicodeSwatches = ThemeIcons{Fail: "✗", Bullet: "·", Line: "──", Band: "░░"}

func withArrows(base ThemeIcons, up, down, flat, info string) ThemeIcons {
	base.Up, base.Down, base.Flat, base.Info = up, down, flat, info
	return base
}

// DefaultTheme is the bright theme: blue text, green gains, red losses.
func DefaultTheme() Theme {
	return newTheme("default",
		palette{primary: "39", up: "34", warn: "214", down: "196", muted: "242"},
		withArrows(unicodeSwatches, "▲", "▼", "■", "●"))
}

// OrcaTheme is a softer palette for dark terminals.
func OrcaTheme() Theme {
	return newTheme("orca",
		palette{primary: "75", up: "108", warn: "179", down: "167", muted: "245"},
		withArrows(unicodeSwatches, "↑", "↓", "=", "·"))
}

// MonoTheme draws without color and with ASCII glyphs, for NO_COLOR and
// dumb terminals.
func MonoTheme() Theme {
	return newTheme("mono", palette{}, ThemeIcons{
		Up: "+", Down: "-", Flat: "=", Info: "*",
		Fail: "x", Bullet: "-", Line: "--", Band: "::",
	})
}

var themes = map[string]func() Theme{
	"default": DefaultTheme,
	"orca":    OrcaTheme,
	"mono":    MonoTheme,
}

// ThemeNames lists the names ThemeByName recognizes.
func ThemeNames() []string {
	return []string{"default", "orca", "mono"}
}

// ThemeByName returns the named theme, or DefaultTheme for an unknown name.
func ThemeByName(name string) Theme {
	if fn, ok := themes[name]; ok {
		return fn()
	}
	return DefaultTheme()
}
