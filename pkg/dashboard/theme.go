package dashboard

import (
	"github.com/charmbracelet/lipgloss"
)

// DashboardTheme holds all visual styling for the dashboard TUI.
type DashboardTheme struct {
	// Colors
	Colors DashboardColors `yaml:"colors"`

	// Icons for trend indicators
	Icons DashboardIcons `yaml:"icons"`

	// Title bar
	Title DashboardTitleStyle `yaml:"title"`

	// Frames per second for the reveal animation
	FPS int `yaml:"fps"`
}

// DashboardColors defines the color palette for the dashboard.
type DashboardColors struct {
	Primary string `yaml:"primary"` // Main accent (title, borders)
	Up      string `yaml:"up"`      // Rising metric
	Down    string `yaml:"down"`    // Falling metric
	Muted   string `yaml:"muted"`   // Labels, help text
	Text    string `yaml:"text"`    // Normal text
	Border  string `yaml:"border"`  // Panel borders
	Error   string `yaml:"error"`   // Error line
}

// DashboardIcons defines the icons used in the dashboard.
type DashboardIcons struct {
	Up     string `yaml:"up"`
	Down   string `yaml:"down"`
	Flat   string `yaml:"flat"`
	Toggle string `yaml:"toggle"` // Enabled overlay marker
}

// DashboardTitleStyle defines the title bar appearance.
type DashboardTitleStyle struct {
	Text       string `yaml:"text"`       // Title text
	Icon       string `yaml:"icon"`       // Title icon/emoji
	Background string `yaml:"background"` // Title background color (uses Primary if empty)
}

// CompiledTheme holds pre-built lipgloss styles from a DashboardTheme.
type CompiledTheme struct {
	colorPrimary lipgloss.Color
	colorMuted   lipgloss.Color

	TitleStyle       lipgloss.Style
	ChartBoxStyle    lipgloss.Style
	CardStyle        lipgloss.Style
	CardLabelStyle   lipgloss.Style
	CardValueStyle   lipgloss.Style
	UpStyle          lipgloss.Style
	DownStyle        lipgloss.Style
	FlatStyle        lipgloss.Style
	StatusBarStyle   lipgloss.Style
	ErrorStyle       lipgloss.Style
	SelectorStyle    lipgloss.Style
	SelectorOffStyle lipgloss.Style

	Icons DashboardIcons

	TitleText string
	TitleIcon string
	FPS       int
}

// DefaultFPS is the reveal animation frame rate.
const DefaultFPS = 60

// DefaultDashboardTheme returns the default dashboard theme configuration.
func DefaultDashboardTheme() *DashboardTheme {
	return &DashboardTheme{
		Colors: DashboardColors{
			Primary: "#6366F1", // Indigo, the index color
			Up:      "#22C55E", // Green
			Down:    "#F43F5E", // Rose
			Muted:   "#94A3B8", // Slate
			Text:    "#F8FAFC", // Near white
			Border:  "#334155", // Dark slate
			Error:   "#FF5F56", // Red
		},
		Icons: DashboardIcons{
			Up:     "\u25b2", // ▲
			Down:   "\u25bc", // ▼
			Flat:   "\u25a0", // ■
			Toggle: "\u25cf", // ●
		},
		Title: DashboardTitleStyle{
			Text: "Trendline",
			Icon: "\u25c6", // ◆
		},
		FPS: DefaultFPS,
	}
}

// Compile builds lipgloss styles from the theme configuration.
func (t *DashboardTheme) Compile() *CompiledTheme {
	ct := &CompiledTheme{}

	ct.colorPrimary = lipgloss.Color(t.Colors.Primary)
	ct.colorMuted = lipgloss.Color(t.Colors.Muted)
	text := lipgloss.Color(t.Colors.Text)
	border := lipgloss.Color(t.Colors.Border)

	titleBG := ct.colorPrimary
	if t.Title.Background != "" {
		titleBG = lipgloss.Color(t.Title.Background)
	}
	ct.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(titleBG).
		Padding(0, 1)

	ct.ChartBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	ct.CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		MarginRight(1)
	ct.CardLabelStyle = lipgloss.NewStyle().Foreground(ct.colorMuted)
	ct.CardValueStyle = lipgloss.NewStyle().Foreground(text).Bold(true)

	ct.UpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Colors.Up))
	ct.DownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Colors.Down))
	ct.FlatStyle = lipgloss.NewStyle().Foreground(ct.colorMuted)

	ct.StatusBarStyle = lipgloss.NewStyle().
		Foreground(ct.colorMuted).
		MarginTop(1)
	ct.ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Colors.Error)).Bold(true)

	ct.SelectorStyle = lipgloss.NewStyle().Foreground(ct.colorPrimary).Bold(true)
	ct.SelectorOffStyle = lipgloss.NewStyle().Foreground(ct.colorMuted)

	ct.Icons = t.Icons
	ct.TitleText = t.Title.Text
	ct.TitleIcon = t.Title.Icon
	ct.FPS = t.FPS
	if ct.FPS <= 0 {
		ct.FPS = DefaultFPS
	}
	return ct
}

// MutedColor returns the muted color for external use.
func (ct *CompiledTheme) MutedColor() lipgloss.Color {
	return ct.colorMuted
}
