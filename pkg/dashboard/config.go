package dashboard

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DashboardConfig is the top-level structure for dashboard configuration in .trendline.yaml
type DashboardConfig struct {
	Dashboard *DashboardTheme `yaml:"dashboard"`
}

// ParseTheme reads the dashboard section of a config document and fills
// unset fields from the default theme. A document without the section
// yields the default theme.
func ParseTheme(data []byte) (*DashboardTheme, error) {
	var cfg DashboardConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse dashboard theme: %w", err)
	}
	return MergeWithDefaults(cfg.Dashboard), nil
}

// MergeWithDefaults fills in missing values from the default theme. A nil
// theme yields the default.
func MergeWithDefaults(theme *DashboardTheme) *DashboardTheme {
	def := DefaultDashboardTheme()
	if theme == nil {
		return def
	}
	merged := *theme

	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}

	// Colors
	fill(&merged.Colors.Primary, def.Colors.Primary)
	fill(&merged.Colors.Up, def.Colors.Up)
	fill(&merged.Colors.Down, def.Colors.Down)
	fill(&merged.Colors.Muted, def.Colors.Muted)
	fill(&merged.Colors.Text, def.Colors.Text)
	fill(&merged.Colors.Border, def.Colors.Border)
	fill(&merged.Colors.Error, def.Colors.Error)

	// Icons
	fill(&merged.Icons.Up, def.Icons.Up)
	fill(&merged.Icons.Down, def.Icons.Down)
	fill(&merged.Icons.Flat, def.Icons.Flat)
	fill(&merged.Icons.Toggle, def.Icons.Toggle)

	// Title
	fill(&merged.Title.Text, def.Title.Text)
	fill(&merged.Title.Icon, def.Title.Icon)

	if merged.FPS <= 0 {
		merged.FPS = def.FPS
	}
	return &merged
}
