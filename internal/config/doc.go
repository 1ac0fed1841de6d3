// Package config handles configuration loading and resolution for trendline.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--theme, --period, --no-color, --debug, etc.)
//  2. Environment variables (TRENDLINE_THEME, TRENDLINE_PERIOD, TRENDLINE_NO_COLOR, NO_COLOR, TRENDLINE_DEBUG)
//  3. YAML config file (.trendline.yaml in local directory or ~/.config/trendline/.trendline.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
//
// # File Layout
//
//	theme: orca
//	dataset: index
//	period: 3y
//	moving_averages: [4m, 1y]
//	seed: 7
//	chart:
//	  line_color: "#ff9800"
//	  animation_duration: 800ms
//	dashboard:
//	  colors:
//	    primary: "#0EA5E9"
//	server:
//	  addr: 127.0.0.1:9000
//
// # Environment Variables
//
//   - TRENDLINE_NO_COLOR or NO_COLOR: Set to "true" or "1" to disable colors
//   - TRENDLINE_DEBUG: Set to "true" or "1" to enable debug logging
//   - TRENDLINE_THEME, TRENDLINE_PERIOD: Override the theme and period names
package config
