// Package render provides output renderers for trendline patterns: styled terminal text,
// LLM-friendly plain text, JSON, interactive HTML and static images.
package render

import "github.com/dkoosis/trendline/pkg/pattern"

// Renderer converts patterns to formatted output.
type Renderer interface {
	Render(patterns []pattern.Pattern) string
}
