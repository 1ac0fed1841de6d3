package render

import (
	"encoding/json"

	"github.com/dkoosis/trendline/pkg/pattern"
)

// SchemaVersion identifies the JSON document layout.
const SchemaVersion = "2.0"

// JSON renders patterns as structured JSON for automation.
type JSON struct {
	// Compact drops indentation, for HTTP responses.
	Compact bool
}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

// jsonOutput is the top-level JSON structure.
type jsonOutput struct {
	Version  string        `json:"version"`
	Patterns []jsonPattern `json:"patterns"`
}

type jsonPattern struct {
	Type string          `json:"type"`
	Data pattern.Pattern `json:"data"`
}

// Render formats all patterns as JSON.
func (j *JSON) Render(patterns []pattern.Pattern) string {
	out := jsonOutput{
		Version:  SchemaVersion,
		Patterns: make([]jsonPattern, 0, len(patterns)),
	}
	for _, p := range patterns {
		out.Patterns = append(out.Patterns, jsonPattern{Type: string(p.Type()), Data: p})
	}

	var data []byte
	var err error
	if j.Compact {
		data, err = json.Marshal(out)
	} else {
		data, err = json.MarshalIndent(out, "", "  ")
	}
	if err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON)
	}
	return string(data) + "\n"
}
