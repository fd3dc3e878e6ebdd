package report

import (
	"time"

	"github.com/NikitaCOEUR/inlinecomplete/internal/geometry"
	"github.com/NikitaCOEUR/inlinecomplete/internal/suggestion"
	"github.com/NikitaCOEUR/inlinecomplete/internal/timing"
	"github.com/NikitaCOEUR/inlinecomplete/internal/trigger"
)

// Data contains all the information to display for a match
type Data struct {
	// Header
	Version    string
	ConfigPath string // Empty when the built-in defaults are used

	// Input
	Text     string
	Caret    int
	Triggers []trigger.Trigger
	Rows     []string // Text as laid out in the surface

	// Match
	Matched  bool
	Event    trigger.Event
	Anchor   int
	Relative geometry.Coordinates
	Absolute geometry.Coordinates

	// Suggestions
	Suggestions []suggestion.Suggestion
	Source      string
	Elapsed     time.Duration
	Timings     []timing.Stage
}

// ApplyData describes one splice
type ApplyData struct {
	Before      string
	After       string
	Range       suggestion.Range
	Replacement string
	Caret       int
}
