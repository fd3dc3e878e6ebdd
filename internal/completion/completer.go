// Package completion provides the suggestion sources a host uses to fill its
// popup once the controller reports an active query.
package completion

import (
	"strings"

	"github.com/NikitaCOEUR/inlinecomplete/internal/suggestion"
	"github.com/NikitaCOEUR/inlinecomplete/internal/trigger"
)

// Source defines the interface for suggestion providers
type Source interface {
	// Name identifies the source in results and logs
	Name() string

	// Supports returns true if this source serves queries for the given trigger
	Supports(t trigger.Trigger) bool

	// Complete returns suggestions matching the query
	// Returns suggestions and nil if successful, or nil and error if failed
	Complete(query string) ([]suggestion.Suggestion, error)
}

// Result represents the result of a completion attempt
type Result struct {
	Suggestions []suggestion.Suggestion
	Source      string // Which sources provided these suggestions
}

// Filter keeps the suggestions whose value starts with prefix, ignoring case.
// An empty prefix keeps everything.
func Filter(suggestions []suggestion.Suggestion, prefix string) []suggestion.Suggestion {
	if prefix == "" {
		return suggestions
	}

	lower := strings.ToLower(prefix)
	var filtered []suggestion.Suggestion
	for _, s := range suggestions {
		if strings.HasPrefix(strings.ToLower(s.Value), lower) {
			filtered = append(filtered, s)
		}
	}

	return filtered
}
