package completion

import (
	"github.com/NikitaCOEUR/inlinecomplete/internal/suggestion"
	"github.com/NikitaCOEUR/inlinecomplete/internal/trigger"
)

// StaticSource filters a fixed list by case-insensitive prefix, keeping the
// list order.
type StaticSource struct {
	char  rune
	items []suggestion.Suggestion
}

// NewStaticSource creates a source for the trigger character char
func NewStaticSource(char rune, items []suggestion.Suggestion) *StaticSource {
	return &StaticSource{
		char:  char,
		items: append([]suggestion.Suggestion(nil), items...),
	}
}

// Name implements Source
func (s *StaticSource) Name() string {
	return "static:" + string(s.char)
}

// Supports implements Source
func (s *StaticSource) Supports(t trigger.Trigger) bool {
	return t.Char == s.char
}

// Complete implements Source
func (s *StaticSource) Complete(query string) ([]suggestion.Suggestion, error) {
	return Filter(s.items, query), nil
}
