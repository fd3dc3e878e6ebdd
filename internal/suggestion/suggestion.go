// Package suggestion holds the suggestion type and the splice used to insert
// an accepted suggestion into text.
package suggestion

import (
	"fmt"
	"unicode/utf8"

	"github.com/NikitaCOEUR/inlinecomplete/internal/derrors"
)

// Suggestion is a candidate offered for an active query.
type Suggestion struct {
	// Value is the text inserted on acceptance
	Value string
	// Key is the stable identity used for list rendering and selection.
	// Empty means Value.
	Key string
}

// Plain creates a suggestion from a bare string.
func Plain(value string) Suggestion {
	return Suggestion{Value: value}
}

// ValueOf returns the text inserted for s.
func ValueOf(s Suggestion) string {
	return s.Value
}

// KeyOf returns the identity of s, falling back to its value.
func KeyOf(s Suggestion) string {
	if s.Key != "" {
		return s.Key
	}
	return s.Value
}

// FromAny normalizes a configuration value into a Suggestion.
// Supported shapes: a string, or a map with "value" and optional "key".
func FromAny(v interface{}) (Suggestion, error) {
	switch s := v.(type) {
	case string:
		return Plain(s), nil
	case Suggestion:
		return s, nil
	case map[string]interface{}:
		value, ok := s["value"].(string)
		if !ok {
			return Suggestion{}, fmt.Errorf("suggestion object requires a string value")
		}
		out := Suggestion{Value: value}
		if key, exists := s["key"]; exists {
			k, ok := key.(string)
			if !ok {
				return Suggestion{}, fmt.Errorf("suggestion key must be a string, got %T", key)
			}
			out.Key = k
		}
		return out, nil
	default:
		return Suggestion{}, fmt.Errorf("unsupported suggestion type %T", v)
	}
}

// Range is a half-open [Start, End) span of rune offsets.
type Range struct {
	Start int
	End   int
}

// Valid reports whether r fits a text of n runes.
func (r Range) Valid(n int) bool {
	return 0 <= r.Start && r.Start <= r.End && r.End <= n
}

// Clamp forces r into [0, n] with End >= Start.
func (r Range) Clamp(n int) Range {
	r.Start = min(max(r.Start, 0), n)
	r.End = min(max(r.End, r.Start), n)
	return r
}

// Apply replaces the runes in r with replacement. Out-of-range input is
// clamped to the text.
func Apply(text string, r Range, replacement string) string {
	runes := []rune(text)
	r = r.Clamp(len(runes))
	return string(runes[:r.Start]) + replacement + string(runes[r.End:])
}

// ApplyStrict is Apply without clamping: an out-of-range r is an error.
func ApplyStrict(text string, r Range, replacement string) (string, error) {
	n := utf8.RuneCountInString(text)
	if !r.Valid(n) {
		return "", derrors.NewRangeError(r.Start, r.End, n)
	}
	return Apply(text, r, replacement), nil
}

// Caret returns the caret offset right after replacement once it has been
// applied at r.
func Caret(r Range, replacement string) int {
	return r.Start + utf8.RuneCountInString(replacement)
}
