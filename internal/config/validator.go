package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/NikitaCOEUR/inlinecomplete/internal/derrors"
	"github.com/NikitaCOEUR/inlinecomplete/internal/suggestion"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation.
// Warnings never make a result invalid.
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}

func newResult() *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}
}

func (r *ValidationResult) addError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

func (r *ValidationResult) addWarning(field, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Message: message})
}

// Merge appends the findings of other
func (r *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	if !other.Valid {
		r.Valid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Validate validates a config file: schema first, then semantics
func Validate(path string) (*ValidationResult, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, derrors.NewNotFoundError(path, fmt.Sprintf("config file not found: %s", path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}

	cfg, err := New().Load(path)
	if err != nil {
		result.addError("syntax", fmt.Sprintf("Failed to parse config: %v", err))
		return result, nil
	}

	result.Merge(ValidateConfig(cfg))
	return result, nil
}

// ValidateConfig checks the semantics of a parsed config
func ValidateConfig(cfg *Config) *ValidationResult {
	result := newResult()

	if _, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil {
		result.addError("log_level", fmt.Sprintf("Unknown log level '%s'", cfg.LogLevel))
	}

	if cfg.MaxSuggestions < 0 {
		result.addError("max_suggestions", "Must not be negative")
	}

	switch cfg.Source {
	case SourcePrefix, SourceTrie:
	default:
		result.addError("source", fmt.Sprintf("Unknown source '%s' (expected %s or %s)", cfg.Source, SourcePrefix, SourceTrie))
	}

	if cfg.Surface.Width < 0 {
		result.addError("surface/width", "Must not be negative")
	}

	if len(cfg.Triggers) == 0 {
		result.addWarning("triggers", "No triggers configured, suggestions will never open")
	}

	// Duplicate characters are allowed: the nearest eligible trigger wins
	seen := make(map[string]int)
	for i, t := range cfg.Triggers {
		field := fmt.Sprintf("triggers/%d", i)
		if utf8.RuneCountInString(t.Char) != 1 {
			result.addError(field, fmt.Sprintf("Trigger char must be exactly one character, got %q", t.Char))
			continue
		}
		if first, dup := seen[t.Char]; dup {
			result.addWarning(field, fmt.Sprintf("Trigger '%s' is also defined at triggers/%d", t.Char, first))
			continue
		}
		seen[t.Char] = i
	}

	for _, char := range cfg.SuggestionChars() {
		field := "suggestions/" + char
		if _, ok := seen[char]; !ok {
			result.addWarning(field, fmt.Sprintf("No trigger uses '%s', these suggestions are unreachable", char))
		}

		keys := make(map[string]bool)
		for i, item := range cfg.Suggestions[char] {
			s, err := suggestion.FromAny(item)
			if err != nil {
				result.addError(fmt.Sprintf("%s/%d", field, i), err.Error())
				continue
			}
			if strings.TrimSpace(s.Value) == "" {
				result.addError(fmt.Sprintf("%s/%d", field, i), "Suggestion value is empty")
				continue
			}
			key := suggestion.KeyOf(s)
			if keys[key] {
				result.addWarning(fmt.Sprintf("%s/%d", field, i), fmt.Sprintf("Duplicate key '%s' is shown once", key))
			}
			keys[key] = true
		}
	}

	return result
}
