package completion

import (
	"fmt"
	"unicode/utf8"

	"github.com/NikitaCOEUR/inlinecomplete/internal/config"
	"github.com/NikitaCOEUR/inlinecomplete/internal/derrors"
	"github.com/NikitaCOEUR/inlinecomplete/internal/logger"
)

// FromConfig builds an engine with one source per configured suggestion
// list, using the source kind cfg.Source names.
func FromConfig(cfg *config.Config, log *logger.Logger) (*Engine, error) {
	lists, err := cfg.GetSuggestions()
	if err != nil {
		return nil, err
	}

	engine := NewEngine(cfg.MaxSuggestions, log)
	for _, char := range cfg.SuggestionChars() {
		r, _ := utf8.DecodeRuneInString(char)
		items := lists[r]

		switch cfg.Source {
		case config.SourcePrefix, "":
			engine.Add(NewStaticSource(r, items))
		case config.SourceTrie:
			engine.Add(NewTrieSource(r, items))
		default:
			return nil, derrors.NewValidationError("source", fmt.Sprintf("unknown source %q", cfg.Source), nil)
		}
	}

	return engine, nil
}
