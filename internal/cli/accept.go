package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/NikitaCOEUR/inlinecomplete/internal/autocomplete"
	"github.com/NikitaCOEUR/inlinecomplete/internal/report"
	"github.com/NikitaCOEUR/inlinecomplete/internal/suggestion"
)

// AcceptParams contains parameters for the Accept command
type AcceptParams struct {
	ConfigPath string
	LogLevel   string
	Text       string
	Caret      int    // Negative means the end of Text
	Value      string // Inserted as is when set
	Index      int    // Otherwise, picks this suggestion from the engine
	Plain      bool
	Out        io.Writer
}

// Accept runs the controller over Text and accepts a suggestion for the
// query at the caret, as a host would when the user picks one
func Accept(ctx context.Context, params AcceptParams) error {
	s, err := openSession(params.ConfigPath, params.LogLevel, nil)
	if err != nil {
		return err
	}

	caret := resolveCaret(params.Text, params.Caret)
	buf := &autocomplete.Buffer{
		Text:  params.Text,
		Caret: caret,
		Box:   s.config.Surface.TextBox(params.Text),
	}
	ctrl := autocomplete.New(buf, autocomplete.Options{Triggers: s.triggers, Logger: s.log})

	ctrl.Update()
	if !ctrl.IsOpen() {
		return fmt.Errorf("no active query at caret %d", caret)
	}
	state := ctrl.State()

	pick := suggestion.Plain(params.Value)
	if params.Value == "" {
		result, err := s.engine.Complete(ctx, state.Event)
		if err != nil {
			return fmt.Errorf("failed to complete %q: %w", state.Event.Query, err)
		}
		if params.Index < 0 || params.Index >= len(result.Suggestions) {
			return fmt.Errorf("suggestion index %d out of range, %d suggestion(s) for %q",
				params.Index, len(result.Suggestions), state.Event.Query)
		}
		pick = result.Suggestions[params.Index]
	}

	ctrl.Accept(pick)

	return printApply(params.Out, params.Plain, &report.ApplyData{
		Before:      params.Text,
		After:       buf.Text,
		Range:       suggestion.Range{Start: state.Anchor, End: state.Caret},
		Replacement: suggestion.ValueOf(pick),
		Caret:       buf.Caret,
	})
}
