// Package report collects and renders what the autocomplete controller sees
// for a given text and caret.
package report

import (
	"context"
	"fmt"

	"github.com/NikitaCOEUR/inlinecomplete/internal/autocomplete"
	"github.com/NikitaCOEUR/inlinecomplete/internal/completion"
	"github.com/NikitaCOEUR/inlinecomplete/internal/geometry"
	"github.com/NikitaCOEUR/inlinecomplete/internal/logger"
	"github.com/NikitaCOEUR/inlinecomplete/internal/timing"
	"github.com/NikitaCOEUR/inlinecomplete/internal/trace"
	"github.com/NikitaCOEUR/inlinecomplete/internal/trigger"
	"github.com/NikitaCOEUR/inlinecomplete/pkg/version"
)

// Input is what Collect runs the controller against
type Input struct {
	Text       string
	Caret      int
	Triggers   []trigger.Trigger
	Surface    *geometry.TextBox // Optional, its Value is replaced by Text
	Engine     *completion.Engine
	Logger     *logger.Logger
	ConfigPath string
}

// Collect runs one controller update for the input and gathers the match,
// its popup coordinates and the suggestions the engine returns for it
func Collect(ctx context.Context, in Input) (*Data, error) {
	defer trace.Region(ctx, "report.Collect")()
	timer := timing.NewTimer()

	data := &Data{
		Version:    version.Version,
		ConfigPath: in.ConfigPath,
		Text:       in.Text,
		Caret:      in.Caret,
		Triggers:   in.Triggers,
	}

	buf := &autocomplete.Buffer{Text: in.Text, Caret: in.Caret}
	if in.Surface != nil {
		box := *in.Surface
		buf.Box = &box
	}

	ctrl := autocomplete.New(buf, autocomplete.Options{Triggers: in.Triggers, Logger: in.Logger})
	ctrl.Update()
	timer.Mark("match")

	// Layout after the update since single-line boxes drop word break on measure
	if buf.Box != nil {
		data.Rows = buf.Box.Rows()
	} else {
		data.Rows = []string{in.Text}
	}

	if !ctrl.IsOpen() {
		data.Elapsed = timer.Elapsed()
		data.Timings = timer.Stages()
		return data, nil
	}

	state := ctrl.State()
	data.Matched = true
	data.Event = state.Event
	data.Anchor = state.Anchor
	data.Absolute = state.Coordinates
	data.Relative = geometry.Relative(buf.Surface(), max(state.Anchor-1, 0), true)
	timer.Mark("layout")

	if in.Engine != nil {
		result, err := in.Engine.Complete(ctx, state.Event)
		if err != nil {
			return nil, fmt.Errorf("failed to complete %q: %w", state.Event.Query, err)
		}
		data.Suggestions = result.Suggestions
		data.Source = result.Source
		timer.Mark("complete")
	}

	data.Elapsed = timer.Elapsed()
	data.Timings = timer.Stages()
	return data, nil
}
