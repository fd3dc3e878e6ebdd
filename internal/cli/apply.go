package cli

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/NikitaCOEUR/inlinecomplete/internal/report"
	"github.com/NikitaCOEUR/inlinecomplete/internal/suggestion"
)

// ApplyParams contains parameters for the Apply command
type ApplyParams struct {
	Text        string
	Start       int
	End         int
	Replacement string
	Strict      bool // Reject out of range spans instead of clamping them
	Plain       bool // Print only the resulting text
	Out         io.Writer
}

// Apply splices Replacement into Text over [Start, End)
func Apply(params ApplyParams) error {
	r := suggestion.Range{Start: params.Start, End: params.End}

	var after string
	if params.Strict {
		var err error
		after, err = suggestion.ApplyStrict(params.Text, r, params.Replacement)
		if err != nil {
			return err
		}
	} else {
		r = r.Clamp(utf8.RuneCountInString(params.Text))
		after = suggestion.Apply(params.Text, r, params.Replacement)
	}

	return printApply(params.Out, params.Plain, &report.ApplyData{
		Before:      params.Text,
		After:       after,
		Range:       r,
		Replacement: params.Replacement,
		Caret:       suggestion.Caret(r, params.Replacement),
	})
}

func printApply(w io.Writer, plain bool, data *report.ApplyData) error {
	out := output(w)
	if plain {
		_, err := fmt.Fprintln(out, data.After)
		return err
	}
	_, err := fmt.Fprintln(out, report.RenderApply(data))
	return err
}
