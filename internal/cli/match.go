package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/NikitaCOEUR/inlinecomplete/internal/report"
)

// MatchParams contains parameters for the Match command
type MatchParams struct {
	ConfigPath string
	LogLevel   string
	Text       string
	Caret      int    // Negative means the end of Text
	Format     string // Go template over report.Data, empty for the styled report
	Out        io.Writer
}

// Match reports the active query at the caret, where its popup would open
// and the suggestions offered for it
func Match(ctx context.Context, params MatchParams) error {
	s, err := openSession(params.ConfigPath, params.LogLevel, nil)
	if err != nil {
		return err
	}

	data, err := report.Collect(ctx, report.Input{
		Text:       params.Text,
		Caret:      resolveCaret(params.Text, params.Caret),
		Triggers:   s.triggers,
		Surface:    s.config.Surface.TextBox(params.Text),
		Engine:     s.engine,
		Logger:     s.log,
		ConfigPath: s.configPath,
	})
	if err != nil {
		return fmt.Errorf("failed to collect match data: %w", err)
	}

	out := output(params.Out)
	if params.Format != "" {
		return renderTemplate(out, params.Format, data)
	}

	_, err = fmt.Fprintln(out, report.Render(data))
	return err
}
