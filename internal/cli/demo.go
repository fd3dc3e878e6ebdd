package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/inlinecomplete/internal/tui"
)

// DemoParams contains parameters for the Demo command
type DemoParams struct {
	ConfigPath string
	LogLevel   string
	LogFile    string // The demo owns the terminal, so logs are dropped unless set
	Text       string
	Watch      bool
}

// Demo opens an interactive text box driven by the autocomplete controller
func Demo(ctx context.Context, params DemoParams) error {
	logOut := io.Discard
	if params.LogFile != "" {
		f, err := os.OpenFile(params.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		logOut = f
	}

	s, err := openSession(params.ConfigPath, params.LogLevel, logOut)
	if err != nil {
		return err
	}

	return tui.Run(ctx, tui.RunOptions{
		Options: tui.Options{
			Text:   params.Text,
			Config: s.config,
			Logger: s.log,
		},
		ConfigPath: s.configPath,
		Watch:      params.Watch,
	})
}
