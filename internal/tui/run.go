package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NikitaCOEUR/inlinecomplete/internal/config"
)

// RunOptions configures Run
type RunOptions struct {
	Options
	// ConfigPath is watched for changes when Watch is set
	ConfigPath string
	Watch      bool
}

// Run starts the demo and blocks until the user quits or ctx is done
func Run(ctx context.Context, opts RunOptions) error {
	m, err := New(opts.Options)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	if opts.Watch && opts.ConfigPath != "" {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		go func() {
			err := config.Watch(watchCtx, opts.ConfigPath, func(cfg *config.Config, err error) {
				p.Send(ConfigMsg{Config: cfg, Err: err})
			})
			if err != nil {
				m.log.Warn().Err(err).Str("path", opts.ConfigPath).Msg("Config watch stopped")
			}
		}()
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
