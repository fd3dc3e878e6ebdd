// Package cli implements the inlinecomplete commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"text/template"
	"unicode/utf8"

	"github.com/Masterminds/sprig/v3"

	"github.com/NikitaCOEUR/inlinecomplete/internal/completion"
	"github.com/NikitaCOEUR/inlinecomplete/internal/config"
	"github.com/NikitaCOEUR/inlinecomplete/internal/logger"
	"github.com/NikitaCOEUR/inlinecomplete/internal/trigger"
)

// session holds the components a command needs once its config is loaded
type session struct {
	config     *config.Config
	configPath string // Empty when the built-in defaults are used
	triggers   []trigger.Trigger
	engine     *completion.Engine
	log        *logger.Logger
}

// openSession resolves and loads the config, then builds the triggers and
// completion engine from it. An empty logLevel falls back to the config, and
// logs go to stderr when logOut is nil.
func openSession(configPath, logLevel string, logOut io.Writer) (*session, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, path, err := config.New().LoadResolved(configPath, currentDir)
	if err != nil {
		return nil, err
	}

	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	log := logger.New(logLevel, logOut)
	log.Debug().Str("config", path).Msg("Config loaded")

	triggers, err := cfg.GetTriggers()
	if err != nil {
		return nil, err
	}

	engine, err := completion.FromConfig(cfg, log)
	if err != nil {
		return nil, err
	}

	return &session{
		config:     cfg,
		configPath: path,
		triggers:   triggers,
		engine:     engine,
		log:        log,
	}, nil
}

// resolveCaret maps a negative caret to the end of text
func resolveCaret(text string, caret int) int {
	if caret < 0 {
		return utf8.RuneCountInString(text)
	}
	return caret
}

// output returns w, or stdout when w is nil
func output(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

// renderTemplate executes a user supplied Go template with the sprig functions
func renderTemplate(w io.Writer, format string, data interface{}) error {
	tmpl, err := template.New("format").Funcs(sprig.TxtFuncMap()).Parse(format)
	if err != nil {
		return fmt.Errorf("invalid format template: %w", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render format template: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
