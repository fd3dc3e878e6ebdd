// Package tui is a terminal demo of the autocomplete controller: a text box
// whose popup follows the active trigger.
package tui

import (
	"context"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NikitaCOEUR/inlinecomplete/internal/autocomplete"
	"github.com/NikitaCOEUR/inlinecomplete/internal/completion"
	"github.com/NikitaCOEUR/inlinecomplete/internal/config"
	"github.com/NikitaCOEUR/inlinecomplete/internal/geometry"
	"github.com/NikitaCOEUR/inlinecomplete/internal/logger"
	"github.com/NikitaCOEUR/inlinecomplete/internal/suggestion"
	"github.com/NikitaCOEUR/inlinecomplete/internal/trigger"
)

// Box origin on screen: a border row and column plus one column of padding
const (
	boxTop  = 2
	boxLeft = 2
)

// Options configures a Model
type Options struct {
	Text   string
	Config *config.Config // Defaults to config.Default()
	Logger *logger.Logger
}

// ConfigMsg carries a reloaded configuration into the program
type ConfigMsg struct {
	Config *config.Config
	Err    error
}

// suggestionsMsg is the answer to one fetch. seq identifies the popup it was
// requested for.
type suggestionsMsg struct {
	seq    int
	result *completion.Result
	err    error
}

// Model is the demo's bubbletea model. It is also the controller's host.
type Model struct {
	text  string
	caret int
	box   *geometry.TextBox
	width int // Configured box width, before clamping to the window

	ctrl   *autocomplete.Controller
	onKey  autocomplete.Handler
	engine *completion.Engine
	keys   KeyMap
	help   help.Model
	log    *logger.Logger

	// Popup
	open     bool
	event    trigger.Event
	at       geometry.Coordinates
	items    []suggestion.Suggestion
	source   string
	selected int
	seq      int
	pending  bool

	status   string
	quitting bool
}

var _ autocomplete.Host = (*Model)(nil)

// New creates a model with the caret at the end of opts.Text
func New(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	m := &Model{
		text:  opts.Text,
		caret: utf8.RuneCountInString(opts.Text),
		keys:  DefaultKeyMap(),
		help:  help.New(),
		log:   log.With("tui"),
	}

	triggers, err := m.load(cfg)
	if err != nil {
		return nil, err
	}

	m.ctrl = autocomplete.New(m, autocomplete.Options{Triggers: triggers, Logger: log})
	// The popup handler registers last so it sees keys before the controller
	m.onKey = autocomplete.Chain(m.ctrl.HandleKey, m.popupKey)

	return m, nil
}

// load applies cfg to the surface and engine and returns its triggers
func (m *Model) load(cfg *config.Config) ([]trigger.Trigger, error) {
	triggers, err := cfg.GetTriggers()
	if err != nil {
		return nil, err
	}
	engine, err := completion.FromConfig(cfg, m.log)
	if err != nil {
		return nil, err
	}

	box := cfg.Surface.TextBox(m.text)
	box.X, box.Y = boxLeft, boxTop
	if m.box != nil && m.box.Width > 0 && m.box.Width < box.Width {
		box.Width = m.box.Width
	}

	m.engine = engine
	m.width = cfg.Surface.Width
	m.box = box
	return triggers, nil
}

// Text returns the current text and caret
func (m *Model) Text() (string, int) {
	return m.text, m.caret
}

// Value implements autocomplete.Host
func (m *Model) Value() (string, int) {
	return m.text, m.caret
}

// Surface implements autocomplete.Host
func (m *Model) Surface() geometry.Surface {
	m.box.Value = m.text
	return m.box
}

// ShowSuggestions implements autocomplete.Host
func (m *Model) ShowSuggestions(ev trigger.Event) {
	if !m.open || ev != m.event {
		m.selected = 0
	}
	m.open = true
	m.event = ev
	m.seq++
	m.pending = true
}

// PlaceSuggestions implements autocomplete.Host
func (m *Model) PlaceSuggestions(at geometry.Coordinates) {
	m.at = at
}

// HideSuggestions implements autocomplete.Host
func (m *Model) HideSuggestions() {
	m.open = false
	m.event = trigger.Event{}
	m.items = nil
	m.source = ""
	m.selected = 0
	m.pending = false
}

// Commit implements autocomplete.Host
func (m *Model) Commit(text string, caret int) {
	m.text = text
	m.caret = caret
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	m.ctrl.Update()
	return m.fetch()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		// border and padding take two columns on each side, zero never wraps
		if m.width > 0 {
			m.box.Width = max(min(m.width, msg.Width-2*boxLeft), 1)
		}
		m.help.Width = msg.Width
		m.ctrl.Update()
		return m, m.fetch()

	case tea.BlurMsg:
		m.ctrl.Blur()
		return m, nil

	case tea.FocusMsg:
		m.ctrl.Update()
		return m, m.fetch()

	case suggestionsMsg:
		if msg.seq != m.seq || !m.open {
			return m, nil
		}
		if msg.err != nil {
			m.status = "completion failed: " + msg.err.Error()
			return m, nil
		}
		m.items = msg.result.Suggestions
		m.source = msg.result.Source
		m.selected = min(m.selected, max(len(m.items)-1, 0))
		return m, nil

	case ConfigMsg:
		if msg.Err != nil {
			m.status = "config reload failed: " + msg.Err.Error()
			m.log.Warn().Err(msg.Err).Msg("Config reload failed")
			return m, nil
		}
		triggers, err := m.load(msg.Config)
		if err != nil {
			m.status = "config reload failed: " + err.Error()
			m.log.Warn().Err(err).Msg("Config reload failed")
			return m, nil
		}
		m.status = "config reloaded"
		m.log.Info().Int("triggers", len(triggers)).Msg("Config reloaded")
		m.ctrl.SetTriggers(triggers)
		return m, m.fetch()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return tea.Quit
	}

	ev := &autocomplete.KeyEvent{Key: msg.String()}
	m.onKey(ev)
	if ev.Suppressed() {
		return nil
	}

	m.status = ""
	runes := []rune(m.text)

	switch {
	case key.Matches(msg, m.keys.Left):
		m.caret = geometry.PrevBoundary(m.text, m.caret)
	case key.Matches(msg, m.keys.Right):
		m.caret = geometry.NextBoundary(m.text, m.caret)
	case key.Matches(msg, m.keys.Home):
		m.caret = 0
	case key.Matches(msg, m.keys.End):
		m.caret = len(runes)
	case key.Matches(msg, m.keys.Backspace):
		prev := geometry.PrevBoundary(m.text, m.caret)
		m.text = string(runes[:prev]) + string(runes[m.caret:])
		m.caret = prev
	case key.Matches(msg, m.keys.Delete):
		next := geometry.NextBoundary(m.text, m.caret)
		m.text = string(runes[:m.caret]) + string(runes[next:])
	case key.Matches(msg, m.keys.Newline):
		if !m.box.Multiline() {
			return nil
		}
		m.insert("\n")
	case msg.Type == tea.KeySpace:
		m.insert(" ")
	case msg.Type == tea.KeyRunes:
		m.insert(string(msg.Runes))
	default:
		return nil
	}

	m.ctrl.Update()
	return m.fetch()
}

// popupKey handles selection keys while the popup is open
func (m *Model) popupKey(ev *autocomplete.KeyEvent) {
	if !m.ctrl.IsOpen() || len(m.items) == 0 {
		return
	}

	switch {
	case bound(m.keys.Up, ev.Key):
		m.selected = (m.selected - 1 + len(m.items)) % len(m.items)
	case bound(m.keys.Down, ev.Key):
		m.selected = (m.selected + 1) % len(m.items)
	case bound(m.keys.Accept, ev.Key):
		m.ctrl.Accept(m.items[m.selected])
	default:
		return
	}
	ev.Suppress()
}

func (m *Model) insert(s string) {
	runes := []rune(m.text)
	m.caret = min(m.caret, len(runes))
	m.text = string(runes[:m.caret]) + s + string(runes[m.caret:])
	m.caret += utf8.RuneCountInString(s)
}

// fetch returns a command completing the current query, if one is waiting
func (m *Model) fetch() tea.Cmd {
	if !m.pending {
		return nil
	}
	m.pending = false

	engine, ev, seq := m.engine, m.event, m.seq
	return func() tea.Msg {
		result, err := engine.Complete(context.Background(), ev)
		return suggestionsMsg{seq: seq, result: result, err: err}
	}
}
