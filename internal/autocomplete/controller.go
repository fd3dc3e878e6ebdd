// Package autocomplete drives an inline suggestion popup for a text input.
//
// The Controller never owns the text. The host widget reports its value and
// caret, and the controller answers with callbacks: show suggestions for a
// query, place the popup, hide it, or commit a spliced text.
package autocomplete

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/NikitaCOEUR/inlinecomplete/internal/geometry"
	"github.com/NikitaCOEUR/inlinecomplete/internal/logger"
	"github.com/NikitaCOEUR/inlinecomplete/internal/suggestion"
	"github.com/NikitaCOEUR/inlinecomplete/internal/trigger"
)

// Phase is the controller's position in its lifecycle.
type Phase int

const (
	// Idle means no query is active and the popup is hidden
	Idle Phase = iota
	// Matching means a query was found and its popup is being positioned
	Matching
	// Open means the popup is shown at State.Coordinates
	Open
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Matching:
		return "matching"
	case Open:
		return "open"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is a snapshot of the controller.
type State struct {
	Phase Phase
	Event trigger.Event
	// Anchor is the rune offset where the query starts, right after the
	// trigger character. Accepting a suggestion replaces [Anchor, caret).
	Anchor int
	// Caret is the caret the match was computed for
	Caret       int
	Coordinates geometry.Coordinates
}

// Host is the text input the controller is attached to.
type Host interface {
	// Value returns the current text and the caret as a rune offset
	Value() (text string, caret int)
	// Surface returns the measurable input, or nil when it is not laid out
	Surface() geometry.Surface
	// ShowSuggestions asks the host to filter candidates for ev.Query
	ShowSuggestions(ev trigger.Event)
	// PlaceSuggestions moves the popup to an absolute cell
	PlaceSuggestions(at geometry.Coordinates)
	// HideSuggestions closes the popup
	HideSuggestions()
	// Commit replaces the whole text and moves the caret in one step.
	// It must not call back into Update.
	Commit(text string, caret int)
}

// Options configures a Controller.
type Options struct {
	Triggers []trigger.Trigger
	Logger   *logger.Logger
}

// Controller is not safe for concurrent use. The host calls it from its
// event loop.
type Controller struct {
	host     Host
	triggers []trigger.Trigger
	log      *logger.Logger
	state    State
}

// New creates a controller in the Idle phase.
func New(host Host, opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	return &Controller{
		host:     host,
		triggers: append([]trigger.Trigger(nil), opts.Triggers...),
		log:      log.With("autocomplete"),
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	return c.state
}

// IsOpen reports whether the popup is shown.
func (c *Controller) IsOpen() bool {
	return c.state.Phase == Open
}

// Triggers returns a copy of the configured triggers.
func (c *Controller) Triggers() []trigger.Trigger {
	return append([]trigger.Trigger(nil), c.triggers...)
}

// SetTriggers replaces the trigger set and re-evaluates the current text.
func (c *Controller) SetTriggers(triggers []trigger.Trigger) {
	c.triggers = append([]trigger.Trigger(nil), triggers...)
	c.log.Debug().Int("triggers", len(triggers)).Msg("Triggers replaced")
	c.Update()
}

// Update re-runs matching for the host's current text and caret. Call it on
// every text or caret change.
func (c *Controller) Update() {
	start := time.Now()
	text, caret := c.host.Value()

	ev, ok := trigger.Match(c.triggers, text, caret)
	if !ok {
		c.close("no match")
		return
	}

	caret = min(caret, utf8.RuneCountInString(text))
	anchor := caret - utf8.RuneCountInString(ev.Query)

	c.state = State{
		Phase:  Matching,
		Event:  ev,
		Anchor: anchor,
		Caret:  caret,
	}
	c.host.ShowSuggestions(ev)

	// the popup hangs under the trigger character
	at := geometry.Absolute(c.host.Surface(), max(anchor-1, 0))
	c.state.Coordinates = at
	c.state.Phase = Open
	c.host.PlaceSuggestions(at)

	c.log.Debug().
		Str("trigger", ev.Trigger.String()).
		Str("query", ev.Query).
		Int("anchor", anchor).
		Int("top", at.Top).
		Int("left", at.Left).
		Dur("elapsed", time.Since(start)).
		Msg("Suggestions open")
}

// Accept splices s into the text in place of the active query. It reports
// false when no popup is open.
func (c *Controller) Accept(s suggestion.Suggestion) bool {
	if c.state.Phase != Open {
		return false
	}

	text, caret := c.host.Value()
	r := suggestion.Range{Start: c.state.Anchor, End: caret}.Clamp(utf8.RuneCountInString(text))
	value := suggestion.ValueOf(s)

	newText := suggestion.Apply(text, r, value)
	newCaret := suggestion.Caret(r, value)

	c.log.Debug().
		Str("value", value).
		Str("key", suggestion.KeyOf(s)).
		Int("start", r.Start).
		Int("end", r.End).
		Int("caret", newCaret).
		Msg("Suggestion accepted")

	c.state = State{}
	c.host.Commit(newText, newCaret)
	c.host.HideSuggestions()
	return true
}

// Dismiss closes the popup on an explicit cancel.
func (c *Controller) Dismiss() {
	c.close("dismissed")
}

// Blur closes the popup when the input loses focus.
func (c *Controller) Blur() {
	c.close("blur")
}

func (c *Controller) close(reason string) {
	if c.state.Phase == Idle {
		return
	}
	c.log.Debug().Str("reason", reason).Str("phase", c.state.Phase.String()).Msg("Suggestions closed")
	c.state = State{}
	c.host.HideSuggestions()
}
