package autocomplete

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/inlinecomplete/internal/geometry"
	"github.com/NikitaCOEUR/inlinecomplete/internal/logger"
	"github.com/NikitaCOEUR/inlinecomplete/internal/suggestion"
	"github.com/NikitaCOEUR/inlinecomplete/internal/trigger"
)

type fakeHost struct {
	text    string
	caret   int
	surface geometry.Surface

	shown   []trigger.Event
	placed  []geometry.Coordinates
	hidden  int
	commits []string
	carets  []int
}

func (h *fakeHost) Value() (string, int) { return h.text, h.caret }

func (h *fakeHost) Surface() geometry.Surface { return h.surface }

func (h *fakeHost) ShowSuggestions(ev trigger.Event) { h.shown = append(h.shown, ev) }

func (h *fakeHost) PlaceSuggestions(at geometry.Coordinates) { h.placed = append(h.placed, at) }

func (h *fakeHost) HideSuggestions() { h.hidden++ }

func (h *fakeHost) Commit(text string, caret int) {
	h.text, h.caret = text, caret
	h.commits = append(h.commits, text)
	h.carets = append(h.carets, caret)
}

func (h *fakeHost) set(text string, caret int) {
	h.text, h.caret = text, caret
}

var at = trigger.Trigger{Char: '@'}

func newController(host *fakeHost, triggers ...trigger.Trigger) *Controller {
	return New(host, Options{Triggers: triggers})
}

func TestController_StartsIdle(t *testing.T) {
	c := newController(&fakeHost{}, at)

	assert.Equal(t, Idle, c.State().Phase)
	assert.False(t, c.IsOpen())
}

func TestController_UpdateOpensOnMatch(t *testing.T) {
	host := &fakeHost{surface: &geometry.TextBox{Value: "hello @al", X: 2, Y: 3}}
	host.set("hello @al", 9)
	c := newController(host, at)

	c.Update()

	require.True(t, c.IsOpen())
	state := c.State()
	assert.Equal(t, trigger.Event{Trigger: at, Query: "al"}, state.Event)
	assert.Equal(t, 7, state.Anchor)
	assert.Equal(t, 9, state.Caret)

	// the popup sits under the "@" at index 6
	assert.Equal(t, geometry.Coordinates{Top: 4, Left: 8}, state.Coordinates)
	assert.Equal(t, []geometry.Coordinates{{Top: 4, Left: 8}}, host.placed)
	assert.Equal(t, []trigger.Event{{Trigger: at, Query: "al"}}, host.shown)
}

func TestController_NilSurfacePlacesAtZero(t *testing.T) {
	host := &fakeHost{}
	host.set("@bo", 3)
	c := newController(host, at)

	c.Update()

	require.True(t, c.IsOpen())
	assert.Equal(t, geometry.Coordinates{}, c.State().Coordinates)
}

func TestController_TriggerAtStart(t *testing.T) {
	host := &fakeHost{surface: &geometry.TextBox{Value: "@"}}
	host.set("@", 1)
	c := newController(host, at)

	c.Update()

	require.True(t, c.IsOpen())
	assert.Equal(t, 1, c.State().Anchor)
	assert.Equal(t, "", c.State().Event.Query)
	assert.Equal(t, geometry.Coordinates{Top: 1, Left: 0}, c.State().Coordinates)
}

func TestController_UpdateClosesWithoutMatch(t *testing.T) {
	host := &fakeHost{}
	host.set("hello @al", 9)
	c := newController(host, at)
	c.Update()
	require.True(t, c.IsOpen())

	host.set("hello @al ", 10)
	c.Update()

	assert.Equal(t, Idle, c.State().Phase)
	assert.Equal(t, 1, host.hidden)
}

func TestController_IdleUpdateDoesNotHide(t *testing.T) {
	host := &fakeHost{}
	host.set("plain text", 10)
	c := newController(host, at)

	c.Update()
	c.Update()

	assert.Equal(t, Idle, c.State().Phase)
	assert.Zero(t, host.hidden)
	assert.Empty(t, host.shown)
}

func TestController_UpdateRecomputesQuery(t *testing.T) {
	host := &fakeHost{}
	c := newController(host, at)

	host.set("/cc @a", 6)
	c.Update()
	assert.Equal(t, "a", c.State().Event.Query)

	host.set("/cc @a @bob", 11)
	c.Update()
	assert.Equal(t, "bob", c.State().Event.Query)
	assert.Equal(t, 8, c.State().Anchor)
	assert.Len(t, host.shown, 2)
}

func TestController_Accept(t *testing.T) {
	host := &fakeHost{}
	host.set("hello @al", 9)
	c := newController(host, at)
	c.Update()

	ok := c.Accept(suggestion.Plain("alice"))

	require.True(t, ok)
	assert.Equal(t, "hello @alice", host.text)
	assert.Equal(t, 12, host.caret)
	assert.Equal(t, Idle, c.State().Phase)
	assert.Equal(t, 1, host.hidden)
}

func TestController_AcceptKeepsTextAfterCaret(t *testing.T) {
	host := &fakeHost{}
	host.set("ping @bo today", 8)
	c := newController(host, at)
	c.Update()

	require.True(t, c.Accept(suggestion.Suggestion{Value: "bob", Key: "user-2"}))
	assert.Equal(t, "ping @bob today", host.text)
	assert.Equal(t, 9, host.caret)
}

func TestController_AcceptUsesLiveCaret(t *testing.T) {
	host := &fakeHost{}
	host.set("hello @al", 9)
	c := newController(host, at)
	c.Update()

	// the host edited the text without notifying the controller
	host.set("hello @ali", 10)
	require.True(t, c.Accept(suggestion.Plain("alice")))

	assert.Equal(t, "hello @alice", host.text)
	assert.Equal(t, 12, host.caret)
}

func TestController_AcceptClampsStaleAnchor(t *testing.T) {
	host := &fakeHost{}
	host.set("hello @al", 9)
	c := newController(host, at)
	c.Update()

	host.set("hi", 2)
	require.True(t, c.Accept(suggestion.Plain("x")))

	assert.Equal(t, "hix", host.text)
	assert.Equal(t, 3, host.caret)
}

func TestController_AcceptWhenIdle(t *testing.T) {
	host := &fakeHost{}
	host.set("nothing", 7)
	c := newController(host, at)

	assert.False(t, c.Accept(suggestion.Plain("x")))
	assert.Empty(t, host.commits)
}

func TestController_AcceptUnicode(t *testing.T) {
	host := &fakeHost{}
	host.set("h\u00e9llo :sm", 9)
	c := newController(host, trigger.Trigger{Char: ':'})
	c.Update()

	require.True(t, c.Accept(suggestion.Plain("smile😀")))
	assert.Equal(t, "h\u00e9llo :smile😀", host.text)
	assert.Equal(t, 13, host.caret)
}

func TestController_DismissAndBlur(t *testing.T) {
	host := &fakeHost{}
	host.set("@a", 2)
	c := newController(host, at)

	c.Update()
	c.Dismiss()
	assert.Equal(t, Idle, c.State().Phase)
	assert.Equal(t, 1, host.hidden)

	c.Update()
	c.Blur()
	assert.Equal(t, Idle, c.State().Phase)
	assert.Equal(t, 2, host.hidden)

	c.Blur()
	assert.Equal(t, 2, host.hidden, "closing an idle controller is a no-op")
}

func TestController_SetTriggersReevaluates(t *testing.T) {
	host := &fakeHost{}
	host.set("#road map", 9)
	c := newController(host, at)

	c.Update()
	assert.False(t, c.IsOpen())

	hash := trigger.Trigger{Char: '#', MultiWord: true}
	c.SetTriggers([]trigger.Trigger{hash})

	require.True(t, c.IsOpen())
	assert.Equal(t, "road map", c.State().Event.Query)
	assert.Equal(t, []trigger.Trigger{hash}, c.Triggers())
}

func TestController_TriggersAreCopied(t *testing.T) {
	triggers := []trigger.Trigger{at}
	c := newController(&fakeHost{}, triggers...)

	triggers[0] = trigger.Trigger{Char: '!'}
	assert.Equal(t, []trigger.Trigger{at}, c.Triggers())
}

func TestController_LogsTransitions(t *testing.T) {
	buf := &bytes.Buffer{}
	host := &fakeHost{}
	host.set("@al", 3)
	c := New(host, Options{Triggers: []trigger.Trigger{at}, Logger: logger.New("debug", buf)})

	c.Update()
	c.Dismiss()

	output := buf.String()
	assert.Contains(t, output, "Suggestions open")
	assert.Contains(t, output, "Suggestions closed")
	assert.Contains(t, output, "autocomplete")
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "matching", Matching.String())
	assert.Equal(t, "open", Open.String())
	assert.Equal(t, "phase(9)", Phase(9).String())
}
