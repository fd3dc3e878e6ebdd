package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/inlinecomplete/internal/config"
	"github.com/NikitaCOEUR/inlinecomplete/internal/geometry"
	"github.com/NikitaCOEUR/inlinecomplete/internal/suggestion"
)

func newModel(t *testing.T, text string) *Model {
	t.Helper()
	m, err := New(Options{Text: text})
	require.NoError(t, err)
	run(m, m.Init())
	return m
}

// run feeds command results back into the model until none are left
func run(m *Model, cmd tea.Cmd) {
	for cmd != nil {
		_, cmd = m.Update(cmd())
	}
}

func press(m *Model, k tea.KeyType) {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	run(m, cmd)
}

func typeText(m *Model, s string) {
	for _, r := range s {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{r}}
		}
		_, cmd := m.Update(msg)
		run(m, cmd)
	}
}

func values(items []suggestion.Suggestion) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.Value
	}
	return out
}

func TestModel_TypingOpensPopup(t *testing.T) {
	m := newModel(t, "")
	typeText(m, "hi @al")

	require.True(t, m.ctrl.IsOpen())
	assert.Equal(t, "al", m.event.Query)
	assert.Equal(t, []string{"albert", "alice"}, values(m.items))
	// under the "@" at index 3, inside the box origin
	assert.Equal(t, geometry.Coordinates{Top: 3, Left: 5}, m.at)
}

func TestModel_InitialTextMatches(t *testing.T) {
	m := newModel(t, ":sm")

	require.True(t, m.ctrl.IsOpen())
	assert.Equal(t, []string{"smile", "smirk"}, values(m.items))
}

func TestModel_SelectAndAccept(t *testing.T) {
	m := newModel(t, "")
	typeText(m, "hi @al")

	press(m, tea.KeyDown)
	assert.Equal(t, 1, m.selected)

	press(m, tea.KeyTab)
	text, caret := m.Text()
	assert.Equal(t, "hi @alice", text)
	assert.Equal(t, 9, caret)
	assert.False(t, m.ctrl.IsOpen())
	assert.False(t, m.open)
}

func TestModel_SelectionWraps(t *testing.T) {
	m := newModel(t, "@")
	require.Len(t, m.items, 5)

	press(m, tea.KeyUp)
	assert.Equal(t, 4, m.selected)

	press(m, tea.KeyDown)
	assert.Equal(t, 0, m.selected)
}

func TestModel_EscapeDismisses(t *testing.T) {
	m := newModel(t, "")
	typeText(m, "@bo")
	require.True(t, m.ctrl.IsOpen())

	press(m, tea.KeyEsc)
	assert.False(t, m.ctrl.IsOpen())
	assert.False(t, m.open)

	text, _ := m.Text()
	assert.Equal(t, "@bo", text)

	// typing again reopens
	typeText(m, "b")
	assert.True(t, m.ctrl.IsOpen())
	assert.Equal(t, "bob", m.event.Query)
}

func TestModel_EnterAcceptsOrBreaksLine(t *testing.T) {
	m := newModel(t, "")
	typeText(m, "@da")

	press(m, tea.KeyEnter)
	text, _ := m.Text()
	assert.Equal(t, "@dave", text)

	press(m, tea.KeyEnter)
	text, caret := m.Text()
	assert.Equal(t, "@dave\n", text)
	assert.Equal(t, 6, caret)
}

func TestModel_SingleLineIgnoresNewline(t *testing.T) {
	cfg, err := config.LoadBytes([]byte(`
triggers:
  - char: "@"
surface:
  multiline: false
`), "yaml")
	require.NoError(t, err)

	m, err := New(Options{Config: cfg, Text: "one"})
	require.NoError(t, err)

	press(m, tea.KeyEnter)
	text, _ := m.Text()
	assert.Equal(t, "one", text)
}

func TestModel_CaretMovement(t *testing.T) {
	m := newModel(t, "")
	typeText(m, "hi @al")

	press(m, tea.KeyLeft)
	_, caret := m.Text()
	assert.Equal(t, 5, caret)
	require.True(t, m.ctrl.IsOpen())
	assert.Equal(t, "a", m.event.Query)

	press(m, tea.KeyHome)
	_, caret = m.Text()
	assert.Equal(t, 0, caret)
	assert.False(t, m.ctrl.IsOpen())

	press(m, tea.KeyEnd)
	_, caret = m.Text()
	assert.Equal(t, 6, caret)
	assert.True(t, m.ctrl.IsOpen())
}

func TestModel_BackspaceRemovesGrapheme(t *testing.T) {
	m := newModel(t, "ok 👍🏽")

	press(m, tea.KeyBackspace)
	text, caret := m.Text()
	assert.Equal(t, "ok ", text)
	assert.Equal(t, 3, caret)

	press(m, tea.KeyHome)
	press(m, tea.KeyDelete)
	text, caret = m.Text()
	assert.Equal(t, "k ", text)
	assert.Equal(t, 0, caret)
}

func TestModel_StaleSuggestionsIgnored(t *testing.T) {
	m := newModel(t, "")

	_, stale := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("@")})
	require.NotNil(t, stale)
	typeText(m, "b")

	run(m, stale)
	assert.Equal(t, []string{"bob"}, values(m.items))
}

func TestModel_ConfigReload(t *testing.T) {
	m := newModel(t, "")
	typeText(m, "@al")
	require.True(t, m.ctrl.IsOpen())

	cfg, err := config.LoadBytes([]byte("triggers:\n  - char: \"#\"\n    multi_word: true\n"), "yaml")
	require.NoError(t, err)

	_, cmd := m.Update(ConfigMsg{Config: cfg})
	run(m, cmd)
	assert.False(t, m.ctrl.IsOpen())
	assert.Equal(t, "config reloaded", m.status)

	_, cmd = m.Update(ConfigMsg{Err: errors.New("boom")})
	assert.Nil(t, cmd)
	assert.Contains(t, m.status, "config reload failed")
}

func TestModel_Blur(t *testing.T) {
	m := newModel(t, "@a")
	require.True(t, m.ctrl.IsOpen())

	m.Update(tea.BlurMsg{})
	assert.False(t, m.ctrl.IsOpen())
}

func TestModel_WindowSizeClampsWidth(t *testing.T) {
	m := newModel(t, "")

	m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})
	assert.Equal(t, 16, m.box.Width)

	m.Update(tea.WindowSizeMsg{Width: 200, Height: 10})
	assert.Equal(t, 60, m.box.Width)
}

func TestModel_WindowSizeKeepsUnwrappedBox(t *testing.T) {
	cfg := config.Default()
	cfg.Surface.Width = 0

	m, err := New(Options{Text: "hello @al", Config: cfg})
	require.NoError(t, err)
	run(m, m.Init())
	require.True(t, m.ctrl.IsOpen())
	assert.Equal(t, geometry.Coordinates{Top: 3, Left: 8}, m.at)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 0, m.box.Width)
	assert.Equal(t, []string{"hello @al"}, m.box.Rows())
	assert.Equal(t, geometry.Coordinates{Top: 3, Left: 8}, m.at)
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t, "")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, "", m.View())
}

func TestModel_View(t *testing.T) {
	m := newModel(t, "")
	typeText(m, "hi @al")

	view := m.View()
	assert.Contains(t, view, "inlinecomplete demo")
	assert.Contains(t, view, "hi @al")
	assert.Contains(t, view, "albert")
	assert.Contains(t, view, "alice")
	assert.Contains(t, view, "open")
	assert.Contains(t, view, "trie:@")
}

func TestCanvas(t *testing.T) {
	var c canvas
	end := c.put(1, 2, "a界b", defaultStyle())
	assert.Equal(t, 6, end)
	assert.Equal(t, "\n  a界b", c.String())
}
