package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/inlinecomplete/internal/geometry"
	"github.com/NikitaCOEUR/inlinecomplete/internal/suggestion"
	"github.com/NikitaCOEUR/inlinecomplete/internal/trigger"
)

func TestBuffer_NilBoxIsNilSurface(t *testing.T) {
	b := &Buffer{}
	assert.Nil(t, b.Surface())
}

func TestBuffer_SurfaceFollowsText(t *testing.T) {
	b := &Buffer{Text: "@bo", Caret: 3, Box: &geometry.TextBox{Value: "stale", Multi: true}}

	s := b.Surface()
	require.NotNil(t, s)
	assert.Equal(t, "@bo", b.Box.Value)
}

func TestBuffer_DrivesController(t *testing.T) {
	b := &Buffer{Text: "ping @bo now", Caret: 8, Box: &geometry.TextBox{Width: 40, Multi: true, X: 1, Y: 1}}
	c := New(b, Options{Triggers: []trigger.Trigger{at}})

	c.Update()
	require.True(t, b.Shown)
	assert.Equal(t, "bo", b.Event.Query)
	assert.Equal(t, geometry.Coordinates{Top: 2, Left: 6}, b.Placed)

	require.True(t, c.Accept(suggestion.Plain("bob")))
	assert.Equal(t, "ping @bob now", b.Text)
	assert.Equal(t, 9, b.Caret)
	assert.Equal(t, 1, b.Commits)
	assert.False(t, b.Shown)
	assert.Equal(t, trigger.Event{}, b.Event)
	assert.Equal(t, "ping @bob now", b.Box.Value)
}
