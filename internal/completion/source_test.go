package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/inlinecomplete/internal/suggestion"
	"github.com/NikitaCOEUR/inlinecomplete/internal/trigger"
)

func TestStaticSource(t *testing.T) {
	items := []suggestion.Suggestion{
		{Value: "bob"},
		{Value: "Alice", Key: "user-1"},
		{Value: "alan"},
	}
	src := NewStaticSource('@', items)

	assert.Equal(t, "static:@", src.Name())
	assert.True(t, src.Supports(trigger.Trigger{Char: '@'}))
	assert.True(t, src.Supports(trigger.Trigger{Char: '@', MultiWord: true}))
	assert.False(t, src.Supports(trigger.Trigger{Char: '#'}))

	tests := []struct {
		name  string
		query string
		want  []suggestion.Suggestion
	}{
		{name: "empty query keeps order", query: "", want: items},
		{name: "case insensitive", query: "AL", want: []suggestion.Suggestion{{Value: "Alice", Key: "user-1"}, {Value: "alan"}}},
		{name: "no match", query: "zed", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := src.Complete(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStaticSource_CopiesItems(t *testing.T) {
	items := plain("alice")
	src := NewStaticSource('@', items)

	items[0] = suggestion.Plain("mallory")

	got, err := src.Complete("")
	require.NoError(t, err)
	assert.Equal(t, plain("alice"), got)
}

func TestTrieSource(t *testing.T) {
	src := NewTrieSource(':', plain("smile", "smirk", "sad", "Smile"))

	assert.Equal(t, "trie::", src.Name())
	assert.Equal(t, 4, src.Len())
	assert.True(t, src.Supports(trigger.Trigger{Char: ':'}))
	assert.False(t, src.Supports(trigger.Trigger{Char: '@'}))

	tests := []struct {
		name  string
		query string
		want  []suggestion.Suggestion
	}{
		{name: "empty query returns everything sorted", query: "", want: plain("sad", "smile", "Smile", "smirk")},
		{name: "prefix", query: "smi", want: plain("smile", "Smile", "smirk")},
		{name: "uppercase query", query: "SA", want: plain("sad")},
		{name: "exact word", query: "smirk", want: plain("smirk")},
		{name: "no match", query: "x", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := src.Complete(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrieSource_Add(t *testing.T) {
	src := NewTrieSource('#', nil)
	assert.Equal(t, 0, src.Len())

	src.Add(suggestion.Suggestion{Value: "road map", Key: "issue-7"})

	got, err := src.Complete("road ")
	require.NoError(t, err)
	assert.Equal(t, []suggestion.Suggestion{{Value: "road map", Key: "issue-7"}}, got)
}
