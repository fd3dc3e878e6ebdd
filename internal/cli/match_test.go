package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/inlinecomplete/internal/derrors"
)

func TestMatch_Format(t *testing.T) {
	isolate(t)

	var out bytes.Buffer
	err := Match(context.Background(), MatchParams{
		Text:   "hi @al",
		Caret:  -1,
		Format: "{{ .Event.Query }}|{{ range .Suggestions }}{{ .Value }},{{ end }}|{{ .Source }}|{{ .Absolute.Top }},{{ .Absolute.Left }}",
		Out:    &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "al|albert,alice,|trie:@|1,3\n", out.String())
}

func TestMatch_FormatWithSprig(t *testing.T) {
	isolate(t)

	var out bytes.Buffer
	err := Match(context.Background(), MatchParams{
		Text:   "#road m",
		Caret:  -1,
		Format: `{{ .Event.Query | upper }} {{ .Matched | ternary "yes" "no" }}`,
		Out:    &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "ROAD M yes\n", out.String())
}

func TestMatch_Rendered(t *testing.T) {
	isolate(t)

	var out bytes.Buffer
	err := Match(context.Background(), MatchParams{Text: "ping @bo", Caret: -1, Out: &out})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Suggestions open")
	assert.Contains(t, out.String(), "bob")
	assert.Contains(t, out.String(), "built-in defaults")
}

func TestMatch_NoQuery(t *testing.T) {
	isolate(t)

	var out bytes.Buffer
	err := Match(context.Background(), MatchParams{Text: "mail@host", Caret: -1, Out: &out, Format: "{{ .Matched }}"})
	require.NoError(t, err)
	assert.Equal(t, "false\n", out.String())
}

func TestMatch_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `source: prefix
triggers:
  - char: "@"
suggestions:
  "@": [zoe, zack, amy]
`)

	var out bytes.Buffer
	err := Match(context.Background(), MatchParams{
		ConfigPath: path,
		Text:       "@z",
		Caret:      -1,
		Format:     "{{ range .Suggestions }}{{ .Value }} {{ end }}{{ .Source }}",
		Out:        &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "zoe zack static:@\n", out.String())
}

func TestMatch_MissingConfig(t *testing.T) {
	isolate(t)

	err := Match(context.Background(), MatchParams{ConfigPath: "missing.yml", Text: "@"})
	var nf *derrors.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestMatch_BadTemplate(t *testing.T) {
	isolate(t)

	err := Match(context.Background(), MatchParams{Text: "@", Caret: -1, Format: "{{ .Nope", Out: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format template")
}
