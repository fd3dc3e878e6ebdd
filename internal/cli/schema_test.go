package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_Stdout(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Schema(&out, ""))

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &schema))
	assert.Contains(t, schema, "$schema")
}

func TestSchema_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")

	var out bytes.Buffer
	require.NoError(t, Schema(&out, path))
	assert.Contains(t, out.String(), "JSON Schema written to: "+path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(content))
}

func TestSchema_BadPath(t *testing.T) {
	err := Schema(&bytes.Buffer{}, filepath.Join(t.TempDir(), "missing", "schema.json"))
	assert.Error(t, err)
}
