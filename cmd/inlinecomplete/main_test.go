package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_Commands(t *testing.T) {
	app := newApp()

	var names []string
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.ElementsMatch(t, []string{"match", "accept", "apply", "demo", "init", "validate", "schema"}, names)
}

func TestNewApp_MissingText(t *testing.T) {
	for _, name := range []string{"match", "accept"} {
		t.Run(name, func(t *testing.T) {
			err := newApp().Run(context.Background(), []string{"inlinecomplete", name})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "text argument required")
		})
	}
}

func TestNewApp_ApplyArgs(t *testing.T) {
	err := newApp().Run(context.Background(), []string{"inlinecomplete", "apply", "only-text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text and replacement arguments required")
}

func TestNewApp_StrictApplyFails(t *testing.T) {
	err := newApp().Run(context.Background(), []string{
		"inlinecomplete", "apply", "--start", "1", "--end", "9", "--strict", "--plain", "abc", "Z",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid replacement range")
}

func TestNewApp_SchemaToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")

	err := newApp().Run(context.Background(), []string{"inlinecomplete", "schema", "-o", path})
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNewApp_ValidateExplicitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".inlinecomplete.yml")
	require.NoError(t, os.WriteFile(path, []byte("triggers:\n  - char: \"@\"\n"), 0644))

	err := newApp().Run(context.Background(), []string{"inlinecomplete", "--config", path, "validate"})
	assert.NoError(t, err)
}
