package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/slashery/internal/storage"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSchema(t *testing.T) {
	out, err := execute(t, "", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "greet"`)
	assert.Contains(t, out, `"name": "Inspect"`)
	assert.Contains(t, out, `"name": "d20"`)
}

func TestSchemaSingleCommand(t *testing.T) {
	out, err := execute(t, "", "schema", "roll")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "roll"`)
	assert.NotContains(t, out, `"name": "greet"`)

	_, err = execute(t, "", "schema", "dance")
	assert.EqualError(t, err, `unknown command "dance"`)
}

func TestDispatch(t *testing.T) {
	out, err := execute(t, `{"name":"roll","options":[{"name":"sides","type":4,"value":6},{"name":"count","type":4,"value":2}]}`, "dispatch")
	require.NoError(t, err)
	assert.Contains(t, out, `"command": "roll"`)
	assert.Contains(t, out, `"Sides": 6`)
	assert.Contains(t, out, `"Count": 2`)
}

func TestDispatchDiagnostic(t *testing.T) {
	out, err := execute(t, `{"name":"greet","options":[{"name":"who","type":4,"value":1}]}`, "dispatch", "-")
	require.Error(t, err)
	assert.Contains(t, out, "Option `who` has the wrong type: expected String, got Integer.")
}

func TestDispatchBadPayload(t *testing.T) {
	_, err := execute(t, `not json`, "dispatch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse payload")
}

func TestComponent(t *testing.T) {
	out, err := execute(t, "", "component", "yes")
	require.NoError(t, err)
	assert.Equal(t, "Confirm\n", out)

	_, err = execute(t, "", "component", "nope")
	assert.EqualError(t, err, `unknown component "nope"`)
}

func TestHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	store, err := storage.New(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, store.AppendInteraction("g1", storage.InteractionRecord{
		Name:     "greet",
		UserID:   "u1",
		Datetime: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}))
	require.NoError(t, store.Close())

	out, err := execute(t, "", "history", "g1", "--storage", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "greet"`)
	assert.Contains(t, out, `"user_id": "u1"`)
}
