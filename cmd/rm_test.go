package cmd

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryID(t *testing.T, item map[string]any) string {
	t.Helper()
	id, ok := item["id"].(float64)
	require.True(t, ok, "entry id missing")
	return fmt.Sprintf("%d", int64(id))
}

func TestRm(t *testing.T) {
	env := newTestEnv(t)
	env.importClaude()

	items := lsJSON(t, env)
	require.Len(t, items, 2)

	out := env.run("rm", entryID(t, items[0]))
	env.contains(out, "Deleted 1 entries")

	assert.Len(t, lsJSON(t, env), 1)
}

func TestRm_Multiple(t *testing.T) {
	env := newTestEnv(t)
	env.importClaude()

	items := lsJSON(t, env)
	// A missing id is skipped, not an error.
	out := env.run("rm", entryID(t, items[0]), entryID(t, items[1]), "999999")
	env.contains(out, "Deleted 2 entries")
}

func TestRm_InvalidID(t *testing.T) {
	env := newTestEnv(t)
	env.importClaude()

	out, err := env.runErr("rm", "zero")
	assert.Error(t, err)
	env.contains(out, "invalid id")
}

func TestReset(t *testing.T) {
	env := newTestEnv(t)
	env.importClaude()
	env.importGemini()

	out := env.run("reset", "claude", "--force")
	env.contains(out, "Deleted 2 claude entries")

	items := lsJSON(t, env)
	require.Len(t, items, 1)
	assert.Equal(t, "gemini", items[0]["agent"])
}

func TestReset_Confirmation(t *testing.T) {
	env := newTestEnv(t)
	env.importClaude()

	out := env.runStdin("n\n", "reset", "claude")
	env.contains(out, "Cancelled")
	assert.Len(t, lsJSON(t, env), 2)

	out = env.runStdin("y\n", "reset", "claude")
	env.contains(out, "Deleted 2 claude entries")
}

func TestReset_InvalidAgent(t *testing.T) {
	env := newTestEnv(t)
	env.importClaude()

	_, err := env.runErr("reset", "mistral", "--force")
	assert.Error(t, err)
}

func TestRm_JSONOutput(t *testing.T) {
	env := newTestEnv(t)
	env.importClaude()

	items := lsJSON(t, env)
	out := env.run("rm", entryID(t, items[0]), "-o", "json")

	var res map[string]int64
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.EqualValues(t, 1, res["deleted"])
}
