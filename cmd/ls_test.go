package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lsJSON runs "ls -o json" with extra args and decodes the entry list.
func lsJSON(t *testing.T, env *testEnv, args ...string) []map[string]any {
	t.Helper()
	out := env.run(append([]string{"ls", "-o", "json"}, args...)...)
	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	return items
}

func TestLs(t *testing.T) {
	env := newTestEnv(t)
	env.importClaude()

	out := env.run("ls")
	env.contains(out, "QUESTION")
	env.contains(out, "How do I deploy kubernetes?")
	env.contains(out, "Možná otázka o Praze")
}

func TestLs_Empty(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("ls")
	env.contains(out, "No entries")
}

func TestLs_JSONAndOrder(t *testing.T) {
	env := newTestEnv(t)
	env.importClaude()

	items := lsJSON(t, env)
	require.Len(t, items, 2)
	// Newest first by default.
	assert.Equal(t, "Možná otázka o Praze", items[0]["question"])

	items = lsJSON(t, env, "--asc")
	assert.Equal(t, "How do I deploy kubernetes?", items[0]["question"])

	items = lsJSON(t, env, "--limit", "1")
	assert.Len(t, items, 1)
}

func TestLs_AgentFilter(t *testing.T) {
	env := newTestEnv(t)
	env.importClaude()
	env.importGemini()

	items := lsJSON(t, env, "-a", "gemini")
	require.Len(t, items, 1)
	assert.Equal(t, "gemini", items[0]["agent"])

	_, err := env.runErr("ls", "-a", "mistral")
	assert.Error(t, err)
}
