package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_Stdout(t *testing.T) {
	env := newTestEnv(t)
	env.importClaude()

	out := env.run("export")
	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	assert.Len(t, items, 2)
}

func TestExport_ToFile(t *testing.T) {
	env := newTestEnv(t)
	env.importClaude()

	out := env.run("export", "backup")
	env.contains(out, "Exported 2 entries")

	data, err := os.ReadFile(filepath.Join(env.dir, "backup.json"))
	require.NoError(t, err)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(data, &items))
	assert.Len(t, items, 2)

	// Existing file is protected unless forced.
	out, err = env.runErr("export", "backup")
	assert.Error(t, err)
	env.contains(out, "file exists")

	env.run("export", "backup", "--force")
}

func TestExport_Filters(t *testing.T) {
	env := newTestEnv(t)
	env.importClaude()
	env.importGemini()

	out := env.run("export", "-a", "gemini")
	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "gemini", items[0]["agent"])

	out = env.run("export", "-q", "praze")
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Možná otázka o Praze", items[0]["question"])
}
