package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	env.importClaude()
	env.importGemini()

	out := env.run("stats")
	env.contains(out, "Total entries: 3")
	env.contains(out, "claude")
	env.contains(out, "gemini")
}

func TestStats_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.importClaude()

	out := env.run("stats", "-o", "json")
	var st struct {
		Total    int64            `json:"total"`
		PerAgent map[string]int64 `json:"per_agent"`
		Oldest   string           `json:"oldest"`
		Newest   string           `json:"newest"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.EqualValues(t, 2, st.Total)
	assert.EqualValues(t, 2, st.PerAgent["claude"])
	assert.Equal(t, "2026-01-05 10:00:00", st.Oldest)
	assert.Equal(t, "2026-01-06 10:00:00", st.Newest)
}
