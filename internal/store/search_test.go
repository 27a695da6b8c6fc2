package store_test

import (
	"context"
	"testing"

	"github.com/jpl-au/chatarc/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"single term", "export", `"export"*`},
		{"multiple terms", "export data", `"export"* "data"*`},
		{"folds diacritics and case", "Možná", `"mozna"*`},
		{"collapses whitespace", "  a   b  ", `"a"* "b"*`},
		{"escapes quotes", `say "hi"`, `"say"* """hi"""*`},
		{"neutralizes operators", "foo OR -bar", `"foo"* "or"* "-bar"*`},
		{"blank", "   ", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.MatchQuery(tt.query))
		})
	}
}

func TestSearch_Prefix(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, testEntry("claude", "The export completed", "done"))
	require.NoError(t, err)

	hits, err := s.Search(ctx, "exp", store.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "The export completed", hits[0].Question)

	// A longer term is a prefix filter, not a fuzzy match.
	hits, err = s.Search(ctx, "expZZZZ", store.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearch_DiacriticInsensitive(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, testEntry("gemini", "Možná to půjde", "snad ano"))
	require.NoError(t, err)

	// Plain ASCII finds the accented original and vice versa.
	for _, q := range []string{"mozna", "MOZNA", "možná", "puj"} {
		hits, err := s.Search(ctx, q, store.SearchOptions{})
		require.NoError(t, err)
		assert.Len(t, hits, 1, "query %q", q)
	}
}

func TestSearch_MatchesAnswer(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, testEntry("claude", "short question", "the answer mentions kubernetes"))
	require.NoError(t, err)

	hits, err := s.Search(ctx, "kuber", store.SearchOptions{})
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestSearch_ImplicitAnd(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, testEntry("claude", "apples and oranges", "a"))
	require.NoError(t, err)
	_, err = s.Insert(ctx, testEntry("claude", "only apples here", "a"))
	require.NoError(t, err)

	hits, err := s.Search(ctx, "apples oranges", store.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "apples and oranges", hits[0].Question)
}

func TestSearch_AgentFilter(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, testEntry("claude", "shared topic", "a"))
	require.NoError(t, err)
	_, err = s.Insert(ctx, testEntry("gemini", "shared topic", "a"))
	require.NoError(t, err)

	hits, err := s.Search(ctx, "shared", store.SearchOptions{Agent: "gemini"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "gemini", hits[0].Agent)
}

func TestSearch_BlankQuery(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, testEntry("claude", "anything", "a"))
	require.NoError(t, err)

	hits, err := s.Search(ctx, "   ", store.SearchOptions{})
	require.NoError(t, err)
	assert.Nil(t, hits)
}

func TestSearch_Ordering(t *testing.T) {
	s := setupStore(t)

	insertAt(t, s, "claude", "topic older", "2026-01-01 08:00:00")
	insertAt(t, s, "claude", "topic newer", "2026-01-05 08:00:00")

	hits, err := s.Search(context.Background(), "topic", store.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "topic newer", hits[0].Question)

	asc, err := s.Search(context.Background(), "topic", store.SearchOptions{Ascending: true})
	require.NoError(t, err)
	require.Len(t, asc, 2)
	assert.Equal(t, "topic older", asc[0].Question)
}

func TestSearch_LimitClamp(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.Insert(ctx, testEntry("claude", "repeated term", "a"))
		require.NoError(t, err)
	}

	hits, err := s.Search(ctx, "repeated", store.SearchOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	hits, err = s.Search(ctx, "repeated", store.SearchOptions{Limit: 10000, Offset: -1})
	require.NoError(t, err)
	assert.Len(t, hits, 3)
}

func TestSearch_QuoteInjection(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, testEntry("claude", `he said "hello" loudly`, "a"))
	require.NoError(t, err)

	// Quotes in input must not produce an FTS5 syntax error.
	hits, err := s.Search(ctx, `"hello"`, store.SearchOptions{})
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}
