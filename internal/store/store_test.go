package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/chatarc/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore creates a temporary SQLite store for testing.
func setupStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err)

	require.NoError(t, s.Init(context.Background()))
	t.Cleanup(func() { s.Close() })

	return s
}

func strPtr(s string) *string { return &s }

// testEntry returns an Entry with sensible defaults, overridable per test.
func testEntry(agent, question, answer string) store.Entry {
	return store.Entry{
		Agent:        agent,
		SourceFile:   "source/" + agent + ".json",
		Question:     question,
		CreatedAtRaw: "2026-01-12T10:00:00Z",
		CreatedAt:    strPtr("2026-01-12 10:00:00"),
		AnswerPlain:  answer,
		AnswerHTML:   answer,
	}
}

// --- Insert and read back ---

func TestStore_InsertAndByID(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	e := testEntry("claude", "How do I export data?", "Use the export command.")
	e.AttachmentsRaw = strPtr(`{"files":[]}`)
	e.ContentHash = strPtr("hash-1")

	id, err := s.Insert(ctx, e)
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := s.ByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "claude", got.Agent)
	assert.Equal(t, "How do I export data?", got.Question)
	assert.Equal(t, "Use the export command.", got.AnswerPlain)
	require.NotNil(t, got.CreatedAt)
	assert.Equal(t, "2026-01-12 10:00:00", *got.CreatedAt)
	require.NotNil(t, got.AttachmentsRaw)
	assert.NotEmpty(t, got.ImportedAt)
}

func TestStore_ByID_NotFound(t *testing.T) {
	s := setupStore(t)
	_, err := s.ByID(context.Background(), 12345)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_DuplicateContentHash(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	e := testEntry("claude", "q", "a")
	e.ContentHash = strPtr("same-hash")

	_, err := s.Insert(ctx, e)
	require.NoError(t, err)

	_, err = s.Insert(ctx, e)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	n, err := s.Count(ctx, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

// --- Index consistency (FTS mirror stays 1:1 with entries) ---

func ftsCount(t *testing.T, s *store.SQLiteStore) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM entries_fts`).Scan(&n))
	return n
}

func TestStore_IndexConsistency(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	var ids []int64
	for _, q := range []string{"first question", "second question", "third question"} {
		id, err := s.Insert(ctx, testEntry("gemini", q, "answer"))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	assert.EqualValues(t, 3, ftsCount(t, s))

	// Normalized index columns match Fold of the source fields.
	var norm string
	require.NoError(t, s.DB().QueryRow(
		`SELECT question_norm FROM entries WHERE id = ?`, ids[0]).Scan(&norm))
	assert.Equal(t, "first question", norm)

	_, err := s.Delete(ctx, ids[1])
	require.NoError(t, err)
	assert.EqualValues(t, 2, ftsCount(t, s))

	_, err = s.DeleteMany(ctx, []int64{ids[0], ids[2]})
	require.NoError(t, err)
	assert.EqualValues(t, 0, ftsCount(t, s))
}

func TestStore_IndexConsistency_Diacritics(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	id, err := s.Insert(ctx, testEntry("claude", "Možná otázka", "Žlutá odpověď"))
	require.NoError(t, err)

	var qNorm, aNorm string
	require.NoError(t, s.DB().QueryRow(
		`SELECT question_norm, answer_plain_norm FROM entries WHERE id = ?`, id).
		Scan(&qNorm, &aNorm))
	assert.Equal(t, "mozna otazka", qNorm)
	assert.Equal(t, "zluta odpoved", aNorm)
}

// --- Delete semantics ---

func TestStore_Delete(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	id, err := s.Insert(ctx, testEntry("claude", "q", "a"))
	require.NoError(t, err)

	n, err := s.Delete(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.Delete(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestStore_DeleteMany_MissingIDs(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	id1, err := s.Insert(ctx, testEntry("claude", "one", "a"))
	require.NoError(t, err)
	id2, err := s.Insert(ctx, testEntry("claude", "two", "a"))
	require.NoError(t, err)

	// A missing id is not an error; the count reports actual deletions.
	n, err := s.DeleteMany(ctx, []int64{id1, id2, 999999})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestStore_DeleteMany_Empty(t *testing.T) {
	s := setupStore(t)
	_, err := s.DeleteMany(context.Background(), nil)
	assert.ErrorIs(t, err, store.ErrNoIDs)
}

func TestStore_ResetAgent(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.Insert(ctx, testEntry("gemini", "gemini question", "a"))
		require.NoError(t, err)
	}
	_, err := s.Insert(ctx, testEntry("claude", "claude question", "a"))
	require.NoError(t, err)

	n, err := s.ResetAgent(ctx, "gemini")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	left, err := s.Count(ctx, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, left)
	assert.EqualValues(t, 1, ftsCount(t, s))
}

// --- Listing ---

func insertAt(t *testing.T, s *store.SQLiteStore, agent, question, createdAt string) int64 {
	t.Helper()
	e := testEntry(agent, question, "answer")
	if createdAt == "" {
		e.CreatedAt = nil
	} else {
		e.CreatedAt = &createdAt
	}
	id, err := s.Insert(context.Background(), e)
	require.NoError(t, err)
	return id
}

func TestStore_List_OrderAndFilter(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	insertAt(t, s, "claude", "oldest", "2026-01-01 08:00:00")
	insertAt(t, s, "gemini", "middle", "2026-01-02 08:00:00")
	insertAt(t, s, "claude", "newest", "2026-01-03 08:00:00")
	insertAt(t, s, "claude", "undated", "")

	entries, err := s.List(ctx, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "newest", entries[0].Question)
	// NULL timestamps sort as oldest.
	assert.Equal(t, "undated", entries[3].Question)

	asc, err := s.List(ctx, store.ListOptions{Ascending: true})
	require.NoError(t, err)
	assert.Equal(t, "undated", asc[0].Question)
	assert.Equal(t, "newest", asc[3].Question)

	claude, err := s.List(ctx, store.ListOptions{Agent: "claude"})
	require.NoError(t, err)
	assert.Len(t, claude, 3)
}

func TestStore_List_Pagination(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		insertAt(t, s, "claude", "q", "2026-01-01 08:00:00")
	}

	page, err := s.List(ctx, store.ListOptions{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	// Oversized limit and negative offset are clamped, not rejected.
	all, err := s.List(ctx, store.ListOptions{Limit: 10000, Offset: -5})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

// --- Export ---

func TestStore_Export(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	insertAt(t, s, "claude", "the export completed", "2026-01-01 08:00:00")
	insertAt(t, s, "gemini", "something else", "2026-01-02 08:00:00")

	all, err := s.Export(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byAgent, err := s.Export(ctx, "", "claude")
	require.NoError(t, err)
	require.Len(t, byAgent, 1)
	assert.Equal(t, "the export completed", byAgent[0].Question)

	byQuery, err := s.Export(ctx, "export", "")
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, "claude", byQuery[0].Agent)
}

// --- Stats ---

func TestStore_Stats(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	insertAt(t, s, "claude", "a", "2026-01-01 08:00:00")
	insertAt(t, s, "claude", "b", "2026-01-03 08:00:00")
	insertAt(t, s, "gemini", "c", "2026-01-02 08:00:00")

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, st.Total)
	assert.EqualValues(t, 2, st.PerAgent["claude"])
	assert.EqualValues(t, 1, st.PerAgent["gemini"])
	assert.Equal(t, "2026-01-01 08:00:00", st.Oldest)
	assert.Equal(t, "2026-01-03 08:00:00", st.Newest)
}

// Ensure WAL side files land in the temp dir, not the working directory.
func TestStore_OpenCreatesFileAtPath(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "archive.db")

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Init(context.Background()))
	require.NoError(t, s.Close())

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}
