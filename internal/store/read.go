// read.go implements listing and single-entry retrieval.
//
// Separated from search.go because plain listings run off the created_at
// index while search goes through the FTS5 virtual table with its own query
// semantics.
//
// Design: ordering is always created_at with id as tie-breaker. SQLite sorts
// NULL below every value, so entries whose timestamp failed to parse land at
// the oldest end in both directions, which is the behaviour callers expect
// from "unknown age".

package store

import (
	"context"
	"fmt"
	"strings"
)

// List returns entries ordered by creation time. Limit is clamped to
// MaxListLimit and offset to zero; an unset limit pages at the maximum.
func (s *SQLiteStore) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	limit := clampLimit(opts.Limit, MaxListLimit)
	offset := clampOffset(opts.Offset)

	var b strings.Builder
	b.WriteString(`SELECT ` + entryColumns + ` FROM entries`)

	var args []any
	if opts.Agent != "" {
		b.WriteString(` WHERE agent = ?`)
		args = append(args, opts.Agent)
	}

	b.WriteString(orderClause(opts.Ascending))
	b.WriteString(` LIMIT ? OFFSET ?`)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	return s.scanEntries(rows)
}

// ByID retrieves a single entry. Returns ErrNotFound if absent.
func (s *SQLiteStore) ByID(ctx context.Context, id int64) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	return s.scanEntryRow(row)
}

// Count returns the entry count, optionally scoped to one agent.
func (s *SQLiteStore) Count(ctx context.Context, agent string) (int64, error) {
	q := `SELECT COUNT(*) FROM entries`
	var args []any
	if agent != "" {
		q += ` WHERE agent = ?`
		args = append(args, agent)
	}

	var n int64
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// Export returns the full unpaginated entry set. A non-empty query applies
// search semantics (normalized prefix terms); otherwise only the agent
// filter applies.
func (s *SQLiteStore) Export(ctx context.Context, query, agent string) ([]Entry, error) {
	if strings.TrimSpace(query) != "" {
		return s.searchUnpaginated(ctx, query, agent)
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + entryColumns + ` FROM entries`)

	var args []any
	if agent != "" {
		b.WriteString(` WHERE agent = ?`)
		args = append(args, agent)
	}
	b.WriteString(orderClause(false))

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("export entries: %w", err)
	}
	defer rows.Close()

	return s.scanEntries(rows)
}

// orderClause returns the shared ordering: creation time with id as the
// tie-breaker, both inverted together for ascending requests.
func orderClause(ascending bool) string {
	if ascending {
		return ` ORDER BY created_at ASC, id ASC`
	}
	return ` ORDER BY created_at DESC, id DESC`
}

func clampLimit(limit, max int) int {
	if limit <= 0 || limit > max {
		return max
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
