// search.go implements full-text search using SQLite's FTS5 extension.
//
// Separated from read.go because FTS5 has fundamentally different query
// semantics. Listings use plain column filters; search tokenises the user
// query, normalizes each term, and matches it as a prefix against the
// diacritic-stripped index columns.
//
// Design: terms are quoted before the prefix star so user input containing
// FTS5 operators (-, OR, parentheses) can never change the query structure.
// Joining with spaces gives implicit AND semantics - a row matches only if
// every term prefix appears somewhere in its normalized question or answer.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpl-au/chatarc/internal/normalize"
)

// MatchQuery turns free-text user input into an FTS5 MATCH expression:
// whitespace-split terms, each folded and suffixed with a prefix wildcard,
// joined with implicit AND. Returns "" for blank input.
func MatchQuery(query string) string {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return ""
	}
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		folded := strings.ReplaceAll(normalize.Fold(t), `"`, `""`)
		parts = append(parts, `"`+folded+`"*`)
	}
	return strings.Join(parts, " ")
}

// Search returns entries whose normalized question or answer matches every
// query term as a prefix. A blank query returns no results without touching
// the database. Limit is clamped to MaxSearchLimit, offset to zero.
func (s *SQLiteStore) Search(ctx context.Context, query string, opts SearchOptions) ([]Entry, error) {
	match := MatchQuery(query)
	if match == "" {
		return nil, nil
	}

	limit := clampLimit(opts.Limit, MaxSearchLimit)
	offset := clampOffset(opts.Offset)

	var b strings.Builder
	b.WriteString(`SELECT ` + entryColumnsPrefixed + `
		FROM entries_fts f
		JOIN entries e ON e.id = f.rowid
		WHERE entries_fts MATCH ?`)

	args := []any{match}
	if opts.Agent != "" {
		b.WriteString(` AND e.agent = ?`)
		args = append(args, opts.Agent)
	}

	b.WriteString(searchOrderClause(opts.Ascending))
	b.WriteString(` LIMIT ? OFFSET ?`)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search entries: %w", err)
	}
	defer rows.Close()

	return s.scanEntries(rows)
}

// searchUnpaginated backs Export when a query filter is present.
func (s *SQLiteStore) searchUnpaginated(ctx context.Context, query, agent string) ([]Entry, error) {
	match := MatchQuery(query)
	if match == "" {
		return nil, nil
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + entryColumnsPrefixed + `
		FROM entries_fts f
		JOIN entries e ON e.id = f.rowid
		WHERE entries_fts MATCH ?`)

	args := []any{match}
	if agent != "" {
		b.WriteString(` AND e.agent = ?`)
		args = append(args, agent)
	}
	b.WriteString(searchOrderClause(false))

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("export search: %w", err)
	}
	defer rows.Close()

	return s.scanEntries(rows)
}

func searchOrderClause(ascending bool) string {
	if ascending {
		return ` ORDER BY e.created_at ASC, e.id ASC`
	}
	return ` ORDER BY e.created_at DESC, e.id DESC`
}
