// migrate.go upgrades stores created before the normalized index columns
// existed. Early archives indexed the raw question/answer text, which made
// search diacritic-sensitive; the current schema indexes diacritic-stripped
// copies instead.
//
// The schema version is detected by probing for the question_norm column:
// absent means pre-migration, present means current. There is exactly one
// migration path and it is idempotent.
//
// Design: the whole upgrade - column add, backfill, index rebuild - runs in
// a single transaction. Triggers only fire on future changes, so the FTS
// contents are rebuilt explicitly from current table data rather than
// relying on the recreated triggers.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jpl-au/chatarc/internal/normalize"
)

// Migrate brings an existing store up to the current schema. Stores that
// already have the normalized columns are left untouched. Any error aborts
// the transaction, leaving no partial migration state for subsequent opens.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	migrated, err := s.hasNormColumns(ctx)
	if err != nil {
		return err
	}
	if migrated {
		return nil
	}

	fts, err := ftsSchema()
	if err != nil {
		return err
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`ALTER TABLE entries ADD COLUMN question_norm TEXT`,
			`ALTER TABLE entries ADD COLUMN answer_plain_norm TEXT`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("add normalized column: %w", err)
			}
		}

		if err := backfillNorm(ctx, tx); err != nil {
			return err
		}

		// The old index shadowed the raw columns; drop it together with its
		// triggers and recreate both against the normalized columns.
		for _, stmt := range []string{
			`DROP TRIGGER IF EXISTS entries_ai`,
			`DROP TRIGGER IF EXISTS entries_ad`,
			`DROP TRIGGER IF EXISTS entries_au`,
			`DROP TABLE IF EXISTS entries_fts`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("drop old search index: %w", err)
			}
		}
		if _, err := tx.ExecContext(ctx, fts); err != nil {
			return fmt.Errorf("recreate search index: %w", err)
		}

		// Force a full rebuild from current table contents; the recreated
		// triggers only cover rows mutated after this point.
		if _, err := tx.ExecContext(ctx, `INSERT INTO entries_fts(entries_fts) VALUES('rebuild')`); err != nil {
			return fmt.Errorf("rebuild search index: %w", err)
		}
		return nil
	})
}

// hasNormColumns probes the entries table for the normalized columns.
func (s *SQLiteStore) hasNormColumns(ctx context.Context) (bool, error) {
	rows, err := s.db.QueryContext(ctx, `PRAGMA table_info(entries)`)
	if err != nil {
		return false, fmt.Errorf("probe schema: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			dflt       sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &primaryKey); err != nil {
			return false, fmt.Errorf("probe schema: %w", err)
		}
		if name == "question_norm" {
			return true, nil
		}
	}
	return false, rows.Err()
}

// backfillNorm derives the normalized columns for every existing row.
func backfillNorm(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, `SELECT id, question, answer_plain FROM entries`)
	if err != nil {
		return fmt.Errorf("read rows for backfill: %w", err)
	}
	defer rows.Close()

	type row struct {
		id                    int64
		question, answerPlain string
	}
	var pending []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.question, &r.answerPlain); err != nil {
			return fmt.Errorf("scan row for backfill: %w", err)
		}
		pending = append(pending, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, r := range pending {
		_, err := tx.ExecContext(ctx,
			`UPDATE entries SET question_norm = ?, answer_plain_norm = ? WHERE id = ?`,
			normalize.Fold(r.question), normalize.Fold(r.answerPlain), r.id)
		if err != nil {
			return fmt.Errorf("backfill entry %d: %w", r.id, err)
		}
	}
	return nil
}
