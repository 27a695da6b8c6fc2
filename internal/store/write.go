// write.go implements entry creation and deletion.
//
// Separated from the read paths to isolate mutating operations. There is no
// partial update: entries are immutable after import, so the write surface
// is insert, delete, bulk delete, and per-agent reset.
//
// Design: the normalized index columns are computed in the application and
// written in the same INSERT as their source columns. The FTS triggers fire
// synchronously inside the same transaction, so a committed mutation is
// always mirrored in the index - there is no observable window where the
// two diverge.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpl-au/chatarc/internal/normalize"
)

// Insert stores a new entry and returns its id. Returns ErrDuplicate when
// the content hash collides with an existing row, which importers treat as
// "already archived".
func (s *SQLiteStore) Insert(ctx context.Context, e Entry) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (agent, source_file, question, created_at_raw, created_at,
		                     answer_plain, answer_html, attachments_raw, content_hash,
		                     question_norm, answer_plain_norm)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Agent, e.SourceFile, e.Question, e.CreatedAtRaw, e.CreatedAt,
		e.AnswerPlain, e.AnswerHTML, e.AttachmentsRaw, e.ContentHash,
		normalize.Fold(e.Question), normalize.Fold(e.AnswerPlain))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}
	return id, nil
}

// Delete removes one entry by id, returning the affected count (0 or 1).
// The FTS mirror row is removed by the delete trigger in the same statement.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete entry %d: %w", id, err)
	}
	return res.RowsAffected()
}

// DeleteMany removes every entry whose id is in ids and returns the total
// affected count. Ids that don't exist simply don't count - callers learn
// how many rows actually went away. An empty set is rejected with ErrNoIDs.
func (s *SQLiteStore) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoIDs
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk delete: %w", err)
	}
	return res.RowsAffected()
}

// ResetAgent deletes every entry for one agent and returns the count.
// Agent validation happens at the surface; the store deletes whatever it is
// told to.
func (s *SQLiteStore) ResetAgent(ctx context.Context, agent string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE agent = ?`, agent)
	if err != nil {
		return 0, fmt.Errorf("reset agent %s: %w", agent, err)
	}
	return res.RowsAffected()
}
