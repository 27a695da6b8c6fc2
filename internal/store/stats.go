// stats.go provides aggregate archive statistics for the stats command and
// the MCP stats tool.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Stats returns entry counts per agent plus the overall timestamp range.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{PerAgent: make(map[string]int64)}

	rows, err := s.db.QueryContext(ctx, `SELECT agent, COUNT(*) FROM entries GROUP BY agent`)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var agent string
		var n int64
		if err := rows.Scan(&agent, &n); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
		st.PerAgent[agent] = n
		st.Total += n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var oldest, newest sql.NullString
	err = s.db.QueryRowContext(ctx,
		`SELECT MIN(created_at), MAX(created_at) FROM entries WHERE created_at IS NOT NULL`).
		Scan(&oldest, &newest)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	if oldest.Valid {
		st.Oldest = oldest.String
	}
	if newest.Valid {
		st.Newest = newest.String
	}
	return st, nil
}
