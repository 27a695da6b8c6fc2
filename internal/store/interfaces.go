// interfaces.go defines the storage abstraction for archived entries.
//
// Separated from the SQLite implementation to enable testing and potential
// alternative backends. The interfaces are intentionally granular (Reader,
// Writer, Searcher, Maintainer) to support interface segregation - consumers
// only depend on the capabilities they need.

package store

import (
	"context"
	"database/sql"
)

// Reader defines read-only operations over the entries table.
type Reader interface {
	// List returns entries ordered by creation time, filtered and paginated
	// per opts. Unparsed timestamps sort as oldest.
	List(ctx context.Context, opts ListOptions) ([]Entry, error)

	// ByID retrieves a single entry. Returns ErrNotFound if absent.
	ByID(ctx context.Context, id int64) (*Entry, error)

	// Count returns the entry count, optionally scoped to one agent.
	Count(ctx context.Context, agent string) (int64, error)

	// Export returns the full unpaginated entry set, filterable by query
	// (full-text, search semantics) and agent (exact match).
	Export(ctx context.Context, query, agent string) ([]Entry, error)

	// Stats returns aggregate archive statistics.
	Stats(ctx context.Context) (*Stats, error)
}

// Writer defines operations that mutate entries. Every mutation is mirrored
// into the FTS index within the same transaction by the schema's triggers.
type Writer interface {
	// Insert stores a new entry and returns its id. The normalized index
	// columns are derived from Question and AnswerPlain inside the same
	// statement, so the FTS mirror can never drift from the source fields.
	// Returns ErrDuplicate when ContentHash collides with an existing row.
	Insert(ctx context.Context, e Entry) (int64, error)

	// Delete removes one entry by id, returning the affected count (0 or 1).
	Delete(ctx context.Context, id int64) (int64, error)

	// DeleteMany removes every entry whose id is in ids and returns the
	// affected count. Missing ids are not an error; an empty set is
	// (ErrNoIDs).
	DeleteMany(ctx context.Context, ids []int64) (int64, error)

	// ResetAgent deletes every entry for one agent and returns the count.
	ResetAgent(ctx context.Context, agent string) (int64, error)
}

// Searcher defines full-text search over the normalized index.
type Searcher interface {
	// Search matches every whitespace-separated query term as a normalized
	// prefix against the question and plain answer. A blank query returns
	// no results without touching the database.
	Search(ctx context.Context, query string, opts SearchOptions) ([]Entry, error)
}

// Maintainer defines lifecycle and escape-hatch operations.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection for the audit log and tests.
	DB() *sql.DB

	// Tx runs fn within a transaction, committing on nil and rolling back
	// on error.
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// Store is the full persistence interface for archived entries.
type Store interface {
	Reader
	Writer
	Searcher
	Maintainer
}
