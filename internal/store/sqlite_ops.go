// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// Separated to isolate SQLite-specific concerns (pragmas, driver
// registration, row scanning) from business logic. This is the only file in
// the package that imports the SQLite driver.
//
// Design: WAL mode with busy timeout balances concurrency and durability.
// The archive is read-heavy (list/search) with occasional bulk imports;
// WAL lets readers proceed while an import is writing.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite with an FTS5 index kept in sync
// by triggers. It is safe for concurrent use by multiple goroutines.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time interface compliance check.
var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at path and returns a configured
// SQLiteStore. The caller should call Close on the returned store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// WAL mode: concurrent readers during writes. Trade-off: -wal and -shm
	// files alongside the database.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// How long to wait when another connection holds a lock. Bulk imports
	// hold the write lock for noticeable stretches.
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// NORMAL is safe against corruption under WAL; FULL would fsync every
	// commit for no benefit on an archive the user can re-import.
	if _, err := db.Exec(`PRAGMA synchronous=NORMAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting synchronous mode: %w", err)
	}

	if _, err := db.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates the schema if needed and migrates stores created before the
// normalized index columns existed. Safe to call multiple times. A migration
// failure is fatal: the store must not serve from a half-migrated state.
func (s *SQLiteStore) Init(ctx context.Context) error {
	if err := execSchema(s.db); err != nil {
		return err
	}
	return s.Migrate(ctx)
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function
// to handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// entryColumns is the projection shared by every entry query; the prefixed
// variant is for joins where the entries table is aliased as e.
const (
	entryColumns = `id, agent, source_file, question, created_at_raw, created_at, ` +
		`answer_plain, answer_html, attachments_raw, imported_at, content_hash`
	entryColumnsPrefixed = `e.id, e.agent, e.source_file, e.question, e.created_at_raw, e.created_at, ` +
		`e.answer_plain, e.answer_html, e.attachments_raw, e.imported_at, e.content_hash`
)

// scanEntry extracts an Entry from a database row, handling nullable fields.
func scanEntry(sc scanner) (Entry, error) {
	var e Entry
	var createdAt, attachments, hash sql.NullString

	err := sc.Scan(&e.ID, &e.Agent, &e.SourceFile, &e.Question, &e.CreatedAtRaw,
		&createdAt, &e.AnswerPlain, &e.AnswerHTML, &attachments, &e.ImportedAt, &hash)
	if err != nil {
		return e, err
	}

	if createdAt.Valid {
		e.CreatedAt = &createdAt.String
	}
	if attachments.Valid {
		e.AttachmentsRaw = &attachments.String
	}
	if hash.Valid {
		e.ContentHash = &hash.String
	}
	return e, nil
}

// scanEntryRow converts sql.ErrNoRows to ErrNotFound for consistent error handling.
func (s *SQLiteStore) scanEntryRow(row *sql.Row) (*Entry, error) {
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan entry: %w", err)
	}
	return &e, nil
}

// scanEntries iterates over query results, collecting entries into a slice.
func (s *SQLiteStore) scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Tx executes fn within a database transaction, handling Begin/Commit/Rollback
// automatically. If fn returns an error the transaction is rolled back,
// otherwise it is committed. Rollback is deferred to handle panics and early
// returns (it is a no-op after commit).
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// modernc.org/sqlite surfaces constraint violations as formatted errors, so
// string matching is the practical detection method.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
