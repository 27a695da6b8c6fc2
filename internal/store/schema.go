// schema.go defines the SQLite schema and provides schema execution helpers.
//
// Schema files are embedded from the sql/ directory and executed in
// alphabetical order (hence the numeric prefixes like 001_). Each file uses
// IF NOT EXISTS clauses so execution is idempotent on existing stores; the
// FTS file is additionally re-executed by the migration after it drops the
// pre-normalization index.

package store

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed sql/*.sql
var schemas embed.FS

// execEmbedded executes all .sql files from an embedded filesystem in
// alphabetical order.
func execEmbedded(db *sql.DB, fsys embed.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := dir + "/" + entry.Name()
		data, err := fsys.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// execSchema executes the embedded schema files.
func execSchema(db *sql.DB) error {
	return execEmbedded(db, schemas, "sql")
}

// ftsSchema returns the FTS table + trigger definitions so the migration can
// recreate them after dropping the pre-normalization index.
func ftsSchema() (string, error) {
	data, err := schemas.ReadFile("sql/002_fts.sql")
	if err != nil {
		return "", fmt.Errorf("read fts schema: %w", err)
	}
	return string(data), nil
}
