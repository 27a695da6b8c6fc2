// Package log provides centralised audit logging for chatarc operations.
// Logs are stored in ~/.chatarc/log/chatarc-log.db and track all CLI
// commands, HTTP API calls, and MCP tool invocations across archives.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("cli:rm", "delete").
//		Agent(agentFlag).
//		ID(id).
//		Count(n).
//		Write(err)
//
//	log.Event("cli:search", "search").
//		Detail("query", query).
//		Count(int64(len(results))).
//		Write(err)
//
// The source parameter follows the format "cli:{command}" for CLI commands,
// "http:{route}" for API handlers, or "mcp:{tool}" for MCP tools. Examples:
// "cli:import", "http:/api/entries", "mcp:archive_search".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "cli:search", "mcp:archive_list"
	Action string // verb: search, list, delete, reset, import, export
	Agent  string // agent filter or target, if the operation had one
	ID     int64  // single entry id, for operations targeting one entry

	// Output fields - populated after operation succeeds
	Count int64 // rows affected or returned

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "cli:{command}" (e.g., "cli:rm", "cli:import")
//   - HTTP handlers: "http:{route}" (e.g., "http:/api/reset-agent")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:archive_search")
//
// The action describes what operation was performed:
//   - "search", "list", "delete", "reset", "import", "export", etc.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Agent records the agent an operation targeted or filtered by.
// Leave unset for operations spanning all agents.
func (b *Builder) Agent(agent string) *Builder {
	b.entry.Agent = agent
	return b
}

// ID records the entry id for operations targeting a single entry.
func (b *Builder) ID(id int64) *Builder {
	b.entry.ID = id
	return b
}

// Count records how many rows the operation affected or returned.
//
// For deletes and resets: rows removed. For search and list: rows returned.
// For imports: entries inserted.
func (b *Builder) Count(n int64) *Builder {
	b.entry.Count = n
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// search queries, source file names, skip counts, etc.
// Can be called multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
// This is the standard way to complete a log entry after an operation:
//
//	n, err := st.ResetAgent(ctx, agent)
//	log.Event("cli:reset", "reset").Agent(agent).Count(n).Write(err)
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetArchive sets the archive identifier for subsequent log entries.
// The path should be the archive database path.
func SetArchive(path string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.archive = hash(path)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
