// Package store persists archived AI-chat entries in SQLite and keeps the
// FTS5 search index in lock-step with them. Implementations handle the
// actual database operations while consumers depend only on the Store
// interface, enabling testing and alternative backends.
package store

import (
	"encoding/json"
	"errors"
)

// Entry is one imported question/answer turn with provenance metadata.
type Entry struct {
	ID             int64   // Database primary key, immutable once assigned
	Agent          string  // Source system tag (claude, gemini, openai)
	SourceFile     string  // Export file the entry was imported from
	Question       string  // Raw question text
	CreatedAtRaw   string  // Timestamp as it appeared in the export
	CreatedAt      *string // Sortable "YYYY-MM-DD HH:MM:SS", nil if parsing failed
	AnswerPlain    string  // Plain-text answer
	AnswerHTML     string  // Rich-markup answer (HTML or markdown, sniffed by consumers)
	AttachmentsRaw *string // Raw attachment metadata JSON, nil if none
	ImportedAt     string  // When the row was imported
	ContentHash    *string // De-duplication hash, unique when present
}

// EntryJSON is the API-friendly representation of an Entry with omitted
// nullable fields.
type EntryJSON struct {
	ID             int64  `json:"id"`
	Agent          string `json:"agent"`
	SourceFile     string `json:"source_file"`
	Question       string `json:"question"`
	CreatedAtRaw   string `json:"created_at_raw"`
	CreatedAt      string `json:"created_at,omitempty"`
	AnswerPlain    string `json:"answer_plain"`
	AnswerHTML     string `json:"answer_html"`
	AttachmentsRaw string `json:"attachments_raw,omitempty"`
}

// ToJSON converts an Entry to its API representation.
func (e *Entry) ToJSON() EntryJSON {
	j := EntryJSON{
		ID:           e.ID,
		Agent:        e.Agent,
		SourceFile:   e.SourceFile,
		Question:     e.Question,
		CreatedAtRaw: e.CreatedAtRaw,
		AnswerPlain:  e.AnswerPlain,
		AnswerHTML:   e.AnswerHTML,
	}
	if e.CreatedAt != nil {
		j.CreatedAt = *e.CreatedAt
	}
	if e.AttachmentsRaw != nil {
		j.AttachmentsRaw = *e.AttachmentsRaw
	}
	return j
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Pagination caps. Listing can page wider than search because list rows are
// served straight off the created_at index.
const (
	MaxListLimit   = 1000
	MaxSearchLimit = 100
)

var (
	// ErrNotFound indicates the requested entry does not exist.
	ErrNotFound = errors.New("entry not found")
	// ErrDuplicate indicates an insert collided with an existing content hash.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrNoIDs is returned by DeleteMany when the id set is empty.
	ErrNoIDs = errors.New("no ids given")
)

// ListOptions configures a listing query.
type ListOptions struct {
	Agent     string // Exact agent filter; empty means all agents
	Limit     int    // Clamped to MaxListLimit; <=0 uses MaxListLimit
	Offset    int    // Clamped to >= 0
	Ascending bool   // Oldest first when set; default newest first
}

// SearchOptions configures a full-text search.
type SearchOptions struct {
	Agent     string // Exact agent filter; empty means all agents
	Limit     int    // Clamped to MaxSearchLimit; <=0 uses MaxSearchLimit
	Offset    int    // Clamped to >= 0
	Ascending bool
}

// Stats provides aggregate archive statistics for the stats command and
// MCP stats tool.
type Stats struct {
	Total    int64            `json:"total"`
	PerAgent map[string]int64 `json:"per_agent"`
	Oldest   string           `json:"oldest,omitempty"`
	Newest   string           `json:"newest,omitempty"`
}
