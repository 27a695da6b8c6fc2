// handlers.go implements the JSON API handlers.
//
// Separated from server.go so routing/middleware and request handling can
// be read independently. Read endpoints return plain arrays or objects;
// destructive endpoints return {"deleted": n} and are recorded in the
// audit log.

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jpl-au/chatarc/internal/agent"
	"github.com/jpl-au/chatarc/internal/log"
	"github.com/jpl-au/chatarc/internal/markup"
	"github.com/jpl-au/chatarc/internal/snippet"
	"github.com/jpl-au/chatarc/internal/store"
)

// searchHit is one search result enriched with display helpers: a snippet
// windowed around the match and the question split at the matched segment.
type searchHit struct {
	store.EntryJSON
	Snippet       string         `json:"snippet"`
	AnswerIsHTML  bool           `json:"answer_is_html"`
	QuestionMatch *questionMatch `json:"question_match,omitempty"`
}

type questionMatch struct {
	Before string `json:"before"`
	Hit    string `json:"hit"`
	After  string `json:"after"`
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	agentFilter := q.Get("agent")
	if !agent.ValidFilter(agentFilter) {
		writeAPIError(w, http.StatusBadRequest, "INVALID_AGENT", "unknown agent: "+agentFilter)
		return
	}

	opts := store.ListOptions{
		Agent:     agentFilter,
		Limit:     intParam(q.Get("limit")),
		Offset:    intParam(q.Get("offset")),
		Ascending: q.Get("order") == "asc",
	}

	entries, err := s.store.List(r.Context(), opts)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toJSONList(entries))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")

	agentFilter := q.Get("agent")
	if !agent.ValidFilter(agentFilter) {
		writeAPIError(w, http.StatusBadRequest, "INVALID_AGENT", "unknown agent: "+agentFilter)
		return
	}

	opts := store.SearchOptions{
		Agent:     agentFilter,
		Limit:     intParam(q.Get("limit")),
		Offset:    intParam(q.Get("offset")),
		Ascending: q.Get("order") == "asc",
	}

	entries, err := s.store.Search(r.Context(), query, opts)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	hits := make([]searchHit, 0, len(entries))
	for i := range entries {
		hits = append(hits, s.buildHit(&entries[i], query))
	}
	writeJSON(w, http.StatusOK, hits)
}

// buildHit derives the display fields for one search result. HTML answers
// are stripped to text before windowing so tags never leak into snippets.
func (s *Server) buildHit(e *store.Entry, query string) searchHit {
	isHTML := markup.Classify(e.AnswerHTML) == markup.HTML

	text := e.AnswerPlain
	if text == "" && isHTML {
		text = markup.Strip(e.AnswerHTML)
	}

	hit := searchHit{
		EntryJSON:    e.ToJSON(),
		Snippet:      snippet.Around(text, query, s.cfg.SnippetWidth),
		AnswerIsHTML: isHTML,
	}

	if m := snippet.Highlight(e.Question, query); m.Found {
		hit.QuestionMatch = &questionMatch{Before: m.Before, Hit: m.Hit, After: m.After}
	}
	return hit
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.Stats(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	agentFilter := q.Get("agent")
	if !agent.ValidFilter(agentFilter) {
		writeAPIError(w, http.StatusBadRequest, "INVALID_AGENT", "unknown agent: "+agentFilter)
		return
	}

	entries, err := s.store.Export(r.Context(), q.Get("q"), agentFilter)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toJSONList(entries))
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeAPIError(w, http.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
		return
	}

	n, err := s.store.Delete(r.Context(), id)
	log.Event("http:/api/entries", "delete").ID(id).Count(n).Write(err)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func (s *Server) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []int64 `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, http.StatusBadRequest, "INVALID_BODY", "body must be JSON with an ids array")
		return
	}

	ids := body.IDs[:0]
	for _, id := range body.IDs {
		if id > 0 {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		writeAPIError(w, http.StatusBadRequest, "NO_IDS", "ids must contain at least one positive integer")
		return
	}

	n, err := s.store.DeleteMany(r.Context(), ids)
	log.Event("http:/api/entries-bulk-delete", "delete").Count(n).Detail("ids", len(ids)).Write(err)
	if err != nil {
		if errors.Is(err, store.ErrNoIDs) {
			writeAPIError(w, http.StatusBadRequest, "NO_IDS", err.Error())
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func (s *Server) handleResetAgent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Agent string `json:"agent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, http.StatusBadRequest, "INVALID_BODY", "body must be JSON with an agent field")
		return
	}
	if err := agent.Validate(body.Agent); err != nil {
		writeAPIError(w, http.StatusBadRequest, "INVALID_AGENT", err.Error())
		return
	}

	n, err := s.store.ResetAgent(r.Context(), body.Agent)
	log.Event("http:/api/reset-agent", "reset").Agent(body.Agent).Count(n).Write(err)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("handler failed",
		"path", r.URL.Path,
		"error", err)
	writeAPIError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
}

// intParam parses a numeric query parameter; malformed or missing values
// become zero and pick up the store defaults.
func intParam(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func toJSONList(entries []store.Entry) []store.EntryJSON {
	out := make([]store.EntryJSON, 0, len(entries))
	for i := range entries {
		out = append(out, entries[i].ToJSON())
	}
	return out
}
