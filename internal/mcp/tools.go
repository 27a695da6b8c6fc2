// tools.go implements the archive_* MCP tool handlers.
//
// Search results carry a snippet windowed around the match so the LLM can
// judge relevance without fetching full answers. HTML answers are stripped
// to text before windowing.

package mcp

import (
	"context"

	"github.com/jpl-au/chatarc/internal/agent"
	"github.com/jpl-au/chatarc/internal/log"
	"github.com/jpl-au/chatarc/internal/markup"
	"github.com/jpl-au/chatarc/internal/snippet"
	"github.com/jpl-au/chatarc/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultSearchLimit keeps unpaginated tool calls cheap; the store clamps
// explicit limits to its own maximum.
const defaultSearchLimit = 20

// searchHit is one search result trimmed for tool output.
type searchHit struct {
	store.EntryJSON
	Snippet string `json:"snippet"`
}

// searchArchive handles archive_search tool calls.
func (h *handlers) searchArchive(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}

	agentFilter := getString(req, "agent", "")
	if !agent.ValidFilter(agentFilter) {
		return mcp.NewToolResultError("unknown agent: " + agentFilter), nil
	}

	opts := store.SearchOptions{
		Agent:  agentFilter,
		Limit:  getInt(req, "limit", defaultSearchLimit),
		Offset: getInt(req, "offset", 0),
	}

	entries, err := h.store.Search(ctx, query, opts)

	log.Event("mcp:archive_search", "search").Agent(agentFilter).Count(int64(len(entries))).Detail("query", query).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	hits := make([]searchHit, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		text := e.AnswerPlain
		if text == "" && markup.Classify(e.AnswerHTML) == markup.HTML {
			text = markup.Strip(e.AnswerHTML)
		}
		hits = append(hits, searchHit{
			EntryJSON: e.ToJSON(),
			Snippet:   snippet.Around(text, query, h.snippetWidth),
		})
	}

	return jsonResult(hits)
}

// listArchive handles archive_list tool calls.
func (h *handlers) listArchive(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agentFilter := getString(req, "agent", "")
	if !agent.ValidFilter(agentFilter) {
		return mcp.NewToolResultError("unknown agent: " + agentFilter), nil
	}

	opts := store.ListOptions{
		Agent:     agentFilter,
		Limit:     getInt(req, "limit", 0),
		Offset:    getInt(req, "offset", 0),
		Ascending: getBool(req, "ascending", false),
	}

	entries, err := h.store.List(ctx, opts)

	log.Event("mcp:archive_list", "list").Agent(agentFilter).Count(int64(len(entries))).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := make([]store.EntryJSON, 0, len(entries))
	for i := range entries {
		result = append(result, entries[i].ToJSON())
	}

	return jsonResult(result)
}

// archiveStats handles archive_stats tool calls.
func (h *handlers) archiveStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.store.Stats(ctx)

	log.Event("mcp:archive_stats", "stats").Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(stats)
}
