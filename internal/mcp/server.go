// Package mcp implements the Model Context Protocol server, exposing the
// archive to LLMs. This enables AI assistants to search and browse archived
// conversations through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/chatarc/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other
// MCP clients.
//
// The archive is read-only over MCP: tools cover search, listing and
// stats, never deletion. Destructive operations stay on the CLI and HTTP
// surfaces where a human confirms them.
func Serve(dbPath string, snippetWidth int) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	st, err := store.Open(dbPath)
	if err != nil {
		slog.Error("failed to open archive", "error", err)
		return err
	}
	defer st.Close()

	if err := st.Init(context.Background()); err != nil {
		slog.Error("failed to initialise archive", "error", err)
		return err
	}

	h := &handlers{store: st, snippetWidth: snippetWidth}

	s := server.NewMCPServer(
		"chatarc",
		Version,
		server.WithToolCapabilities(true),
	)

	registerTools(s, h)

	slog.Info("chatarc MCP server ready", "version", Version, "transport", "stdio")

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers with access to the archive store.
type handlers struct {
	store        store.Store
	snippetWidth int
}

// registerTools exposes archive operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	// Search
	s.AddTool(
		mcp.NewTool("archive_search",
			mcp.WithDescription("Full-text search across archived Q&A entries. Matching is diacritic-insensitive and prefix-based."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search query; terms are combined with AND")),
			mcp.WithString("agent", mcp.Description("Filter by agent (claude, gemini, openai)")),
			mcp.WithNumber("limit", mcp.Description("Maximum entries to return (default 20, max 100)")),
			mcp.WithNumber("offset", mcp.Description("Pagination offset")),
		),
		h.searchArchive,
	)

	// List
	s.AddTool(
		mcp.NewTool("archive_list",
			mcp.WithDescription("List archived entries, newest first"),
			mcp.WithString("agent", mcp.Description("Filter by agent (claude, gemini, openai)")),
			mcp.WithNumber("limit", mcp.Description("Maximum entries to return (default 50)")),
			mcp.WithNumber("offset", mcp.Description("Pagination offset")),
			mcp.WithBoolean("ascending", mcp.Description("Oldest first instead of newest first")),
		),
		h.listArchive,
	)

	// Stats
	s.AddTool(
		mcp.NewTool("archive_stats",
			mcp.WithDescription("Summary statistics: entry counts per agent and overall date range"),
		),
		h.archiveStats,
	)
}
