/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// mcp.go implements the "chatarc mcp" command for MCP server operation.
//
// Separated from serve.go because the MCP server has unique lifecycle
// requirements: it speaks JSON-RPC over stdio and manages its own store
// so stdout stays reserved for protocol messages. It is a noStoreCommand
// for the same reason.

package cmd

import (
	"github.com/jpl-au/chatarc/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Exposes read-only archive tools: archive_search, archive_list, archive_stats.`,
		Args: cobra.NoArgs,
		RunE: runMCP,
	}
}

func runMCP(_ *cobra.Command, _ []string) error {
	return mcp.Serve(dbPath(), loadConfig().SnippetWidth())
}
