/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// ls.go implements the "chatarc ls" command for listing archived entries.

package cmd

import (
	"fmt"

	"github.com/jpl-au/chatarc/internal/agent"
	"github.com/jpl-au/chatarc/internal/format"
	"github.com/jpl-au/chatarc/internal/log"
	"github.com/jpl-au/chatarc/internal/store"
	"github.com/spf13/cobra"
)

func newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls",
		Short: "List archived entries",
		Long:  `List archived entries, newest first.`,
		Args:  cobra.NoArgs,
		RunE:  runLs,
	}
	c.Flags().StringP("agent", "a", "", "Filter by agent (claude, gemini, openai)")
	c.Flags().IntP("limit", "n", 0, "Maximum entries to list")
	c.Flags().Int("offset", 0, "Pagination offset")
	c.Flags().Bool("asc", false, "Oldest first instead of newest first")
	return c
}

func runLs(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	agentFilter, _ := c.Flags().GetString("agent")
	limit, _ := c.Flags().GetInt("limit")
	offset, _ := c.Flags().GetInt("offset")
	asc, _ := c.Flags().GetBool("asc")

	if !agent.ValidFilter(agentFilter) {
		return PrintJSONError(fmt.Errorf("unknown agent: %s", agentFilter))
	}

	if limit <= 0 {
		limit = loadConfig().ListLimit()
	}

	opts := store.ListOptions{
		Agent:     agentFilter,
		Limit:     limit,
		Offset:    offset,
		Ascending: asc,
	}

	entries, err := archiveStore.List(ctx, opts)

	log.Event("cli:ls", "list").Agent(agentFilter).Count(int64(len(entries))).Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("ls: %w", err))
	}

	if JSON() {
		items := make([]store.EntryJSON, len(entries))
		for i := range entries {
			items[i] = entries[i].ToJSON()
		}
		return PrintJSON(items)
	}

	format.List(Out(), entries)
	return nil
}
