/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// export.go implements the "chatarc export" command.

package cmd

import (
	"fmt"

	"github.com/jpl-au/chatarc/internal/agent"
	"github.com/jpl-au/chatarc/internal/exporter"
	"github.com/jpl-au/chatarc/internal/log"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export [file]",
		Short: "Export entries as JSON",
		Long: `Export archived entries as a JSON array.

With no file argument (or "-") the JSON streams to stdout. A file
destination gets ".json" appended when missing and is protected against
overwrites unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExport,
	}
	c.Flags().StringP("agent", "a", "", "Filter by agent (claude, gemini, openai)")
	c.Flags().StringP("query", "q", "", "Full-text filter")
	return c
}

func runExport(c *cobra.Command, args []string) error {
	ctx := c.Context()
	agentFilter, _ := c.Flags().GetString("agent")
	query, _ := c.Flags().GetString("query")

	if !agent.ValidFilter(agentFilter) {
		return PrintJSONError(fmt.Errorf("unknown agent: %s", agentFilter))
	}

	dst := ""
	if len(args) > 0 {
		dst = args[0]
	}

	opts := exporter.Options{Query: query, Agent: agentFilter, Force: Force()}
	res, err := exporter.Run(ctx, Out(), archiveStore, dst, opts)

	log.Event("cli:export", "export").Agent(agentFilter).
		Count(int64(res.Exported)).
		Detail("dest", res.Path).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("export: %w", err))
	}
	return nil
}
