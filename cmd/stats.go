/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// stats.go implements the "chatarc stats" command.

package cmd

import (
	"fmt"

	"github.com/jpl-au/chatarc/internal/format"
	"github.com/jpl-au/chatarc/internal/log"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show archive statistics",
		Long:  `Show entry counts per agent and the archive's date range.`,
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
}

func runStats(c *cobra.Command, _ []string) error {
	st, err := archiveStore.Stats(c.Context())

	log.Event("cli:stats", "stats").Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("stats: %w", err))
	}

	if JSON() {
		return PrintJSON(st)
	}

	format.Stats(Out(), st)
	return nil
}
