/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// migrate.go implements the "chatarc migrate" command.
//
// Migration runs automatically whenever the store opens; this command
// exists so a schema upgrade on a large archive can be run deliberately
// (and timed) instead of surprising the first ls after an update.

package cmd

import (
	"fmt"

	"github.com/jpl-au/chatarc/internal/log"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Upgrade the archive schema",
		Long:  `Upgrade the archive database to the current schema and rebuild the search index if needed. Safe to run repeatedly.`,
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}
}

func runMigrate(c *cobra.Command, _ []string) error {
	// Opening the store already ran the migration; count as a health check.
	n, err := archiveStore.Count(c.Context(), "")

	log.Event("cli:migrate", "migrate").Count(n).Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("migrate: %w", err))
	}

	if JSON() {
		return PrintJSON(map[string]any{"ok": true, "entries": n})
	}
	fmt.Fprintf(Out(), "Archive schema up to date (%d entries, %s)\n", n, dbPath())
	return nil
}
