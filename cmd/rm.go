/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// rm.go implements the "chatarc rm" command for deleting entries.
//
// Design: Deletion is permanent - the FTS index rows go in the same
// transaction via the schema triggers. Missing ids are reported, not
// treated as errors, so batch deletes are idempotent.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/jpl-au/chatarc/internal/log"
	"github.com/spf13/cobra"
)

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Delete entries by id",
		Long:  `Permanently delete one or more entries. Missing ids are skipped.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRm,
	}
}

func runRm(c *cobra.Command, args []string) error {
	ctx := c.Context()

	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return PrintJSONError(fmt.Errorf("invalid id %q", arg))
		}
		ids = append(ids, id)
	}

	n, err := archiveStore.DeleteMany(ctx, ids)

	log.Event("cli:rm", "delete").Count(n).Detail("ids", len(ids)).Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("rm: %w", err))
	}

	if JSON() {
		return PrintJSON(map[string]int64{"deleted": n})
	}
	fmt.Fprintf(Out(), "Deleted %d entries\n", n)
	return nil
}
