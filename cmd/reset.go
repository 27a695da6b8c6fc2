/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// reset.go implements the "chatarc reset" command for clearing one agent.
//
// Separated from rm.go because reset deletes whole agent partitions and
// carries a confirmation prompt.

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jpl-au/chatarc/internal/agent"
	"github.com/jpl-au/chatarc/internal/log"
	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <agent>",
		Short: "Delete every entry for one agent",
		Long: `Permanently delete all entries imported for the given agent.

This is irreversible. Use --force to skip confirmation.`,
		Args: cobra.ExactArgs(1),
		RunE: runReset,
	}
}

func runReset(c *cobra.Command, args []string) error {
	ctx := c.Context()
	target := args[0]

	if err := agent.Validate(target); err != nil {
		return PrintJSONError(err)
	}

	if !Force() && !JSON() {
		fmt.Fprintf(Out(), "Permanently delete all %s entries? This cannot be undone. [y/N] ", target)
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return PrintJSONError(fmt.Errorf("reading confirmation: %w", err))
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(Out(), "Cancelled")
			return nil
		}
	}

	n, err := archiveStore.ResetAgent(ctx, target)

	log.Event("cli:reset", "reset").Agent(target).Count(n).Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("reset %s: %w", target, err))
	}

	if JSON() {
		return PrintJSON(map[string]int64{"deleted": n})
	}
	fmt.Fprintf(Out(), "Deleted %d %s entries\n", n, target)
	return nil
}
