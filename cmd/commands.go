/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// commands.go registers all subcommands with the root command.
//
// Registration is centralised here rather than scattered across init()
// functions so the command set is visible in one place and ordering is
// deterministic.

package cmd

func init() {
	rootCmd.AddCommand(
		newLsCmd(),
		newSearchCmd(),
		newShowCmd(),
		newRmCmd(),
		newResetCmd(),
		newImportCmd(),
		newExportCmd(),
		newMigrateCmd(),
		newStatsCmd(),
		newServeCmd(),
		newMCPCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
}
