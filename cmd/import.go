/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// import.go implements the "chatarc import" command group.
//
// Each agent export format gets its own subcommand because the inputs
// differ fundamentally: Claude ships a JSON array of conversations,
// Gemini a Takeout HTML page that needs the questioner's prompt prefix
// to tell questions from answers.

package cmd

import (
	"fmt"

	"github.com/jpl-au/chatarc/internal/agent"
	"github.com/jpl-au/chatarc/internal/importer"
	"github.com/jpl-au/chatarc/internal/log"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import",
		Short: "Import chat history exports",
		Long:  `Import exported chat histories into the archive. Re-importing the same file skips entries already present.`,
	}
	c.PersistentFlags().IntP("limit", "n", 0, "Stop after this many new entries")
	c.PersistentFlags().Bool("dry-run", false, "Parse and count without writing")

	c.AddCommand(newImportClaudeCmd())
	c.AddCommand(newImportGeminiCmd())
	return c
}

func newImportClaudeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claude <conversations.json>",
		Short: "Import a Claude data export",
		Long:  `Import a Claude conversations.json export. Each human message and the assistant replies that follow it become one entry.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runImportClaude,
	}
}

func runImportClaude(c *cobra.Command, args []string) error {
	path := args[0]
	opts := importOptions(c)

	res, err := importer.ImportClaude(c.Context(), archiveStore, path, opts)

	log.Event("cli:import", "import").Agent(agent.Claude).
		Count(int64(res.Inserted)).
		Detail("file", path).
		Detail("skipped", res.Skipped).
		Detail("dry_run", opts.DryRun).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("import claude: %w", err))
	}
	return printImportResult(res, opts)
}

func newImportGeminiCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "gemini <MyActivity.html>",
		Short: "Import a Gemini Takeout export",
		Long: `Import a Google Takeout MyActivity.html export of Gemini chats.

The --prefix flag is the localised prompt marker Takeout puts before
each question (for example "Prompted" or "Pokyn:"). It is required
because the page carries no structural question marker.`,
		Args: cobra.ExactArgs(1),
		RunE: runImportGemini,
	}
	c.Flags().String("prefix", "", "Question prefix used in the export (required)")
	_ = c.MarkFlagRequired("prefix")
	return c
}

func runImportGemini(c *cobra.Command, args []string) error {
	path := args[0]
	prefix, _ := c.Flags().GetString("prefix")
	opts := importOptions(c)

	res, err := importer.ImportGemini(c.Context(), archiveStore, path, prefix, opts)

	log.Event("cli:import", "import").Agent(agent.Gemini).
		Count(int64(res.Inserted)).
		Detail("file", path).
		Detail("skipped", res.Skipped).
		Detail("dry_run", opts.DryRun).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("import gemini: %w", err))
	}
	return printImportResult(res, opts)
}

func importOptions(c *cobra.Command) importer.Options {
	limit, _ := c.Flags().GetInt("limit")
	dryRun, _ := c.Flags().GetBool("dry-run")
	return importer.Options{Limit: limit, DryRun: dryRun}
}

func printImportResult(res importer.Result, opts importer.Options) error {
	if JSON() {
		return PrintJSON(map[string]int{"inserted": res.Inserted, "skipped": res.Skipped})
	}
	verb := "Imported"
	if opts.DryRun {
		verb = "Would import"
	}
	fmt.Fprintf(Out(), "%s %d entries (%d duplicates skipped)\n", verb, res.Inserted, res.Skipped)
	return nil
}
