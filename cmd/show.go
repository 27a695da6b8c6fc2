/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// show.go implements the "chatarc show" command for reading one entry.
//
// Design: Terminal output gets glamour markdown rendering of the answer;
// pipe/redirect gets raw text. HTML answers are shown as their plain-text
// form since a terminal can't render the markup.

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/chatarc/internal/format"
	"github.com/jpl-au/chatarc/internal/log"
	"github.com/jpl-au/chatarc/internal/markup"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newShowCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry in full",
		Long:  `Output a single archived entry with its complete answer.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	c.Flags().Bool("raw", false, "Output raw text without rendering")
	c.Flags().Bool("html", false, "Output the stored rich-markup answer")
	return c
}

func runShow(c *cobra.Command, args []string) error {
	ctx := c.Context()
	raw, _ := c.Flags().GetBool("raw")
	wantHTML, _ := c.Flags().GetBool("html")

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return PrintJSONError(fmt.Errorf("invalid id %q", args[0]))
	}

	e, err := archiveStore.ByID(ctx, id)

	log.Event("cli:show", "read").ID(id).Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("show %d: %w", id, err))
	}

	if JSON() {
		return PrintJSON(e.ToJSON())
	}

	if wantHTML {
		fmt.Fprintln(Out(), e.AnswerHTML)
		return nil
	}

	answer := e.AnswerPlain
	if answer == "" && markup.Classify(e.AnswerHTML) == markup.HTML {
		answer = markup.Strip(e.AnswerHTML)
	}

	// Render with glamour if TTY and not --raw. Claude answers are
	// markdown; rendering a plain Gemini answer is harmless.
	if !raw && term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, renderErr := glamour.Render(answer, "dark"); renderErr == nil {
			format.Detail(Out(), e, rendered)
			return nil
		}
	}

	format.Detail(Out(), e, answer)
	return nil
}
