/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// search.go implements the "chatarc search" command for full-text search.
//
// Matching is diacritic-insensitive: the index stores accent-folded text,
// so "mozna" finds "Možná". Each result prints with a snippet windowed
// around the first match in the answer and the question's matched segment
// bracketed.

package cmd

import (
	"fmt"

	"github.com/jpl-au/chatarc/internal/agent"
	"github.com/jpl-au/chatarc/internal/format"
	"github.com/jpl-au/chatarc/internal/log"
	"github.com/jpl-au/chatarc/internal/markup"
	"github.com/jpl-au/chatarc/internal/snippet"
	"github.com/jpl-au/chatarc/internal/store"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across entries",
		Long: `Full-text search across questions and answers.

Terms match as prefixes and are combined with AND. Accents are ignored
on both sides, so "mozna" matches "Možná".`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}
	c.Flags().StringP("agent", "a", "", "Filter by agent (claude, gemini, openai)")
	c.Flags().IntP("limit", "n", 0, "Maximum results")
	c.Flags().Int("offset", 0, "Pagination offset")
	c.Flags().Int("width", 0, "Snippet width in characters")
	return c
}

func runSearch(c *cobra.Command, args []string) error {
	ctx := c.Context()
	query := args[0]
	agentFilter, _ := c.Flags().GetString("agent")
	limit, _ := c.Flags().GetInt("limit")
	offset, _ := c.Flags().GetInt("offset")
	width, _ := c.Flags().GetInt("width")

	if !agent.ValidFilter(agentFilter) {
		return PrintJSONError(fmt.Errorf("unknown agent: %s", agentFilter))
	}

	if width <= 0 {
		width = loadConfig().SnippetWidth()
	}

	opts := store.SearchOptions{
		Agent:  agentFilter,
		Limit:  limit,
		Offset: offset,
	}

	entries, err := archiveStore.Search(ctx, query, opts)

	log.Event("cli:search", "search").Agent(agentFilter).Count(int64(len(entries))).Detail("query", query).Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("search %q: %w", query, err))
	}

	if JSON() {
		type hit struct {
			store.EntryJSON
			Snippet string `json:"snippet"`
		}
		items := make([]hit, len(entries))
		for i := range entries {
			e := &entries[i]
			items[i] = hit{EntryJSON: e.ToJSON(), Snippet: answerSnippet(e, query, width)}
		}
		return PrintJSON(items)
	}

	for i := range entries {
		e := &entries[i]
		format.Hit(Out(), e, answerSnippet(e, query, width), snippet.Highlight(e.Question, query))
	}
	if len(entries) == 0 {
		fmt.Fprintln(Out(), "No matches")
	}
	return nil
}

// answerSnippet windows the answer text around the query match. HTML
// answers are stripped to text first so tags never reach the terminal.
func answerSnippet(e *store.Entry, query string, width int) string {
	text := e.AnswerPlain
	if text == "" && markup.Classify(e.AnswerHTML) == markup.HTML {
		text = markup.Strip(e.AnswerHTML)
	}
	return snippet.Around(text, query, width)
}
