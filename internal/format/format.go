// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// business logic while this package handles presentation concerns like
// column alignment and snippet layout.
package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jpl-au/chatarc/internal/snippet"
	"github.com/jpl-au/chatarc/internal/store"
)

// questionWidth caps the question column in list output so rows stay on
// one terminal line.
const questionWidth = 60

// created returns the sortable timestamp, falling back to the raw export
// value when parsing failed at import time.
func created(e *store.Entry) string {
	if e.CreatedAt != nil {
		return *e.CreatedAt
	}
	if e.CreatedAtRaw != "" {
		return e.CreatedAtRaw
	}
	return "-"
}

// oneline collapses whitespace runs so multi-line questions render as a
// single table cell.
func oneline(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// List prints entries in aligned table format.
func List(w io.Writer, entries []store.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries")
		return
	}

	fmt.Fprintf(w, "%6s  %-7s  %-19s  %s\n", "ID", "AGENT", "CREATED", "QUESTION")
	for i := range entries {
		e := &entries[i]
		q := snippet.Truncate(oneline(e.Question), questionWidth)
		fmt.Fprintf(w, "%6d  %-7s  %-19s  %s\n", e.ID, e.Agent, created(e), q)
	}
}

// Hit prints one search result: an identifying header line, the question
// with the matched segment bracketed, and the answer snippet indented
// beneath it.
func Hit(w io.Writer, e *store.Entry, snip string, m snippet.Match) {
	fmt.Fprintf(w, "#%d  %s  %s\n", e.ID, e.Agent, created(e))

	q := oneline(e.Question)
	if m.Found {
		q = oneline(m.Before) + "[" + m.Hit + "]" + oneline(m.After)
	}
	fmt.Fprintf(w, "  Q: %s\n", snippet.Truncate(q, questionWidth+20))

	if snip != "" {
		fmt.Fprintf(w, "  %s\n", snip)
	}
	fmt.Fprintln(w)
}

// Detail prints a single entry in full, with the answer body after a
// blank separator line.
func Detail(w io.Writer, e *store.Entry, answer string) {
	fmt.Fprintf(w, "ID:       %d\n", e.ID)
	fmt.Fprintf(w, "Agent:    %s\n", e.Agent)
	fmt.Fprintf(w, "Created:  %s\n", created(e))
	fmt.Fprintf(w, "Source:   %s\n", e.SourceFile)
	fmt.Fprintf(w, "Question: %s\n", e.Question)
	fmt.Fprintln(w)
	fmt.Fprintln(w, answer)
}

// Stats prints aggregate archive statistics with agents in stable order.
func Stats(w io.Writer, st *store.Stats) {
	fmt.Fprintf(w, "Total entries: %d\n", st.Total)

	agents := make([]string, 0, len(st.PerAgent))
	for a := range st.PerAgent {
		agents = append(agents, a)
	}
	sort.Strings(agents)
	for _, a := range agents {
		fmt.Fprintf(w, "  %-7s %d\n", a, st.PerAgent[a])
	}

	if st.Oldest != "" {
		fmt.Fprintf(w, "Oldest:  %s\n", st.Oldest)
	}
	if st.Newest != "" {
		fmt.Fprintf(w, "Newest:  %s\n", st.Newest)
	}
}
