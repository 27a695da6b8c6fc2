// Package exporter writes archive entries as JSON, backing the export
// command and the /api/export.json endpoint.
package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/chatarc/internal/store"
)

// Options configures an export operation.
type Options struct {
	Query string // Full-text filter; empty exports everything
	Agent string // Agent filter; empty exports all agents
	Force bool   // Overwrite an existing destination file
}

// Result contains the outcome of an export operation.
type Result struct {
	Exported int    // Number of entries written
	Path     string // Destination file, empty when streamed
}

// WriteJSON encodes entries as an indented JSON array. An empty set
// encodes as [] rather than null.
func WriteJSON(w io.Writer, entries []store.Entry) error {
	out := make([]store.EntryJSON, len(entries))
	for i := range entries {
		out[i] = entries[i].ToJSON()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

// Run exports matching entries to dst. A dst of "" or "-" streams the
// JSON to w; otherwise it is written to the given file (".json" appended
// when missing) and a summary line goes to w.
func Run(ctx context.Context, w io.Writer, r store.Reader, dst string, opts Options) (Result, error) {
	var result Result

	entries, err := r.Export(ctx, opts.Query, opts.Agent)
	if err != nil {
		return result, err
	}
	result.Exported = len(entries)

	if dst == "" || dst == "-" {
		return result, WriteJSON(w, entries)
	}

	if !strings.HasSuffix(strings.ToLower(dst), ".json") {
		dst += ".json"
	}
	result.Path = dst

	if !opts.Force {
		if _, err := os.Stat(dst); err == nil {
			return result, fmt.Errorf("file exists: %s (use --force to overwrite)", dst)
		}
	}

	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return result, fmt.Errorf("creating destination directory: %w", err)
		}
	}

	f, err := os.Create(dst)
	if err != nil {
		return result, fmt.Errorf("creating %s: %w", dst, err)
	}
	defer f.Close()

	if err := WriteJSON(f, entries); err != nil {
		return result, fmt.Errorf("writing %s: %w", dst, err)
	}

	fmt.Fprintf(w, "Exported %d entries -> %s\n", result.Exported, dst)
	return result, nil
}
