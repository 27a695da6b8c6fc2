// Package importer parses chat history exports into archive entries.
// Each agent has its own export format and its own file in this package;
// this file holds the pieces they share: options, result accounting,
// deduplication hashing, and timestamp normalization.
package importer

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/jpl-au/chatarc/internal/store"
	"golang.org/x/crypto/blake2b"
)

// Options configures an import operation.
type Options struct {
	Limit  int  // Stop after this many inserted entries (<=0 = no limit)
	DryRun bool // Parse and count without writing to the store
}

// Result contains the outcome of an import operation.
type Result struct {
	Inserted int // Entries written to the store
	Skipped  int // Duplicates already present (matched by content hash)
}

// contentHash builds a stable deduplication hash from the given parts,
// joined with "|" so field boundaries can't shift between runs.
func contentHash(parts ...string) string {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic("blake2b.New256 failed: " + err.Error())
	}
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte("|"))
		}
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// normalizeISO converts an ISO timestamp like 2025-11-22T06:38:55.879766Z
// into "YYYY-MM-DD HH:MM:SS" for consistent lexicographic sorting.
// Returns nil for empty input so the column stays NULL.
func normalizeISO(iso string) *string {
	if iso == "" {
		return nil
	}
	s := strings.TrimSpace(iso)
	s = strings.ReplaceAll(s, "Z", "")
	s = strings.ReplaceAll(s, "+00:00", "")
	if date, rest, found := strings.Cut(s, "T"); found {
		// drop fractional seconds
		timePart, _, _ := strings.Cut(rest, ".")
		s = date + " " + timePart
	}
	return &s
}

// insert writes one entry, translating a duplicate hash into a skip.
func insert(ctx context.Context, w store.Writer, e store.Entry, res *Result) error {
	_, err := w.Insert(ctx, e)
	if errors.Is(err, store.ErrDuplicate) {
		res.Skipped++
		return nil
	}
	if err != nil {
		return err
	}
	res.Inserted++
	return nil
}
