// Package snippet extracts display excerpts from entry text around a search
// match. Matching is done on the length-preserving normalisation so a query
// without diacritics still lands on the accented original, and the returned
// slices always come from the original string.
//
// All functions are pure and total: empty text, empty queries, and queries
// longer than the text fall back to plain truncation instead of failing.
// Offsets are computed in runes, not bytes, so multi-byte characters never
// split a slice boundary.
package snippet

import (
	"strings"

	"github.com/jpl-au/chatarc/internal/normalize"
)

// Ellipsis marks truncated edges of a snippet.
const Ellipsis = "…"

// Truncate returns s unchanged when it fits within max runes, otherwise the
// first max-1 runes with an ellipsis appended.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max < 1 {
		return Ellipsis
	}
	return string(r[:max-1]) + Ellipsis
}

// Around returns a window of roughly max runes centred on the first
// normalised occurrence of query in text. The window starts half the width
// before the match and is clamped to the text bounds; when the right edge
// clamps, the window shifts left to keep its full width. Cut edges are
// marked with "… " and " …". No match falls back to Truncate.
func Around(text, query string, max int) string {
	q := strings.TrimSpace(query)
	r := []rune(text)
	if q == "" || len(r) <= max {
		return Truncate(text, max)
	}

	textNorm := []rune(normalize.PreserveLength(text))
	qNorm := normalize.PreserveLength(q)
	idx := runeIndex(textNorm, qNorm)
	if idx < 0 {
		return Truncate(text, max)
	}

	half := max / 2
	start := idx - half
	if start < 0 {
		start = 0
	}
	end := start + max
	if end > len(r) {
		end = len(r)
	}
	if end-start < max && start > 0 {
		start = end - max
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString(Ellipsis + " ")
	}
	b.WriteString(string(r[start:end]))
	if end < len(r) {
		b.WriteString(" " + Ellipsis)
	}
	return b.String()
}

// Match is the three-way split Highlight produces. The Hit segment is sliced
// from the original text, so it keeps the original diacritics and casing.
type Match struct {
	Before string
	Hit    string
	After  string
	Found  bool
}

// Highlight locates the first normalised occurrence of query in text and
// splits the original text around it. The hit width is the query's own rune
// length — normalisation is length-preserving, so the slice stays aligned.
// When the query is blank or absent from the text, the whole text is
// returned in Before with Found false.
func Highlight(text, query string) Match {
	q := strings.TrimSpace(query)
	if q == "" {
		return Match{Before: text}
	}

	textNorm := []rune(normalize.PreserveLength(text))
	qNorm := normalize.PreserveLength(q)
	idx := runeIndex(textNorm, qNorm)
	if idx < 0 {
		return Match{Before: text}
	}

	r := []rune(text)
	qLen := len([]rune(q))
	end := idx + qLen
	if end > len(r) {
		end = len(r)
	}
	return Match{
		Before: string(r[:idx]),
		Hit:    string(r[idx:end]),
		After:  string(r[end:]),
		Found:  true,
	}
}

// runeIndex returns the rune offset of the first occurrence of needle in
// haystack, or -1. strings.Index gives a byte offset; converting the prefix
// back to runes yields the offset both normalisations agree on.
func runeIndex(haystack []rune, needle string) int {
	byteIdx := strings.Index(string(haystack), needle)
	if byteIdx < 0 {
		return -1
	}
	return len([]rune(string(haystack)[:byteIdx]))
}
