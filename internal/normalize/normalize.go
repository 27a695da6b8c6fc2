// Package normalize provides the two text normalisations the archive relies on.
//
// Fold produces the canonical form stored in the *_norm columns and used to
// build FTS query terms: decomposed, stripped of combining marks, lower-cased.
// Its output length may differ from the input, so it must never be used to
// compute offsets into the original string.
//
// PreserveLength maps each rune 1:1 through an explicit accent table, so an
// index found in its output is a valid index into the original text. Snippet
// extraction and highlighting depend on that guarantee.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// folder decomposes to NFD, removes combining marks, and recomposes.
// Built once; transform chains are stateless between Fold calls because
// transform.String resets them.
var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold returns the canonical, diacritic-stripped, lower-cased form of s.
// Empty input is returned unchanged. Fold is total: if the transform chain
// fails on malformed input, the lower-cased input is returned instead.
func Fold(s string) string {
	if s == "" {
		return s
	}
	out, _, err := transform.String(folder, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// accentTable maps accented runes to their base letter, covering Czech and
// the common Latin-extended range. Uppercase entries map straight to the
// lower-case base so one lookup handles both case and diacritics.
var accentTable = map[rune]rune{
	'á': 'a', 'à': 'a', 'â': 'a', 'ä': 'a', 'ã': 'a', 'å': 'a', 'ā': 'a', 'ǎ': 'a', 'ą': 'a',
	'Á': 'a', 'À': 'a', 'Â': 'a', 'Ä': 'a', 'Ã': 'a', 'Å': 'a', 'Ā': 'a', 'Ǎ': 'a', 'Ą': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e', 'ě': 'e', 'ē': 'e', 'ę': 'e',
	'É': 'e', 'È': 'e', 'Ê': 'e', 'Ë': 'e', 'Ě': 'e', 'Ē': 'e', 'Ę': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i', 'ī': 'i', 'ǐ': 'i',
	'Í': 'i', 'Ì': 'i', 'Î': 'i', 'Ï': 'i', 'Ī': 'i', 'Ǐ': 'i',
	'ó': 'o', 'ò': 'o', 'ô': 'o', 'ö': 'o', 'õ': 'o', 'ō': 'o', 'ǒ': 'o', 'ø': 'o',
	'Ó': 'o', 'Ò': 'o', 'Ô': 'o', 'Ö': 'o', 'Õ': 'o', 'Ō': 'o', 'Ǒ': 'o', 'Ø': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u', 'ū': 'u', 'ǔ': 'u', 'ů': 'u',
	'Ú': 'u', 'Ù': 'u', 'Û': 'u', 'Ü': 'u', 'Ū': 'u', 'Ǔ': 'u', 'Ů': 'u',
	'ý': 'y', 'ÿ': 'y', 'ŷ': 'y', 'ỳ': 'y', 'Ý': 'y', 'Ŷ': 'y', 'Ỳ': 'y',
	'č': 'c', 'ċ': 'c', 'ç': 'c', 'ć': 'c', 'Č': 'c', 'Ċ': 'c', 'Ç': 'c', 'Ć': 'c',
	'ď': 'd', 'ḋ': 'd', 'đ': 'd', 'Ď': 'd', 'Ḋ': 'd', 'Đ': 'd',
	'ň': 'n', 'ñ': 'n', 'ņ': 'n', 'ń': 'n', 'Ň': 'n', 'Ñ': 'n', 'Ņ': 'n', 'Ń': 'n',
	'ř': 'r', 'ŕ': 'r', 'ṙ': 'r', 'Ř': 'r', 'Ŕ': 'r', 'Ṙ': 'r',
	'š': 's', 'ś': 's', 'ŝ': 's', 'ş': 's', 'Š': 's', 'Ś': 's', 'Ŝ': 's', 'Ş': 's',
	'ť': 't', 'ṫ': 't', 'ŧ': 't', 'Ť': 't', 'Ṫ': 't', 'Ŧ': 't',
	'ž': 'z', 'ź': 'z', 'ż': 'z', 'Ž': 'z', 'Ź': 'z', 'Ż': 'z',
}

// PreserveLength lower-cases s rune by rune, folding accented runes through
// accentTable. The output always has the same rune count as the input, so
// any rune index found in the output is valid in the original string.
func PreserveLength(s string) string {
	if s == "" {
		return ""
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if base, ok := accentTable[r]; ok {
			out = append(out, base)
			continue
		}
		out = append(out, unicode.ToLower(r))
	}
	return string(out)
}
