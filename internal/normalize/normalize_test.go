package normalize_test

import (
	"testing"
	"unicode/utf8"

	"github.com/jpl-au/chatarc/internal/normalize"
	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"ascii passthrough", "hello world", "hello world"},
		{"lower-cases", "The Export Completed", "the export completed"},
		{"czech diacritics", "možná", "mozna"},
		{"mixed diacritics", "Příliš žluťoučký kůň", "prilis zlutoucky kun"},
		{"accented caps", "ÚČET", "ucet"},
		{"digits and punctuation", "č. 42!", "c. 42!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Fold(tt.in))
		})
	}
}

func TestPreserveLength(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"ascii", "Hello", "hello"},
		{"czech", "možná", "mozna"},
		{"uppercase accents", "ŽLUŤOUČKÝ", "zlutoucky"},
		{"unmapped runes kept", "日本語 ok", "日本語 ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.PreserveLength(tt.in))
		})
	}
}

// Rune count must be preserved for every input; snippet offsets depend on it.
func TestPreserveLength_RuneCount(t *testing.T) {
	inputs := []string{
		"",
		"plain ascii",
		"možná ano, možná ne",
		"Příliš žluťoučký kůň úpěl ďábelské ódy",
		"mixed 字 and ě",
		string([]byte{0xff, 0xfe, 'a'}), // malformed UTF-8
	}
	for _, in := range inputs {
		out := normalize.PreserveLength(in)
		assert.Equal(t, utf8.RuneCountInString(in), utf8.RuneCountInString(out), "input %q", in)
	}
}

func TestFold_MatchesPreserveLengthForCoveredScripts(t *testing.T) {
	// For text covered by the accent table both normalisations agree, which
	// is what keeps FTS matches and highlight offsets consistent.
	for _, s := range []string{"možná", "Příliš žluťoučký kůň", "Úřad"} {
		assert.Equal(t, normalize.Fold(s), normalize.PreserveLength(s))
	}
}
