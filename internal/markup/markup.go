// Package markup classifies an entry's rich answer form and strips tags for
// plain-text display. Imports store answers as either markdown-ish plain
// text or raw HTML; the stored column doesn't carry a type, so consumers
// sniff the content instead.
package markup

import (
	"regexp"
	"strings"
)

// Kind is the sniffed answer form.
type Kind int

const (
	// Plain is markdown or unstructured text, rendered as-is.
	Plain Kind = iota
	// HTML is tag-structured content that needs stripping before plain display.
	HTML
)

var closingTag = regexp.MustCompile(`(?is)</[a-z][\s\S]*?>`)

// Classify sniffs whether content is HTML. Content counts as HTML only when
// it starts with a tag and contains at least one closing tag, which keeps
// markdown like "<br> separated" or a bare "< 5" classified as Plain.
func Classify(content string) Kind {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || !strings.HasPrefix(trimmed, "<") {
		return Plain
	}
	if closingTag.MatchString(trimmed) {
		return HTML
	}
	return Plain
}

var (
	tags       = regexp.MustCompile(`<[^>]*>`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Strip removes HTML tags and collapses whitespace for plain-text contexts
// such as search snippets.
func Strip(s string) string {
	if s == "" {
		return ""
	}
	out := tags.ReplaceAllString(s, " ")
	out = whitespace.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}
