// Package agent defines the fixed set of source systems the archive accepts.
// Destructive per-agent operations (reset) validate against this set before
// touching the store.
package agent

import (
	"errors"
	"fmt"
)

// Known source agents. Import and reset only accept these values.
const (
	Claude = "claude"
	Gemini = "gemini"
	OpenAI = "openai"
)

// All is the filter sentinel meaning "no agent restriction".
const All = ""

// ErrUnknown is returned for agent values outside the allowed set.
var ErrUnknown = errors.New("unknown agent")

// Known lists the allowed agent values in display order.
func Known() []string {
	return []string{Claude, Gemini, OpenAI}
}

// Validate returns ErrUnknown unless a is one of the known agents.
func Validate(a string) error {
	switch a {
	case Claude, Gemini, OpenAI:
		return nil
	}
	return fmt.Errorf("%w: %q (expected one of claude, gemini, openai)", ErrUnknown, a)
}

// ValidFilter reports whether a is usable as a listing/search filter:
// either the All sentinel or a known agent.
func ValidFilter(a string) bool {
	return a == All || Validate(a) == nil
}
