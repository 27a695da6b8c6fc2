// gemini.go imports Gemini activity HTML exports (Google Takeout).
//
// The export is a flat HTML document of "outer-cell" blocks, one per
// prompt. The left content cell holds the prompt line, a timestamp line,
// and the answer; the right cell holds attachment markup. The cells use
// <br> as the only line separator, so parsing works on <br>-split lines
// rather than on the tag tree.
//
// The question line is identified by a configurable prefix (exports are
// localised - "Prompt", "Pokyn", ...), the timestamp line by a
// day.month.year pattern. Blocks missing either are skipped rather than
// guessed at.

package importer

import (
	"context"
	"fmt"
	"html"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/jpl-au/chatarc/internal/agent"
	"github.com/jpl-au/chatarc/internal/progress"
	"github.com/jpl-au/chatarc/internal/store"
)

var (
	geminiBlockMarker = `<div class="outer-cell`
	geminiCellMarker  = `<div class="content-cell`

	brRe        = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagRe       = regexp.MustCompile(`<[^>]*>`)
	timestampRe = regexp.MustCompile(`\d{1,2}\.\s*\d{1,2}\.\s*\d{4}\s+\d{1,2}:\d{2}:\d{2}`)
	// Czech timezone labels carry no extra information; lexicographic
	// sorting works on the local wall-clock time.
	tzSuffixRe = regexp.MustCompile(`\s+(SEČ|SELČ)\s*$`)
)

// Timestamp layouts seen in Gemini exports, e.g. "12. 1. 2026 19:01:56".
var geminiLayouts = []string{
	"2. 1. 2006 15:04:05",
	"2.1.2006 15:04:05",
}

// ImportGemini parses a Gemini HTML export into the store. The prefix
// identifies question lines in the export's language (e.g. "Prompt").
func ImportGemini(ctx context.Context, w store.Writer, path, prefix string, opts Options) (Result, error) {
	var res Result

	if strings.TrimSpace(prefix) == "" {
		return res, fmt.Errorf("a question prefix is required (the label before each prompt, e.g. %q)", "Prompt")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return res, err
	}

	blocks := strings.Split(string(data), geminiBlockMarker)
	if len(blocks) > 0 {
		// Everything before the first block marker is page chrome.
		blocks = blocks[1:]
	}

	prog := progress.New("Importing gemini", len(blocks))
	defer prog.Done()

	for _, block := range blocks {
		prog.Increment()
		prog.Print()

		if opts.Limit > 0 && res.Inserted >= opts.Limit {
			break
		}

		e, ok := parseGeminiBlock(block, path, prefix)
		if !ok {
			continue
		}
		if opts.DryRun {
			res.Inserted++
			continue
		}
		if err := insert(ctx, w, e, &res); err != nil {
			return res, err
		}
	}

	return res, nil
}

// parseGeminiBlock extracts one entry from an outer-cell block. Returns
// ok=false for blocks without an identifiable question and timestamp.
func parseGeminiBlock(block, sourceFile, prefix string) (store.Entry, bool) {
	left, right := geminiCells(block)
	if left == "" {
		return store.Entry{}, false
	}

	lines := splitOnBreaks(left)

	questionIdx := -1
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), strings.ToLower(prefix)) {
			questionIdx = i
			break
		}
	}
	if questionIdx == -1 {
		return store.Entry{}, false
	}

	timestampIdx := -1
	for i := questionIdx + 1; i < len(lines); i++ {
		if timestampRe.MatchString(lines[i]) {
			timestampIdx = i
			break
		}
	}
	if timestampIdx == -1 {
		return store.Entry{}, false
	}

	question := stripQuestionPrefix(lines[questionIdx], prefix)
	createdAtRaw, createdAt := parseGeminiTimestamp(lines[timestampIdx])

	var answerLines []string
	for _, line := range lines[timestampIdx+1:] {
		answerLines = append(answerLines, strings.TrimSpace(line))
	}
	answerPlain := strings.TrimSpace(strings.Join(answerLines, "\n"))

	if question == "" || answerPlain == "" {
		return store.Entry{}, false
	}

	var attachments *string
	if trimmed := strings.TrimSpace(right); trimmed != "" {
		attachments = &trimmed
	}

	return store.Entry{
		Agent:          agent.Gemini,
		SourceFile:     sourceFile,
		Question:       question,
		CreatedAtRaw:   createdAtRaw,
		CreatedAt:      createdAt,
		AnswerPlain:    answerPlain,
		AnswerHTML:     answerHTMLAfterTimestamp(left, createdAtRaw),
		AttachmentsRaw: attachments,
		ContentHash:    hashPtr(contentHash(agent.Gemini, sourceFile, question, createdAtRaw, answerPlain)),
	}, true
}

// geminiCells returns the inner HTML of the left (Q&A) and right
// (attachments) content cells of a block. Takeout content cells contain
// no nested divs, so the first </div> closes the cell.
func geminiCells(block string) (left, right string) {
	rest := block
	for {
		start := strings.Index(rest, geminiCellMarker)
		if start == -1 {
			return left, right
		}
		rest = rest[start+len(geminiCellMarker):]

		classEnd := strings.Index(rest, `"`)
		tagEnd := strings.Index(rest, ">")
		if classEnd == -1 || tagEnd == -1 {
			return left, right
		}
		class := rest[:classEnd]

		inner := rest[tagEnd+1:]
		if end := strings.Index(inner, "</div>"); end != -1 {
			inner = inner[:end]
		}

		if strings.Contains(class, "text-right") {
			if right == "" {
				right = inner
			}
		} else if left == "" {
			left = inner
		}
		rest = rest[tagEnd+1:]
	}
}

// splitOnBreaks converts inner HTML into logical text lines: <br> is the
// separator, all other tags are dropped, entities are decoded.
func splitOnBreaks(innerHTML string) []string {
	segments := brRe.Split(innerHTML, -1)
	lines := make([]string, len(segments))
	for i, seg := range segments {
		text := tagRe.ReplaceAllString(seg, "")
		text = html.UnescapeString(text)
		lines[i] = strings.ReplaceAll(text, "\u00a0", " ")
	}
	return lines
}

// stripQuestionPrefix removes the configured prefix from the question line
// case-insensitively, if the line starts with it.
func stripQuestionPrefix(line, prefix string) string {
	line = strings.TrimSpace(strings.ReplaceAll(line, "\u00a0", " "))
	if len(line) >= len(prefix) && strings.EqualFold(line[:len(prefix)], prefix) {
		line = strings.TrimSpace(strings.TrimLeft(line[len(prefix):], " \u00a0"))
	}
	return line
}

// parseGeminiTimestamp returns the raw timestamp line plus its normalized
// "YYYY-MM-DD HH:MM:SS" form, or nil when the format isn't recognised.
func parseGeminiTimestamp(line string) (raw string, normalized *string) {
	raw = strings.TrimSpace(line)
	withoutTZ := tzSuffixRe.ReplaceAllString(raw, "")

	for _, layout := range geminiLayouts {
		t, err := time.Parse(layout, withoutTZ)
		if err == nil {
			s := t.Format("2006-01-02 15:04:05")
			return raw, &s
		}
	}
	return raw, nil
}

// answerHTMLAfterTimestamp cuts the answer markup out of the cell: find
// the timestamp text, then the first <br> after it; everything beyond that
// <br> is the answer. Entities are decoded first so the timestamp (taken
// from decoded lines) can be located in the markup. Falls back to the
// whole cell when the timestamp isn't found.
func answerHTMLAfterTimestamp(innerHTML, createdAtRaw string) string {
	normalized := strings.ReplaceAll(html.UnescapeString(innerHTML), "\u00a0", " ")
	ts := strings.ReplaceAll(createdAtRaw, "\u00a0", " ")

	idx := strings.Index(normalized, ts)
	if idx == -1 {
		return strings.TrimSpace(normalized)
	}

	loc := brRe.FindStringIndex(normalized[idx:])
	if loc == nil {
		return strings.TrimSpace(normalized)
	}

	return strings.TrimSpace(normalized[idx+loc[1]:])
}
