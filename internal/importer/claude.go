// claude.go imports Claude conversations.json exports.
//
// The export is one large JSON array of conversations. It is streamed with
// json.Decoder token reads so only one conversation is decoded at a time,
// which keeps memory flat for multi-gigabyte exports.
//
// Each human message plus the block of assistant messages that follows it
// becomes one archive entry. Consecutive assistant messages are joined with
// a blank line; pairs with no assistant answer are dropped.

package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jpl-au/chatarc/internal/agent"
	"github.com/jpl-au/chatarc/internal/progress"
	"github.com/jpl-au/chatarc/internal/store"
)

type claudeMessage struct {
	UUID        string            `json:"uuid"`
	Sender      string            `json:"sender"`
	Text        string            `json:"text"`
	CreatedAt   string            `json:"created_at"`
	Attachments []json.RawMessage `json:"attachments"`
	Files       []json.RawMessage `json:"files"`
}

type claudeConversation struct {
	UUID         string          `json:"uuid"`
	Name         string          `json:"name"`
	ChatMessages []claudeMessage `json:"chat_messages"`
}

// claudePair is one question/answer extracted from a conversation.
type claudePair struct {
	entry     store.Entry
	humanUUID string
}

// ImportClaude streams a Claude conversations.json export into the store.
func ImportClaude(ctx context.Context, w store.Writer, path string, opts Options) (Result, error) {
	var res Result

	f, err := os.Open(path)
	if err != nil {
		return res, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)

	// Opening bracket of the conversations array.
	tok, err := dec.Token()
	if err != nil {
		return res, fmt.Errorf("reading %s: %w", path, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return res, fmt.Errorf("reading %s: expected a JSON array of conversations", path)
	}

	spin := progress.NewSpinner("Importing claude")
	spin.Start()
	defer spin.Stop()

	for dec.More() {
		var conv claudeConversation
		if err := dec.Decode(&conv); err != nil {
			return res, fmt.Errorf("decoding conversation: %w", err)
		}
		spin.Tick()

		for _, pair := range extractPairs(conv, path) {
			if opts.Limit > 0 && res.Inserted >= opts.Limit {
				return res, nil
			}
			if opts.DryRun {
				res.Inserted++
				continue
			}
			if err := insert(ctx, w, pair.entry, &res); err != nil {
				return res, err
			}
		}
	}

	return res, nil
}

// extractPairs walks a conversation's messages and builds one entry per
// human message followed by at least one assistant reply.
func extractPairs(conv claudeConversation, sourceFile string) []claudePair {
	msgs := conv.ChatMessages
	var pairs []claudePair

	for i := 0; i < len(msgs); {
		msg := msgs[i]
		if strings.ToLower(msg.Sender) != "human" {
			i++
			continue
		}

		question := strings.TrimSpace(msg.Text)
		createdAtRaw := msg.CreatedAt
		attachments := claudeAttachments(msg)

		// Collect all following assistant messages until the next human turn.
		var answerParts []string
		i++
		for i < len(msgs) {
			next := msgs[i]
			sender := strings.ToLower(next.Sender)
			if sender == "human" {
				break
			}
			if sender == "assistant" {
				if text := strings.TrimSpace(next.Text); text != "" {
					answerParts = append(answerParts, text)
				}
			}
			i++
		}

		answer := strings.Join(answerParts, "\n\n")
		if answer == "" {
			continue
		}

		pairs = append(pairs, claudePair{
			humanUUID: msg.UUID,
			entry: store.Entry{
				Agent:          agent.Claude,
				SourceFile:     sourceFile,
				Question:       question,
				CreatedAtRaw:   createdAtRaw,
				CreatedAt:      normalizeISO(createdAtRaw),
				AnswerPlain:    answer,
				AnswerHTML:     answer, // Claude exports plain/markdown text
				AttachmentsRaw: attachments,
				ContentHash:    hashPtr(contentHash(conv.UUID, msg.UUID, answer)),
			},
		})
	}

	return pairs
}

// claudeAttachments preserves the message's attachment and file metadata
// verbatim as one JSON object, or nil when there is none.
func claudeAttachments(msg claudeMessage) *string {
	if len(msg.Attachments) == 0 && len(msg.Files) == 0 {
		return nil
	}
	raw, err := json.Marshal(struct {
		Attachments []json.RawMessage `json:"attachments"`
		Files       []json.RawMessage `json:"files"`
	}{
		Attachments: emptyIfNil(msg.Attachments),
		Files:       emptyIfNil(msg.Files),
	})
	if err != nil {
		return nil
	}
	s := string(raw)
	return &s
}

func emptyIfNil(raw []json.RawMessage) []json.RawMessage {
	if raw == nil {
		return []json.RawMessage{}
	}
	return raw
}

func hashPtr(h string) *string { return &h }
