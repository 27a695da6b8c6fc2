package importer

import (
	"context"
	"testing"

	"github.com/jpl-au/chatarc/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const geminiExport = `<html><body>
<div class="outer-cell mdl-cell mdl-cell--12-col mdl-shadow--2dp"><div class="mdl-grid">
<div class="header-cell mdl-cell mdl-cell--12-col"><p class="mdl-typography--title">Gemini</p></div>
<div class="content-cell mdl-cell mdl-cell--6-col mdl-typography--body-1">Pokyn:&nbsp;Jak&aacute; je mo&#382;n&aacute; cesta?<br>12. 1. 2026 19:01:56 SE&#268;<br><p>Prvn&iacute; odpov&#283;&#271;</p><br>Druh&yacute; &#345;&aacute;dek</div>
<div class="content-cell mdl-cell mdl-cell--6-col mdl-typography--body-1 mdl-typography--text-right"><a href="files/x.png">attachment</a></div>
</div></div>
<div class="outer-cell mdl-cell mdl-cell--12-col mdl-shadow--2dp"><div class="mdl-grid">
<div class="content-cell mdl-cell mdl-cell--6-col mdl-typography--body-1">Pokyn: bez data<br>odpov&#283;&#271; bez &#269;asu</div>
</div></div>
</body></html>`

func TestImportGemini(t *testing.T) {
	s := setupImportStore(t)
	ctx := context.Background()
	path := writeFixture(t, "gemini.html", geminiExport)

	res, err := ImportGemini(ctx, s, path, "Pokyn:", Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted, "block without a timestamp must be skipped")

	entries, err := s.List(ctx, store.ListOptions{Agent: "gemini"})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "Jaká je možná cesta?", e.Question)
	assert.Equal(t, "12. 1. 2026 19:01:56 SEČ", e.CreatedAtRaw)
	require.NotNil(t, e.CreatedAt)
	assert.Equal(t, "2026-01-12 19:01:56", *e.CreatedAt)
	assert.Equal(t, "První odpověď\nDruhý řádek", e.AnswerPlain)
	assert.Contains(t, e.AnswerHTML, "<p>")
	assert.NotContains(t, e.AnswerHTML, "Pokyn")
	require.NotNil(t, e.AttachmentsRaw)
	assert.Contains(t, *e.AttachmentsRaw, "files/x.png")
}

func TestImportGemini_Reimport(t *testing.T) {
	s := setupImportStore(t)
	ctx := context.Background()
	path := writeFixture(t, "gemini.html", geminiExport)

	_, err := ImportGemini(ctx, s, path, "Pokyn:", Options{})
	require.NoError(t, err)

	res, err := ImportGemini(ctx, s, path, "Pokyn:", Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 1, res.Skipped)
}

func TestImportGemini_RequiresPrefix(t *testing.T) {
	s := setupImportStore(t)
	path := writeFixture(t, "gemini.html", geminiExport)

	_, err := ImportGemini(context.Background(), s, path, "  ", Options{})
	assert.ErrorContains(t, err, "prefix")
}

func TestParseGeminiTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string // "" means unparseable
	}{
		{"with timezone label", "12. 1. 2026 19:01:56 SEČ", "2026-01-12 19:01:56"},
		{"summer time label", "1. 7. 2025 08:30:00 SELČ", "2025-07-01 08:30:00"},
		{"compact", "12.1.2026 19:01:56", "2026-01-12 19:01:56"},
		{"nonsense", "yesterday at noon", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, normalized := parseGeminiTimestamp(tt.in)
			assert.Equal(t, tt.in, raw, "raw value is kept verbatim")
			if tt.want == "" {
				assert.Nil(t, normalized)
				return
			}
			require.NotNil(t, normalized)
			assert.Equal(t, tt.want, *normalized)
		})
	}
}

func TestStripQuestionPrefix(t *testing.T) {
	assert.Equal(t, "otázka", stripQuestionPrefix("Pokyn: otázka", "Pokyn:"))
	assert.Equal(t, "otázka", stripQuestionPrefix("pokyn: otázka", "Pokyn:"))
	// Lines not starting with the prefix are kept whole.
	assert.Equal(t, "viz Pokyn: otázka", stripQuestionPrefix("viz Pokyn: otázka", "Pokyn:"))
}
