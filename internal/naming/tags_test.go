package naming

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeparateTags(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantTags    string
		wantSummary string
	}{
		{
			name:        "leading adjacent tags",
			raw:         "[Lorem][Ipsum] Dolor sit amet",
			wantTags:    "[Lorem][Ipsum]",
			wantSummary: "Dolor sit amet",
		},
		{
			name:        "no tags",
			raw:         "  Fix login  ",
			wantTags:    "",
			wantSummary: "Fix login",
		},
		{
			name:        "tags interleaved with text keep order",
			raw:         "[FE] Broken [Checkout] button",
			wantTags:    "[FE][Checkout]",
			wantSummary: "Broken  button",
		},
		{
			name:        "empty input",
			raw:         "",
			wantTags:    "",
			wantSummary: "",
		},
		{
			name:        "unmatched open bracket swallows the rest",
			raw:         "Fix [WIP login page",
			wantTags:    "[WIP login page",
			wantSummary: "Fix",
		},
		{
			name:        "unmatched close bracket is kept as tag text",
			raw:         "Fix] login",
			wantTags:    "]",
			wantSummary: "Fix login",
		},
		{
			name:        "non ascii text",
			raw:         "[Año] Corrección de café",
			wantTags:    "[Año]",
			wantSummary: "Corrección de café",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags, summary := SeparateTags(tt.raw)
			assert.Equal(t, tt.wantTags, tags)
			assert.Equal(t, tt.wantSummary, summary)
		})
	}
}

func TestSeparateTags_Lossless(t *testing.T) {
	inputs := []string{
		"[Lorem][Ipsum] Dolor sit amet",
		"a[b]c[d]e",
		"[x]",
		"plain",
	}

	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			tags, summary := SeparateTags(raw)
			assert.Equal(t, sortedRunes(strings.TrimSpace(strings.ReplaceAll(raw, " ", ""))),
				sortedRunes(strings.ReplaceAll(tags+summary, " ", "")))
		})
	}
}

func TestSeparateTags_Idempotent(t *testing.T) {
	_, summary := SeparateTags("[Lorem][Ipsum] Dolor sit amet")

	tags, again := SeparateTags(summary)

	assert.Empty(t, tags)
	assert.Equal(t, summary, again)
}

func TestSpaceBrackets(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[Lorem][Ipsum] Dolor", "[Lorem] [Ipsum] Dolor"},
		{"[A][B][C]", "[A] [B] [C]"},
		{"[A] [B]", "[A] [B]"},
		{"no brackets", "no brackets"},
		{"][", "] ["},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SpaceBrackets(tt.in))
		})
	}
}

func TestStripMarkup(t *testing.T) {
	assert.Equal(t, "alert(1)", StripMarkup("<script>alert(1)</script>"))
	assert.Equal(t, "be", StripMarkup("<b>be</b>"))
	assert.Equal(t, "a < b", StripMarkup("a < b"))
}

func sortedRunes(s string) string {
	r := []rune(s)
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return string(r)
}
