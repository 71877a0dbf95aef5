package naming

import (
	"strings"

	"github.com/thomas-vilte/branchmate/internal/regex"
)

// SeparateTags splits a raw summary into its bracket tags and the remaining
// text. Tags are concatenated in order of appearance with no separator.
//
//	SeparateTags("[Lorem][Ipsum] Dolor sit amet") // "[Lorem][Ipsum]", "Dolor sit amet"
//
// Brackets are not validated: an unmatched "[" turns the rest of the text into
// tag content, and an unmatched "]" lands in the tags and closes nothing.
func SeparateTags(raw string) (tags, summary string) {
	var tagBuf, summaryBuf strings.Builder
	inside := false

	for _, r := range raw {
		switch {
		case r == '[':
			tagBuf.WriteRune(r)
			inside = true
		case r == ']':
			tagBuf.WriteRune(r)
			inside = false
		case inside:
			tagBuf.WriteRune(r)
		default:
			summaryBuf.WriteRune(r)
		}
	}

	return strings.TrimSpace(tagBuf.String()), strings.TrimSpace(summaryBuf.String())
}

// SpaceBrackets inserts a single space between every "]" directly followed by
// "[". Nothing else changes.
func SpaceBrackets(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)
		if r == ']' && i+1 < len(runes) && runes[i+1] == '[' {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// StripMarkup removes anything that looks like a markup tag from user input.
func StripMarkup(s string) string {
	return regex.MarkupTag.ReplaceAllString(s, "")
}
