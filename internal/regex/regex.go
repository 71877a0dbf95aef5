package regex

import "regexp"

var (
	// Ticket patterns
	TicketKey = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*-\d+$`)
	BugType   = regexp.MustCompile(`(?i)bug`)

	// Markup-like substrings stripped from user entered tags
	MarkupTag = regexp.MustCompile(`<[^>]+>`)

	// Settings table edit: "branch:pr", "branch:" or ":pr"
	TagPair = regexp.MustCompile(`^([^:]*):(.*)$`)
)
