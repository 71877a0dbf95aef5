package models

type (
	// NamePair is one generated branch name and PR title.
	NamePair struct {
		Branch  string       `json:"branch"`
		PRTitle string       `json:"pr_title"`
		Extra   ExtraTagPair `json:"extra"`
	}

	// Suggestion is everything derived for one ticket view.
	Suggestion struct {
		Ticket       Ticket        `json:"ticket"`
		OriginalTags string        `json:"original_tags"`
		Summary      string        `json:"summary"`
		Roles        RoleFlags     `json:"roles"`
		Options      FormatOptions `json:"options"`
		ExtraEnabled bool          `json:"extra_tags_enabled"`
		Pairs        []NamePair    `json:"pairs"`
	}
)

// Lines flattens the pairs into the numbered list shown to the user:
// branch, title, branch, title...
func (s *Suggestion) Lines() []string {
	lines := make([]string, 0, len(s.Pairs)*2)
	for _, p := range s.Pairs {
		lines = append(lines, p.Branch, p.PRTitle)
	}
	return lines
}
