package naming

import (
	"strings"

	"github.com/thomas-vilte/branchmate/internal/models"
	"github.com/thomas-vilte/branchmate/internal/regex"
)

const (
	PrefixBugfix  = "bugfix"
	PrefixFeature = "feature"

	// titleSeparator goes between the tag block and the summary of a PR title.
	titleSeparator = "\u00A0"
)

// Input is what the composer needs for one ticket view.
type Input struct {
	Key        string
	Type       string
	RawSummary string
	Roles      models.RoleFlags
	Options    models.FormatOptions
}

// BranchPrefix picks the branch prefix from the ticket type.
func BranchPrefix(ticketType string) string {
	if regex.BugType.MatchString(ticketType) {
		return PrefixBugfix
	}
	return PrefixFeature
}

// Compose builds one branch name and PR title, using extra as the custom tag
// pair for this entry. Empty extra values are left out.
func Compose(in Input, extra models.ExtraTagPair) models.NamePair {
	return models.NamePair{
		Branch:  branchName(in, extra.Branch),
		PRTitle: prTitle(in, extra.PR),
		Extra:   extra,
	}
}

// ComposeAll fans out over the stored extra tag pairs. With extra tags
// disabled, or nothing stored, exactly one result with empty extra tags is
// produced.
func ComposeAll(in Input, pairs []models.ExtraTagPair, extraEnabled bool) []models.NamePair {
	if !extraEnabled || len(pairs) == 0 {
		return []models.NamePair{Compose(in, models.ExtraTagPair{})}
	}

	result := make([]models.NamePair, 0, len(pairs))
	for _, p := range pairs {
		result = append(result, Compose(in, p))
	}
	return result
}

func branchName(in Input, extraTag string) string {
	name := BranchPrefix(in.Type) + "/" + in.Key
	if extraTag != "" {
		name += "-" + extraTag
	}
	return name
}

func prTitle(in Input, extraTag string) string {
	sep := ""
	if in.Options.AddSpaceBetween {
		sep = " "
	}

	var b strings.Builder
	b.WriteString("[" + in.Key + "]")

	for _, role := range models.TitleRoleOrder {
		if in.Roles.Enabled(role) {
			b.WriteString(sep + "[" + string(role) + "]")
		}
	}

	if extraTag != "" {
		b.WriteString(sep + "[" + extraTag + "]")
	}

	tags, summary := SeparateTags(in.RawSummary)
	if in.Options.KeepOriginalTags && tags != "" {
		if in.Options.AddSpaceBetween {
			tags = SpaceBrackets(tags)
		}
		b.WriteString(sep + tags)
	}

	b.WriteString(titleSeparator)
	b.WriteString(summary)
	return b.String()
}
