package tags

import (
	"context"
	"fmt"
	"io"

	"github.com/thomas-vilte/branchmate/internal/config"
	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
	"github.com/thomas-vilte/branchmate/internal/i18n"
	"github.com/thomas-vilte/branchmate/internal/models"
	"github.com/thomas-vilte/branchmate/internal/regex"
	"github.com/thomas-vilte/branchmate/internal/services"
	"github.com/thomas-vilte/branchmate/internal/ui"
	"github.com/urfave/cli/v3"
)

type TagsCommandFactory struct {
	namingService services.NamingServiceProvider
}

func NewTagsCommandFactory(namingService services.NamingServiceProvider) *TagsCommandFactory {
	return &TagsCommandFactory{namingService: namingService}
}

func (f *TagsCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "tags",
		Usage: t.GetMessage("tags_command_usage", 0, nil),
		Commands: []*cli.Command{
			f.newShowCommand(t),
			f.newSetCommand(t),
			f.newEnableCommand(t, "enable", true),
			f.newEnableCommand(t, "disable", false),
		},
	}
}

func (f *TagsCommandFactory) newShowCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     t.GetMessage("tags_show_usage", 0, nil),
		ArgsUsage: "PROJECT",
		Action: func(ctx context.Context, command *cli.Command) error {
			project := command.Args().First()
			if project == "" {
				return domainErrors.ErrInvalidTicketKey.WithContext("missing", "PROJECT")
			}

			svc, err := f.namingService(ctx)
			if err != nil {
				return err
			}
			p := svc.Preferences()

			enabled, err := p.ExtraTagsEnabled(ctx)
			if err != nil {
				return err
			}
			pairs, err := p.ExtraTags(ctx, project)
			if err != nil {
				return err
			}

			printTags(command.Root().Writer, t, project, enabled, pairs)
			return nil
		},
	}
}

func (f *TagsCommandFactory) newSetCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     t.GetMessage("tags_set_usage", 0, nil),
		ArgsUsage: "PROJECT [branch:pr ...]",
		Action: func(ctx context.Context, command *cli.Command) error {
			args := command.Args().Slice()
			if len(args) == 0 {
				return domainErrors.ErrInvalidTicketKey.WithContext("missing", "PROJECT")
			}
			project := args[0]

			rows := make([]models.ExtraTagPair, 0, len(args)-1)
			for _, arg := range args[1:] {
				pair, err := ParsePair(arg)
				if err != nil {
					return err
				}
				rows = append(rows, pair)
			}

			svc, err := f.namingService(ctx)
			if err != nil {
				return err
			}
			p := svc.Preferences()

			saved, err := p.SaveExtraTags(ctx, project, rows)
			if err != nil {
				return err
			}
			enabled, err := p.ExtraTagsEnabled(ctx)
			if err != nil {
				return err
			}

			w := command.Root().Writer
			ui.PrintSuccess(w, t.GetMessage("tags_saved", len(saved), map[string]interface{}{"Count": len(saved), "Project": project}))
			if !enabled {
				ui.PrintWarning(w, t.GetMessage("tags_disabled_warning", 0, nil))
			}
			return nil
		},
	}
}

func (f *TagsCommandFactory) newEnableCommand(t *i18n.Translations, name string, on bool) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: t.GetMessage("tags_"+name+"_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			svc, err := f.namingService(ctx)
			if err != nil {
				return err
			}
			if err := svc.Preferences().SetExtraTagsEnabled(ctx, on); err != nil {
				return err
			}
			ui.PrintSuccess(command.Root().Writer, t.GetMessage("tags_"+name+"d", 0, nil))
			return nil
		},
	}
}

// ParsePair reads "branch:pr". Either side may be empty.
func ParsePair(arg string) (models.ExtraTagPair, error) {
	m := regex.TagPair.FindStringSubmatch(arg)
	if m == nil {
		return models.ExtraTagPair{}, domainErrors.ErrInvalidTagPair.WithContext("value", arg)
	}
	return models.ExtraTagPair{Branch: m[1], PR: m[2]}, nil
}

func printTags(w io.Writer, t *i18n.Translations, project string, enabled bool, pairs []models.ExtraTagPair) {
	_, _ = fmt.Fprintf(w, "%s %s\n", ui.Checkbox(enabled), t.GetMessage("panel_extra_tags_label", 0, nil))
	_, _ = fmt.Fprintf(w, "%s\n", t.GetMessage("tags_for_project", 0, map[string]interface{}{"Project": project}))
	if len(pairs) == 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", ui.Dim.Sprint(t.GetMessage("tags_none", 0, nil)))
		return
	}
	for i, p := range pairs {
		_, _ = fmt.Fprintf(w, "  %d. %s : %s\n", i+1, p.Branch, p.PR)
	}
}
