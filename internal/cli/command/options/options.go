package options

import (
	"context"
	"fmt"
	"strings"

	"github.com/thomas-vilte/branchmate/internal/config"
	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
	"github.com/thomas-vilte/branchmate/internal/i18n"
	"github.com/thomas-vilte/branchmate/internal/models"
	"github.com/thomas-vilte/branchmate/internal/regex"
	"github.com/thomas-vilte/branchmate/internal/services"
	"github.com/thomas-vilte/branchmate/internal/ui"
	"github.com/urfave/cli/v3"
)

type OptionsCommandFactory struct {
	namingService services.NamingServiceProvider
}

func NewOptionsCommandFactory(namingService services.NamingServiceProvider) *OptionsCommandFactory {
	return &OptionsCommandFactory{namingService: namingService}
}

func (f *OptionsCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "options",
		Usage: t.GetMessage("options_command_usage", 0, nil),
		Commands: []*cli.Command{
			f.newShowCommand(t),
			f.newSpaceCommand(t),
			f.newKeepCommand(t),
		},
	}
}

func (f *OptionsCommandFactory) newShowCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     t.GetMessage("options_show_usage", 0, nil),
		ArgsUsage: "[KEY]",
		Action: func(ctx context.Context, command *cli.Command) error {
			key := strings.TrimSpace(command.Args().First())
			if key != "" && !regex.TicketKey.MatchString(key) {
				return domainErrors.ErrInvalidTicketKey.WithContext("value", key)
			}

			svc, err := f.namingService(ctx)
			if err != nil {
				return err
			}
			p := svc.Preferences()

			w := command.Root().Writer
			space, err := p.AddSpaceBetween(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(w, "%s %s\n", ui.Checkbox(space), t.GetMessage("panel_add_space_label", 0, nil))

			if key != "" {
				keep, err := p.KeepOriginalTags(ctx, key)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(w, "%s %s (%s)\n", ui.Checkbox(keep), t.GetMessage("panel_keep_tags_label", 0, nil), key)
			}
			return nil
		},
	}
}

func (f *OptionsCommandFactory) newSpaceCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:      "space",
		Usage:     t.GetMessage("options_space_usage", 0, nil),
		ArgsUsage: "on|off",
		Action: func(ctx context.Context, command *cli.Command) error {
			on, err := toggle(command.Args().First())
			if err != nil {
				return err
			}

			svc, err := f.namingService(ctx)
			if err != nil {
				return err
			}
			if err := svc.Preferences().SetAddSpaceBetween(ctx, on); err != nil {
				return err
			}

			ui.PrintSuccess(command.Root().Writer, t.GetMessage("options_space_updated", 0, map[string]interface{}{"Value": on}))
			return nil
		},
	}
}

func (f *OptionsCommandFactory) newKeepCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:      "keep",
		Usage:     t.GetMessage("options_keep_usage", 0, nil),
		ArgsUsage: "KEY on|off",
		Action: func(ctx context.Context, command *cli.Command) error {
			args := command.Args()
			key := strings.TrimSpace(args.Get(0))
			if !regex.TicketKey.MatchString(key) {
				return domainErrors.ErrInvalidTicketKey.WithContext("value", key)
			}
			on, err := toggle(args.Get(1))
			if err != nil {
				return err
			}

			svc, err := f.namingService(ctx)
			if err != nil {
				return err
			}
			if err := svc.Preferences().SetKeepOriginalTags(ctx, key, on); err != nil {
				return err
			}

			ui.PrintSuccess(command.Root().Writer, t.GetMessage("options_keep_updated", 0, map[string]interface{}{"Key": key, "Value": on}))
			return nil
		},
	}
}

func toggle(arg string) (bool, error) {
	on, err := models.ParseToggle(arg)
	if err != nil {
		return false, domainErrors.ErrInvalidToggle.WithError(err).WithContext("value", arg)
	}
	return on, nil
}
