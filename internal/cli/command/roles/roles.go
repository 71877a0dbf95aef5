package roles

import (
	"context"
	"fmt"
	"io"
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

type RolesCommandFactory struct {
	namingService services.NamingServiceProvider
}

func NewRolesCommandFactory(namingService services.NamingServiceProvider) *RolesCommandFactory {
	return &RolesCommandFactory{namingService: namingService}
}

func (f *RolesCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "roles",
		Usage: t.GetMessage("roles_command_usage", 0, nil),
		Commands: []*cli.Command{
			f.newShowCommand(t),
			f.newSetCommand(t),
		},
	}
}

func (f *RolesCommandFactory) newShowCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     t.GetMessage("roles_show_usage", 0, nil),
		ArgsUsage: "KEY",
		Action: func(ctx context.Context, command *cli.Command) error {
			key, err := ticketKey(command.Args().First())
			if err != nil {
				return err
			}

			svc, err := f.namingService(ctx)
			if err != nil {
				return err
			}

			flags, err := svc.Preferences().RoleFlags(ctx, key)
			if err != nil {
				return err
			}

			printRoles(command.Root().Writer, t, key, flags)
			return nil
		},
	}
}

func (f *RolesCommandFactory) newSetCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     t.GetMessage("roles_set_usage", 0, nil),
		ArgsUsage: "KEY ROLE on|off",
		Action: func(ctx context.Context, command *cli.Command) error {
			args := command.Args()
			if args.Len() != 3 {
				return domainErrors.ErrInvalidRole.WithContext("missing", "KEY ROLE on|off")
			}

			key, err := ticketKey(args.Get(0))
			if err != nil {
				return err
			}
			role, err := models.ParseRole(args.Get(1))
			if err != nil {
				return domainErrors.ErrInvalidRole.WithError(err).WithContext("value", args.Get(1))
			}
			on, err := models.ParseToggle(args.Get(2))
			if err != nil {
				return domainErrors.ErrInvalidToggle.WithError(err).WithContext("value", args.Get(2))
			}

			svc, err := f.namingService(ctx)
			if err != nil {
				return err
			}

			flags, err := svc.Preferences().SetRole(ctx, key, role, on)
			if err != nil {
				return err
			}

			w := command.Root().Writer
			ui.PrintSuccess(w, t.GetMessage("roles_updated", 0, map[string]interface{}{"Key": key}))
			printRoles(w, t, key, flags)
			return nil
		},
	}
}

func ticketKey(raw string) (string, error) {
	key := strings.TrimSpace(raw)
	if !regex.TicketKey.MatchString(key) {
		return "", domainErrors.ErrInvalidTicketKey.WithContext("value", raw)
	}
	return key, nil
}

func printRoles(w io.Writer, t *i18n.Translations, key string, flags models.RoleFlags) {
	_, _ = fmt.Fprintf(w, "%s\n", t.GetMessage("roles_for_ticket", 0, map[string]interface{}{"Key": key}))
	for _, r := range models.PanelRoleOrder {
		_, _ = fmt.Fprintf(w, "  %s %s (%s)\n", ui.Checkbox(flags.Enabled(r)), r.Label(), r)
	}
}
