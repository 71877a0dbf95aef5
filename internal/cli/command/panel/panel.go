package panel

import (
	"context"

	"github.com/thomas-vilte/branchmate/internal/cli/completion_helper"
	"github.com/thomas-vilte/branchmate/internal/cli/ticketsource"
	"github.com/thomas-vilte/branchmate/internal/config"
	"github.com/thomas-vilte/branchmate/internal/i18n"
	"github.com/thomas-vilte/branchmate/internal/panel"
	"github.com/thomas-vilte/branchmate/internal/ports"
	"github.com/thomas-vilte/branchmate/internal/services"
	"github.com/urfave/cli/v3"
)

// Runner drives an interactive session until it ends.
type Runner func(ctx context.Context, s *panel.Session) error

type PanelCommandFactory struct {
	namingService services.NamingServiceProvider
	clipboard     ports.Clipboard
	run           Runner
}

func NewPanelCommandFactory(namingService services.NamingServiceProvider, clipboard ports.Clipboard, run Runner) *PanelCommandFactory {
	if run == nil {
		run = panel.Run
	}
	return &PanelCommandFactory{
		namingService: namingService,
		clipboard:     clipboard,
		run:           run,
	}
}

func (f *PanelCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "panel",
		Aliases:       []string{"p"},
		Usage:         t.GetMessage("panel_command_usage", 0, nil),
		Description:   t.GetMessage("panel_command_description", 0, nil),
		Flags:         ticketsource.Flags(t),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, command *cli.Command) error {
			svc, err := f.namingService(ctx)
			if err != nil {
				return err
			}

			ticket, source, err := ticketsource.Resolve(ctx, command, t, svc)
			if err != nil || ticket == nil {
				return err
			}

			session := panel.NewSession(panel.SessionConfig{
				Service:      svc,
				Clipboard:    f.clipboard,
				Translations: t,
				Out:          command.Root().Writer,
				Source:       source,
				Location:     command.String(ticketsource.FlagLocation),
			}, *ticket)

			return f.run(ctx, session)
		},
	}
}
