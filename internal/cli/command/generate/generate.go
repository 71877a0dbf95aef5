package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/thomas-vilte/branchmate/internal/cli/completion_helper"
	"github.com/thomas-vilte/branchmate/internal/cli/ticketsource"
	"github.com/thomas-vilte/branchmate/internal/config"
	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
	"github.com/thomas-vilte/branchmate/internal/i18n"
	"github.com/thomas-vilte/branchmate/internal/models"
	"github.com/thomas-vilte/branchmate/internal/ports"
	"github.com/thomas-vilte/branchmate/internal/services"
	"github.com/thomas-vilte/branchmate/internal/ui"
	"github.com/urfave/cli/v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

type GenerateCommandFactory struct {
	namingService services.NamingServiceProvider
	clipboard     ports.Clipboard
}

func NewGenerateCommandFactory(namingService services.NamingServiceProvider, clipboard ports.Clipboard) *GenerateCommandFactory {
	return &GenerateCommandFactory{
		namingService: namingService,
		clipboard:     clipboard,
	}
}

func (f *GenerateCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "generate",
		Aliases:       []string{"g"},
		Usage:         t.GetMessage("generate_command_usage", 0, nil),
		Description:   t.GetMessage("generate_command_description", 0, nil),
		Flags:         f.createFlags(t),
		Action:        f.createAction(t),
		ShellComplete: completion_helper.DefaultFlagComplete,
	}
}

func (f *GenerateCommandFactory) createFlags(t *i18n.Translations) []cli.Flag {
	return append(ticketsource.Flags(t),
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   FormatText,
			Usage:   t.GetMessage("generate_format_flag_usage", 0, nil),
		},
		&cli.IntFlag{
			Name:    "copy",
			Aliases: []string{"c"},
			Usage:   t.GetMessage("generate_copy_flag_usage", 0, nil),
		},
	)
}

func (f *GenerateCommandFactory) createAction(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		format := strings.ToLower(command.String("format"))
		if format != FormatText && format != FormatJSON {
			return domainErrors.ErrInvalidFormat.WithContext("value", format)
		}

		svc, err := f.namingService(ctx)
		if err != nil {
			return err
		}

		ticket, _, err := ticketsource.Resolve(ctx, command, t, svc)
		if err != nil || ticket == nil {
			return err
		}

		suggestion, err := svc.Suggest(ctx, *ticket)
		if err != nil {
			return err
		}

		w := command.Root().Writer
		if format == FormatJSON {
			if err := printJSON(w, suggestion); err != nil {
				return err
			}
		} else {
			printText(w, t, suggestion)
		}

		if n := command.Int("copy"); n != 0 {
			return f.copyLine(command.Root().ErrWriter, t, suggestion, n)
		}
		return nil
	}
}

func (f *GenerateCommandFactory) copyLine(w io.Writer, t *i18n.Translations, s *models.Suggestion, n int) error {
	lines := s.Lines()
	if n < 1 || n > len(lines) {
		return domainErrors.ErrInvalidSelection.WithContext("value", n)
	}
	if err := f.clipboard.Copy(lines[n-1]); err != nil {
		return err
	}
	ui.PrintCopied(w, t.GetMessage("panel_copied", 0, nil), lines[n-1])
	return nil
}

func printJSON(w io.Writer, s *models.Suggestion) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return domainErrors.NewAppError(domainErrors.TypeInternal, "Failed to encode suggestion", err)
	}
	_, _ = fmt.Fprintln(w, string(data))
	return nil
}

func printText(w io.Writer, t *i18n.Translations, s *models.Suggestion) {
	for i, p := range s.Pairs {
		branch := 2*i + 1
		ui.PrintKeyValue(w, fmt.Sprintf("%d. %s", branch, t.GetMessage("branch_label", 0, nil)), p.Branch)
		ui.PrintKeyValue(w, fmt.Sprintf("%d. %s", branch+1, t.GetMessage("pr_title_label", 0, nil)), p.PRTitle)
	}
}
