// Package ticketsource resolves the ticket a command works on, either from a
// saved issue page or from explicit flags.
package ticketsource

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
	"github.com/thomas-vilte/branchmate/internal/i18n"
	"github.com/thomas-vilte/branchmate/internal/logger"
	"github.com/thomas-vilte/branchmate/internal/models"
	"github.com/thomas-vilte/branchmate/internal/page"
	"github.com/thomas-vilte/branchmate/internal/ports"
	"github.com/thomas-vilte/branchmate/internal/services"
	"github.com/thomas-vilte/branchmate/internal/ui"
	"github.com/urfave/cli/v3"
)

const (
	FlagPage     = "page"
	FlagLocation = "location"
	FlagKey      = "key"
	FlagType     = "type"
	FlagSummary  = "summary"
)

func Flags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagPage,
			Aliases: []string{"p"},
			Usage:   t.GetMessage("flag_page_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    FlagLocation,
			Aliases: []string{"l"},
			Usage:   t.GetMessage("flag_location_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    FlagKey,
			Aliases: []string{"k"},
			Usage:   t.GetMessage("flag_key_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    FlagType,
			Aliases: []string{"t"},
			Usage:   t.GetMessage("flag_type_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    FlagSummary,
			Aliases: []string{"s"},
			Usage:   t.GetMessage("flag_summary_usage", 0, nil),
		},
	}
}

// Resolve returns the ticket and, when it came from a page, the page source.
// A page that never shows the key element, or lacks any other required
// element, yields (nil, nil, nil) after logging a warning: the caller stays
// inert.
func Resolve(ctx context.Context, cmd *cli.Command, t *i18n.Translations, svc *services.NamingService) (*models.Ticket, ports.PageSource, error) {
	if path := cmd.String(FlagPage); path != "" {
		source := page.NewFileSource(path)

		var ticket *models.Ticket
		err := ui.WithSpinner(cmd.Root().ErrWriter, t.GetMessage("waiting_for_page", 0, nil), func() error {
			var err error
			ticket, err = svc.Load(ctx, source, cmd.String(FlagLocation))
			return err
		})
		if errors.Is(err, domainErrors.ErrMissingPrecondition) || errors.Is(err, domainErrors.ErrPageNotReady) {
			logger.Warn(ctx, "ticket page is missing required elements, nothing to do", "error", err)
			return nil, nil, nil
		}
		if err != nil {
			return nil, nil, err
		}
		return ticket, source, nil
	}

	if key := strings.TrimSpace(cmd.String(FlagKey)); key != "" {
		return &models.Ticket{
			Key:     key,
			Type:    strings.TrimSpace(cmd.String(FlagType)),
			Summary: cmd.String(FlagSummary),
		}, nil, nil
	}

	return nil, nil, domainErrors.ErrNoTicketSource
}
