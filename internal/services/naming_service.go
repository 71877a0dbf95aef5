package services

import (
	"context"

	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
	"github.com/thomas-vilte/branchmate/internal/logger"
	"github.com/thomas-vilte/branchmate/internal/models"
	"github.com/thomas-vilte/branchmate/internal/naming"
	"github.com/thomas-vilte/branchmate/internal/page"
	"github.com/thomas-vilte/branchmate/internal/ports"
	"github.com/thomas-vilte/branchmate/internal/prefs"
	"github.com/thomas-vilte/branchmate/internal/regex"
)

// NamingServiceProvider builds the service on first use, once the global
// flags have picked the store.
type NamingServiceProvider func(ctx context.Context) (*NamingService, error)

// NamingService turns a ticket view into branch name and PR title
// suggestions, applying the stored preferences.
type NamingService struct {
	prefs  *prefs.Preferences
	waiter *page.Waiter
}

func NewNamingService(p *prefs.Preferences, w *page.Waiter) *NamingService {
	return &NamingService{
		prefs:  p,
		waiter: w,
	}
}

// Preferences exposes the store the suggestions are derived from.
func (s *NamingService) Preferences() *prefs.Preferences {
	return s.prefs
}

// Load waits for the page to show the ticket in location and reads it.
func (s *NamingService) Load(ctx context.Context, source ports.PageSource, location string) (*models.Ticket, error) {
	doc, err := s.waiter.Wait(ctx, source, location)
	if err != nil {
		return nil, err
	}

	ticket, err := doc.Ticket()
	if err != nil {
		return nil, err
	}

	if ticket.Key == "" {
		return nil, domainErrors.ErrMissingPrecondition.WithContext("missing", "ticket key text")
	}

	logger.Debug(ctx, "ticket loaded", "ticket", ticket.Key, "type", ticket.Type)
	return ticket, nil
}

// Suggest initializes the ticket's attributes if needed and composes every
// branch name and PR title for it.
func (s *NamingService) Suggest(ctx context.Context, ticket models.Ticket) (*models.Suggestion, error) {
	if !regex.TicketKey.MatchString(ticket.Key) {
		return nil, domainErrors.ErrInvalidTicketKey.WithContext("key", ticket.Key)
	}

	if err := s.prefs.InitTicket(ctx, ticket.Key); err != nil {
		return nil, err
	}

	roles, err := s.prefs.RoleFlags(ctx, ticket.Key)
	if err != nil {
		return nil, err
	}

	opts, err := s.prefs.FormatOptions(ctx, ticket.Key)
	if err != nil {
		return nil, err
	}

	extraEnabled, err := s.prefs.ExtraTagsEnabled(ctx)
	if err != nil {
		return nil, err
	}

	pairs, err := s.prefs.ExtraTags(ctx, ticket.Project())
	if err != nil {
		return nil, err
	}

	in := naming.Input{
		Key:        ticket.Key,
		Type:       ticket.Type,
		RawSummary: ticket.Summary,
		Roles:      roles,
		Options:    opts,
	}
	tags, summary := naming.SeparateTags(ticket.Summary)

	suggestion := &models.Suggestion{
		Ticket:       ticket,
		OriginalTags: tags,
		Summary:      summary,
		Roles:        roles,
		Options:      opts,
		ExtraEnabled: extraEnabled,
		Pairs:        naming.ComposeAll(in, pairs, extraEnabled),
	}

	logger.Debug(ctx, "suggestions composed", "ticket", ticket.Key, "pairs", len(suggestion.Pairs))
	return suggestion, nil
}
