package prefs

import (
	"context"
	"encoding/json"
	"strconv"

	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
	"github.com/thomas-vilte/branchmate/internal/logger"
	"github.com/thomas-vilte/branchmate/internal/models"
	"github.com/thomas-vilte/branchmate/internal/naming"
	"github.com/thomas-vilte/branchmate/internal/ports"
)

// Store keys and per-ticket attribute names. They mirror the names the
// add-on kept in browser local storage and on the summary element.
const (
	KeyEnableExtraTags = "enableExtraTags"
	KeyAddSpaceBetween = "addSpaceBetween"
	keyExtraTagsPrefix = "extraTagsFor"

	AttrDevType          = "data-dev-type"
	AttrKeepOriginalTags = "data-keep-original-tags"
)

// ExtraTagsKey is the list-valued key holding a project's extra tag pairs.
func ExtraTagsKey(project string) string {
	return keyExtraTagsPrefix + project
}

// Preferences gives typed, defaulted access to the opaque stores.
type Preferences struct {
	store      ports.PreferenceStore
	attributes ports.TicketAttributeStore
}

func New(store ports.PreferenceStore, attributes ports.TicketAttributeStore) *Preferences {
	return &Preferences{store: store, attributes: attributes}
}

func (p *Preferences) ExtraTagsEnabled(ctx context.Context) (bool, error) {
	return p.globalBool(ctx, KeyEnableExtraTags)
}

func (p *Preferences) SetExtraTagsEnabled(ctx context.Context, on bool) error {
	return p.store.SetPreference(ctx, KeyEnableExtraTags, strconv.FormatBool(on))
}

func (p *Preferences) AddSpaceBetween(ctx context.Context) (bool, error) {
	return p.globalBool(ctx, KeyAddSpaceBetween)
}

func (p *Preferences) SetAddSpaceBetween(ctx context.Context, on bool) error {
	return p.store.SetPreference(ctx, KeyAddSpaceBetween, strconv.FormatBool(on))
}

// ExtraTags returns the stored pairs for a project. A missing or unreadable
// list counts as empty.
func (p *Preferences) ExtraTags(ctx context.Context, project string) ([]models.ExtraTagPair, error) {
	raw, ok, err := p.store.GetPreference(ctx, ExtraTagsKey(project))
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var flat []string
	if err := json.Unmarshal([]byte(raw), &flat); err != nil {
		logger.Warn(ctx, "ignoring malformed extra tag list", "project", project, "error", err)
		return nil, nil
	}
	return models.PairTagValues(flat), nil
}

// SaveExtraTags sanitizes the table rows, drops the blank ones and stores the
// rest as a flat list.
func (p *Preferences) SaveExtraTags(ctx context.Context, project string, rows []models.ExtraTagPair) ([]models.ExtraTagPair, error) {
	if len(rows) > models.MaxExtraTagPairs {
		return nil, domainErrors.ErrTooManyExtraTags.WithContext("count", len(rows))
	}

	kept := make([]models.ExtraTagPair, 0, len(rows))
	for _, row := range rows {
		clean := models.ExtraTagPair{
			Branch: naming.StripMarkup(row.Branch),
			PR:     naming.StripMarkup(row.PR),
		}
		if clean.Empty() {
			continue
		}
		kept = append(kept, clean)
	}

	data, err := json.Marshal(models.FlattenTagPairs(kept))
	if err != nil {
		return nil, domainErrors.ErrWritePreference.WithError(err)
	}
	if err := p.store.SetPreference(ctx, ExtraTagsKey(project), string(data)); err != nil {
		return nil, err
	}

	logger.Debug(ctx, "saved extra tags", "project", project, "pairs", len(kept))
	return kept, nil
}

// InitTicket default-initializes the per-ticket attributes that are absent.
func (p *Preferences) InitTicket(ctx context.Context, ticketKey string) error {
	if _, ok, err := p.attributes.GetAttribute(ctx, ticketKey, AttrDevType); err != nil {
		return err
	} else if !ok {
		if err := p.writeRoles(ctx, ticketKey, models.RoleFlags{}); err != nil {
			return err
		}
	}

	if _, ok, err := p.attributes.GetAttribute(ctx, ticketKey, AttrKeepOriginalTags); err != nil {
		return err
	} else if !ok {
		return p.attributes.SetAttribute(ctx, ticketKey, AttrKeepOriginalTags, "false")
	}
	return nil
}

// RoleFlags reads the ticket's roles, re-initializing an absent or malformed
// value.
func (p *Preferences) RoleFlags(ctx context.Context, ticketKey string) (models.RoleFlags, error) {
	raw, ok, err := p.attributes.GetAttribute(ctx, ticketKey, AttrDevType)
	if err != nil {
		return models.RoleFlags{}, err
	}

	var flags models.RoleFlags
	if ok {
		if err := json.Unmarshal([]byte(raw), &flags); err == nil {
			return flags, nil
		}
		logger.Warn(ctx, "re-initializing malformed role flags", "ticket", ticketKey)
	}

	return models.RoleFlags{}, p.writeRoles(ctx, ticketKey, models.RoleFlags{})
}

func (p *Preferences) SetRole(ctx context.Context, ticketKey string, role models.Role, on bool) (models.RoleFlags, error) {
	flags, err := p.RoleFlags(ctx, ticketKey)
	if err != nil {
		return models.RoleFlags{}, err
	}
	flags = flags.With(role, on)
	return flags, p.writeRoles(ctx, ticketKey, flags)
}

func (p *Preferences) KeepOriginalTags(ctx context.Context, ticketKey string) (bool, error) {
	raw, ok, err := p.attributes.GetAttribute(ctx, ticketKey, AttrKeepOriginalTags)
	if err != nil || !ok {
		return false, err
	}
	return raw == "true", nil
}

func (p *Preferences) SetKeepOriginalTags(ctx context.Context, ticketKey string, on bool) error {
	return p.attributes.SetAttribute(ctx, ticketKey, AttrKeepOriginalTags, strconv.FormatBool(on))
}

// FormatOptions combines the global spacing toggle with the ticket's
// keep-original flag.
func (p *Preferences) FormatOptions(ctx context.Context, ticketKey string) (models.FormatOptions, error) {
	space, err := p.AddSpaceBetween(ctx)
	if err != nil {
		return models.FormatOptions{}, err
	}
	keep, err := p.KeepOriginalTags(ctx, ticketKey)
	if err != nil {
		return models.FormatOptions{}, err
	}
	return models.FormatOptions{AddSpaceBetween: space, KeepOriginalTags: keep}, nil
}

func (p *Preferences) writeRoles(ctx context.Context, ticketKey string, flags models.RoleFlags) error {
	data, err := json.Marshal(flags)
	if err != nil {
		return domainErrors.ErrWritePreference.WithError(err)
	}
	return p.attributes.SetAttribute(ctx, ticketKey, AttrDevType, string(data))
}

// Only the literal "true" enables a toggle, so an absent enableExtraTags reads
// as disabled; the browser add-on treated anything but "false" as enabled.
func (p *Preferences) globalBool(ctx context.Context, key string) (bool, error) {
	raw, ok, err := p.store.GetPreference(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	return raw == "true", nil
}
