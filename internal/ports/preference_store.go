package ports

import "context"

// PreferenceStore is a flat, opaque key-value string store shared by every
// ticket and project.
type PreferenceStore interface {
	// GetPreference returns ok=false when the key was never set.
	GetPreference(ctx context.Context, key string) (value string, ok bool, err error)
	SetPreference(ctx context.Context, key, value string) error
}

// TicketAttributeStore holds state attached to a single ticket view.
type TicketAttributeStore interface {
	GetAttribute(ctx context.Context, ticketKey, name string) (value string, ok bool, err error)
	SetAttribute(ctx context.Context, ticketKey, name, value string) error
}
