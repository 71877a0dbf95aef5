package di

import (
	"context"
	"io"

	"github.com/thomas-vilte/branchmate/internal/clipboard"
	"github.com/thomas-vilte/branchmate/internal/config"
	"github.com/thomas-vilte/branchmate/internal/logger"
	"github.com/thomas-vilte/branchmate/internal/page"
	"github.com/thomas-vilte/branchmate/internal/ports"
	"github.com/thomas-vilte/branchmate/internal/prefs"
	"github.com/thomas-vilte/branchmate/internal/services"
	"github.com/thomas-vilte/branchmate/internal/storage/memory"
	"github.com/thomas-vilte/branchmate/internal/storage/sqlite"
)

// store is what a preference backend provides.
type store interface {
	ports.PreferenceStore
	ports.TicketAttributeStore
	io.Closer
}

// Container manages the application dependencies. The store is opened on
// first use, after the global flags have been applied.
type Container struct {
	config *config.Config

	ephemeral    bool
	databasePath string

	// Lazily initialized
	store         store
	namingService *services.NamingService
	clipboard     ports.Clipboard
}

func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:       cfg,
		databasePath: cfg.DatabasePath,
	}
}

// Configure applies the global store flags. An empty databasePath keeps the
// configured one.
func (c *Container) Configure(ephemeral bool, databasePath string) {
	c.ephemeral = ephemeral
	if databasePath != "" {
		c.databasePath = databasePath
	}
}

// SetClipboard replaces the system clipboard.
func (c *Container) SetClipboard(cb ports.Clipboard) {
	c.clipboard = cb
}

func (c *Container) GetClipboard() ports.Clipboard {
	if c.clipboard == nil {
		c.clipboard = clipboard.NewSystem()
	}
	return c.clipboard
}

// GetNamingService returns the naming service (lazy initialization).
func (c *Container) GetNamingService(ctx context.Context) (*services.NamingService, error) {
	if c.namingService != nil {
		return c.namingService, nil
	}

	st, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}

	policy := page.Policy{
		Retries: uint64(c.config.PageRetries),
		Delay:   c.config.PageDelay(),
	}
	c.namingService = services.NewNamingService(prefs.New(st, st), page.NewWaiter(policy))
	return c.namingService, nil
}

func (c *Container) openStore(ctx context.Context) (store, error) {
	if c.store != nil {
		return c.store, nil
	}

	if c.ephemeral {
		logger.Debug(ctx, "using in-memory preference store")
		c.store = memory.NewStore()
		return c.store, nil
	}

	st, err := sqlite.Open(ctx, c.databasePath)
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "preference store opened", "path", c.databasePath)
	c.store = st
	return c.store, nil
}

// Close releases the store if it was opened.
func (c *Container) Close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	c.namingService = nil
	return err
}
