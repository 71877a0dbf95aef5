package options

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/branchmate/internal/config"
	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
	"github.com/thomas-vilte/branchmate/internal/i18n"
	"github.com/thomas-vilte/branchmate/internal/page"
	"github.com/thomas-vilte/branchmate/internal/prefs"
	"github.com/thomas-vilte/branchmate/internal/services"
	"github.com/thomas-vilte/branchmate/internal/storage/memory"
	"github.com/urfave/cli/v3"
)

// runner runs one command line against a fresh app sharing the same store.
type runner func(args ...string) error

func setupApp(t *testing.T) (runner, *prefs.Preferences, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	store := memory.NewStore()
	p := prefs.New(store, store)
	svc := services.NewNamingService(p, page.NewWaiter(page.Policy{Retries: 1, Delay: time.Millisecond}))
	provider := func(context.Context) (*services.NamingService, error) { return svc, nil }

	out := &bytes.Buffer{}
	run := func(args ...string) error {
		app := &cli.Command{
			Name:     "branchmate",
			Writer:   out,
			Commands: []*cli.Command{NewOptionsCommandFactory(provider).CreateCommand(translations, &config.Config{})},
		}
		return app.Run(context.Background(), append([]string{"branchmate"}, args...))
	}
	return run, p, out
}

func TestOptionsCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("should toggle spacing globally", func(t *testing.T) {
		run, p, _ := setupApp(t)

		require.NoError(t, run("options", "space", "on"))

		on, err := p.AddSpaceBetween(ctx)
		require.NoError(t, err)
		assert.True(t, on)
	})

	t.Run("should toggle kept tags per ticket", func(t *testing.T) {
		run, p, _ := setupApp(t)

		require.NoError(t, run("options", "keep", "ABC-1", "yes"))

		keep, err := p.KeepOriginalTags(ctx, "ABC-1")
		require.NoError(t, err)
		assert.True(t, keep)
		other, err := p.KeepOriginalTags(ctx, "ABC-2")
		require.NoError(t, err)
		assert.False(t, other)
	})

	t.Run("should show global and ticket options", func(t *testing.T) {
		run, p, out := setupApp(t)
		require.NoError(t, p.SetKeepOriginalTags(ctx, "ABC-1", true))

		require.NoError(t, run("options", "show", "ABC-1"))

		assert.Contains(t, out.String(), "[ ] Add space between tags")
		assert.Contains(t, out.String(), "[x] Keep original tags (ABC-1)")
	})

	t.Run("should show only global options without a key", func(t *testing.T) {
		run, _, out := setupApp(t)

		require.NoError(t, run("options", "show"))

		assert.NotContains(t, out.String(), "Keep original tags")
	})

	t.Run("should reject invalid input", func(t *testing.T) {
		run, _, _ := setupApp(t)

		err := run("options", "space", "sometimes")
		assert.True(t, errors.Is(err, domainErrors.ErrInvalidToggle))

		err = run("options", "keep", "nokey", "on")
		assert.True(t, errors.Is(err, domainErrors.ErrInvalidTicketKey))
	})
}
