package roles

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
	"github.com/thomas-vilte/branchmate/internal/models"
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
			Commands: []*cli.Command{NewRolesCommandFactory(provider).CreateCommand(translations, &config.Config{})},
		}
		return app.Run(context.Background(), append([]string{"branchmate"}, args...))
	}
	return run, p, out
}

func TestRolesCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("should show all roles off for a new ticket", func(t *testing.T) {
		run, _, out := setupApp(t)

		err := run("roles", "show", "ABC-1")

		require.NoError(t, err)
		assert.Contains(t, out.String(), "[ ] Backend Dev. (BD)")
		assert.Contains(t, out.String(), "[ ] Solution Arch. (SA)")
	})

	t.Run("should set a role", func(t *testing.T) {
		run, p, out := setupApp(t)

		err := run("roles", "set", "ABC-1", "fd", "on")

		require.NoError(t, err)
		flags, err := p.RoleFlags(ctx, "ABC-1")
		require.NoError(t, err)
		assert.Equal(t, models.RoleFlags{FD: true}, flags)
		assert.Contains(t, out.String(), "[x] Frontend Dev. (FD)")
	})

	t.Run("should clear a role", func(t *testing.T) {
		run, p, _ := setupApp(t)
		_, err := p.SetRole(ctx, "ABC-1", models.RoleTechLead, true)
		require.NoError(t, err)

		err = run("roles", "set", "ABC-1", "TL", "off")

		require.NoError(t, err)
		flags, err := p.RoleFlags(ctx, "ABC-1")
		require.NoError(t, err)
		assert.False(t, flags.TL)
	})

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"invalid key", []string{"roles", "show", "not-a-key"}, domainErrors.ErrInvalidTicketKey},
		{"invalid role", []string{"roles", "set", "ABC-1", "QA", "on"}, domainErrors.ErrInvalidRole},
		{"invalid toggle", []string{"roles", "set", "ABC-1", "BD", "maybe"}, domainErrors.ErrInvalidToggle},
		{"missing arguments", []string{"roles", "set", "ABC-1"}, domainErrors.ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			run, _, _ := setupApp(t)

			err := run(tt.args...)

			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}
