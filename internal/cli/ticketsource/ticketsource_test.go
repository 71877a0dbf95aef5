package ticketsource

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
	"github.com/thomas-vilte/branchmate/internal/i18n"
	"github.com/thomas-vilte/branchmate/internal/models"
	"github.com/thomas-vilte/branchmate/internal/page"
	"github.com/thomas-vilte/branchmate/internal/ports"
	"github.com/thomas-vilte/branchmate/internal/prefs"
	"github.com/thomas-vilte/branchmate/internal/services"
	"github.com/thomas-vilte/branchmate/internal/storage/memory"
	"github.com/urfave/cli/v3"
)

type result struct {
	ticket *models.Ticket
	source ports.PageSource
	err    error
}

func resolve(t *testing.T, args ...string) result {
	t.Helper()
	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	store := memory.NewStore()
	svc := services.NewNamingService(prefs.New(store, store), page.NewWaiter(page.Policy{Retries: 1, Delay: time.Millisecond}))

	var got result
	var buf bytes.Buffer
	app := &cli.Command{
		Name:      "branchmate",
		Writer:    &buf,
		ErrWriter: &buf,
		Flags:     Flags(translations),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			got.ticket, got.source, got.err = Resolve(ctx, cmd, translations, svc)
			return nil
		},
	}
	require.NoError(t, app.Run(context.Background(), append([]string{"branchmate"}, args...)))
	return got
}

func TestResolve(t *testing.T) {
	t.Run("should build the ticket from flags", func(t *testing.T) {
		got := resolve(t, "--key", " ABC-1 ", "--type", " Bug ", "--summary", " [x] Fix ")

		require.NoError(t, got.err)
		assert.Nil(t, got.source)
		assert.Equal(t, models.Ticket{Key: "ABC-1", Type: "Bug", Summary: " [x] Fix "}, *got.ticket)
	})

	t.Run("should read the ticket from a page", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "issue.html")
		require.NoError(t, os.WriteFile(path, []byte(`<div id="header"></div>
			<div class="issue-body-content"><span id="type-val">Task</span></div>
			<a id="key-val" data-issue-key="QA-3">QA-3</a>
			<h1 id="summary-val">Check it</h1>`), 0644))

		got := resolve(t, "-p", path, "-l", "/browse/QA-3")

		require.NoError(t, got.err)
		require.NotNil(t, got.source)
		assert.Equal(t, "QA-3", got.ticket.Key)
	})

	t.Run("should stay inert when the page lacks required elements", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "issue.html")
		require.NoError(t, os.WriteFile(path, []byte(`<a id="key-val" data-issue-key="QA-3">QA-3</a>`), 0644))

		got := resolve(t, "--page", path)

		assert.NoError(t, got.err)
		assert.Nil(t, got.ticket)
		assert.Nil(t, got.source)
	})

	t.Run("should stay inert when the key element never appears", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "issue.html")
		require.NoError(t, os.WriteFile(path, []byte(`<div id="header"></div>
			<div class="issue-body-content"><span id="type-val">Task</span></div>
			<h1 id="summary-val">Check it</h1>`), 0644))

		got := resolve(t, "--page", path)

		assert.NoError(t, got.err)
		assert.Nil(t, got.ticket)
		assert.Nil(t, got.source)
	})

	t.Run("should stay inert when the page shows another ticket", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "issue.html")
		require.NoError(t, os.WriteFile(path, []byte(`<a id="key-val" data-issue-key="QA-3">QA-3</a>`), 0644))

		got := resolve(t, "--page", path, "--location", "/browse/QA-4")

		assert.NoError(t, got.err)
		assert.Nil(t, got.ticket)
	})

	t.Run("should require a page or a key", func(t *testing.T) {
		got := resolve(t)

		assert.True(t, errors.Is(got.err, domainErrors.ErrNoTicketSource))
	})
}
