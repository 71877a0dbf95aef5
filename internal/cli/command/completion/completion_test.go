package completion

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
	"github.com/thomas-vilte/branchmate/internal/i18n"
	"github.com/urfave/cli/v3"
)

func runCompletion(t *testing.T, env Environment, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	var buf bytes.Buffer
	app := &cli.Command{
		Name:      "branchmate",
		Writer:    &buf,
		ErrWriter: &buf,
		Commands:  []*cli.Command{NewCompletionCommand(translations, env)},
	}
	err = app.Run(context.Background(), append([]string{"branchmate", "completion"}, args...))
	return buf.String(), err
}

func fakeEnvironment(home, shell string) Environment {
	return Environment{
		HomeDir: func() (string, error) { return home, nil },
		Shell:   func() string { return shell },
	}
}

func TestCompletionScripts(t *testing.T) {
	t.Run("should print the bash script", func(t *testing.T) {
		out, err := runCompletion(t, fakeEnvironment(t.TempDir(), ""), "bash")

		require.NoError(t, err)
		assert.Contains(t, out, "complete -o bashdefault")
		assert.Contains(t, out, "branchmate")
	})

	t.Run("should print the zsh script", func(t *testing.T) {
		out, err := runCompletion(t, fakeEnvironment(t.TempDir(), ""), "zsh")

		require.NoError(t, err)
		assert.Contains(t, out, "#compdef branchmate")
	})
}

func TestCompletionInstall(t *testing.T) {
	t.Run("should append the hook once", func(t *testing.T) {
		home := t.TempDir()
		env := fakeEnvironment(home, "/bin/zsh")

		_, err := runCompletion(t, env, "install")
		require.NoError(t, err)
		_, err = runCompletion(t, env, "install")
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(home, ".zshrc"))
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(string(data), installMarker))
		assert.Contains(t, string(data), "branchmate completion zsh")
	})

	t.Run("should reject unknown shells", func(t *testing.T) {
		_, err := runCompletion(t, fakeEnvironment(t.TempDir(), "/usr/bin/fish"), "install")

		assert.True(t, errors.Is(err, domainErrors.ErrUnsupportedShell))
	})
}
