package completion

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
	"github.com/thomas-vilte/branchmate/internal/i18n"
	"github.com/thomas-vilte/branchmate/internal/ui"
	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `#! /bin/bash

_branchmate_bash_autocomplete() {
  if [[ "${COMP_WORDS[0]}" != "source" ]]; then
    local cur opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    local cmd_context=("${COMP_WORDS[@]:0:$COMP_CWORD}")
    opts=$( "${cmd_context[@]}" --generate-shell-completion )
    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
    return 0
  fi
}

complete -o bashdefault -o default -o nospace -F _branchmate_bash_autocomplete branchmate
`

const zshCompletionScript = `#compdef branchmate

_branchmate() {
  local -a opts
  local cmd_context=("${(@)words[1,$CURRENT-1]}")
  opts=("${(@f)$("${cmd_context[@]}" --generate-shell-completion)}")
  _describe 'values' opts
}

compdef _branchmate branchmate
`

const installMarker = "# branchmate shell completion"

const installInfo = `
` + installMarker + `
if command -v branchmate >/dev/null 2>&1; then
	source <(branchmate completion %s)
fi
`

// Environment resolves where the completion hook is installed.
type Environment struct {
	HomeDir func() (string, error)
	Shell   func() string
}

func DefaultEnvironment() Environment {
	return Environment{
		HomeDir: os.UserHomeDir,
		Shell:   func() string { return os.Getenv("SHELL") },
	}
}

func NewCompletionCommand(t *i18n.Translations, env Environment) *cli.Command {
	return &cli.Command{
		Name:        "completion",
		Usage:       t.GetMessage("completion_command_usage", 0, nil),
		Description: t.GetMessage("completion_command_description", 0, nil),
		Commands: []*cli.Command{
			scriptCommand("bash", t.GetMessage("completion_bash_usage", 0, nil), bashCompletionScript),
			scriptCommand("zsh", t.GetMessage("completion_zsh_usage", 0, nil), zshCompletionScript),
			{
				Name:  "install",
				Usage: t.GetMessage("completion_install_usage", 0, nil),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return install(cmd.Root().Writer, t, env)
				},
			},
		},
	}
}

func scriptCommand(name, usage, script string) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := io.WriteString(cmd.Root().Writer, script)
			return err
		},
	}
}

func install(w io.Writer, t *i18n.Translations, env Environment) error {
	home, err := env.HomeDir()
	if err != nil {
		return domainErrors.ErrConfigMissing.WithError(err).WithContext("missing", "home directory")
	}

	shell := env.Shell()
	var shellName string
	switch {
	case strings.Contains(shell, "zsh"):
		shellName = "zsh"
	case strings.Contains(shell, "bash"):
		shellName = "bash"
	default:
		return domainErrors.ErrUnsupportedShell.WithContext("value", shell)
	}
	configFile := filepath.Join(home, "."+shellName+"rc")

	fileContent, err := os.ReadFile(configFile)
	if err == nil && strings.Contains(string(fileContent), installMarker) {
		ui.PrintInfo(w, t.GetMessage("completion_already_installed", 0, map[string]interface{}{"File": configFile}))
		return nil
	}

	f, err := os.OpenFile(configFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return domainErrors.ErrConfigMissing.WithError(err).WithContext("path", configFile)
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintf(f, installInfo, shellName); err != nil {
		return domainErrors.ErrConfigMissing.WithError(err).WithContext("path", configFile)
	}

	ui.PrintSuccess(w, t.GetMessage("completion_installed", 0, map[string]interface{}{"File": configFile}))
	_, _ = fmt.Fprintf(w, "  source %s\n", configFile)
	return nil
}
