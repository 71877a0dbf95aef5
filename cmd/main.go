package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/thomas-vilte/branchmate/internal/cli/command/completion"
	"github.com/thomas-vilte/branchmate/internal/cli/command/config"
	"github.com/thomas-vilte/branchmate/internal/cli/command/generate"
	"github.com/thomas-vilte/branchmate/internal/cli/command/options"
	"github.com/thomas-vilte/branchmate/internal/cli/command/panel"
	"github.com/thomas-vilte/branchmate/internal/cli/command/roles"
	"github.com/thomas-vilte/branchmate/internal/cli/command/tags"
	"github.com/thomas-vilte/branchmate/internal/cli/registry"
	cfg "github.com/thomas-vilte/branchmate/internal/config"
	"github.com/thomas-vilte/branchmate/internal/i18n"
	"github.com/thomas-vilte/branchmate/internal/infrastructure/di"
	"github.com/thomas-vilte/branchmate/internal/logger"
	"github.com/thomas-vilte/branchmate/internal/ui"
	"github.com/thomas-vilte/branchmate/internal/version"
	"github.com/urfave/cli/v3"
)

const (
	flagDebug     = "debug"
	flagVerbose   = "verbose"
	flagEphemeral = "ephemeral"
	flagDB        = "db"
)

func main() {
	app, container, translations, err := initializeApp()
	if err != nil {
		log.Fatalf("error starting branchmate: %v", err)
	}

	err = app.Run(context.Background(), os.Args)
	_ = container.Close()
	if err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, *di.Container, *i18n.Translations, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not resolve the home directory: %w", err)
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, nil, nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		return nil, nil, nil, err
	}

	container := di.NewContainer(cfgApp)
	clipboard := container.GetClipboard()

	registerCommand := registry.NewRegistry(cfgApp, translations)
	factories := []struct {
		name    string
		factory registry.CommandFactory
	}{
		{"panel", panel.NewPanelCommandFactory(container.GetNamingService, clipboard, nil)},
		{"generate", generate.NewGenerateCommandFactory(container.GetNamingService, clipboard)},
		{"roles", roles.NewRolesCommandFactory(container.GetNamingService)},
		{"tags", tags.NewTagsCommandFactory(container.GetNamingService)},
		{"options", options.NewOptionsCommandFactory(container.GetNamingService)},
		{"config", config.NewConfigCommandFactory()},
	}
	for _, f := range factories {
		if err := registerCommand.Register(f.name, f.factory); err != nil {
			return nil, nil, nil, err
		}
	}

	commands := registerCommand.CreateCommands()
	commands = append(commands, completion.NewCompletionCommand(translations, completion.DefaultEnvironment()))

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	app := &cli.Command{
		Name:        "branchmate",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.FullVersion(),
		Description: translations.GetMessage("app_description", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: translations.GetMessage("flag_debug_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:    flagVerbose,
				Aliases: []string{"v"},
				Usage:   translations.GetMessage("flag_verbose_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:  flagEphemeral,
				Usage: translations.GetMessage("flag_ephemeral_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  flagDB,
				Usage: translations.GetMessage("flag_db_usage", 0, nil),
				Value: cfgApp.DatabasePath,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			l := logger.Initialize(os.Stderr, cmd.Bool(flagDebug), cmd.Bool(flagVerbose))
			container.Configure(cmd.Bool(flagEphemeral), cmd.String(flagDB))
			return logger.WithLogger(ctx, l), nil
		},
		Commands:              commands,
		EnableShellCompletion: true,
	}

	return app, container, translations, nil
}
