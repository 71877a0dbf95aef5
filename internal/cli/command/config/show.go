package config

import (
	"context"
	"fmt"
	"strconv"

	"github.com/thomas-vilte/branchmate/internal/config"
	"github.com/thomas-vilte/branchmate/internal/i18n"
	"github.com/thomas-vilte/branchmate/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config_show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			w := command.Root().Writer
			_, _ = fmt.Fprintln(w, t.GetMessage("current_config", 0, nil))
			_, _ = fmt.Fprintln(w, "━━━━━━━━━━━━━━━━━━━━━━━")

			ui.PrintKeyValue(w, config.KeyLanguage, cfg.Language)
			ui.PrintKeyValue(w, config.KeyDatabasePath, cfg.DatabasePath)
			ui.PrintKeyValue(w, config.KeyPageRetries, strconv.Itoa(cfg.PageRetries))
			ui.PrintKeyValue(w, config.KeyPageDelayMs, strconv.Itoa(cfg.PageDelayMs))
			ui.PrintKeyValue(w, t.GetMessage("config_file_label", 0, nil), cfg.PathFile)
			return nil
		},
	}
}
