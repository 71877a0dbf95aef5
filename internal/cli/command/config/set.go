package config

import (
	"context"

	"github.com/thomas-vilte/branchmate/internal/config"
	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
	"github.com/thomas-vilte/branchmate/internal/i18n"
	"github.com/thomas-vilte/branchmate/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     t.GetMessage("config_set_usage", 0, nil),
		ArgsUsage: "KEY VALUE",
		Action: func(ctx context.Context, command *cli.Command) error {
			args := command.Args()
			if args.Len() != 2 {
				return domainErrors.ErrInvalidConfig.WithContext("missing", "KEY VALUE")
			}
			key, value := args.Get(0), args.Get(1)

			return c.apply(command, t, cfg, key, value)
		},
	}
}

// apply sets one key and saves the file, leaving cfg untouched on failure.
func (c *ConfigCommandFactory) apply(command *cli.Command, t *i18n.Translations, cfg *config.Config, key, value string) error {
	updated := *cfg
	if err := updated.Set(key, value); err != nil {
		return err
	}
	if err := config.SaveConfig(&updated); err != nil {
		return err
	}
	*cfg = updated

	ui.PrintSuccess(command.Root().Writer, t.GetMessage("config_value_saved", 0, map[string]interface{}{
		"Key":   key,
		"Value": value,
	}))
	return nil
}
