package config

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/thomas-vilte/matestory/internal/config"
	"github.com/thomas-vilte/matestory/internal/i18n"
)

func (c *ConfigCommandFactory) newSetLangCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set-lang",
		Usage:     t.GetMessage("config.set_lang_usage", 0, nil),
		ArgsUsage: "<lang>",
		Action: func(ctx context.Context, command *cli.Command) error {
			lang := command.Args().First()
			if lang != config.LangEN && lang != config.LangES {
				msg := t.GetMessage("config.error_invalid_lang", 0, map[string]interface{}{
					"Lang": lang,
				})
				return fmt.Errorf("%s", msg)
			}

			cfg.Language = lang
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Println(t.GetMessage("config.lang_set", 0, map[string]interface{}{
				"Lang": lang,
			}))
			return nil
		},
	}
}
