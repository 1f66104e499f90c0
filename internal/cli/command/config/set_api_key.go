package config

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/thomas-vilte/matestory/internal/config"
	"github.com/thomas-vilte/matestory/internal/i18n"
)

func (c *ConfigCommandFactory) newSetAPIKeyCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set-api-key",
		Usage:     t.GetMessage("config.set_api_key_usage", 0, nil),
		ArgsUsage: "<key>",
		Action: func(ctx context.Context, command *cli.Command) error {
			apiKey := command.Args().First()
			if apiKey == "" {
				msg := t.GetMessage("config.error_missing_key", 0, nil)
				return fmt.Errorf("%s", msg)
			}

			if cfg.AIProviders == nil {
				cfg.AIProviders = make(map[string]config.AIProviderConfig)
			}
			provider := cfg.AIProviders[string(config.AIGemini)]
			provider.APIKey = apiKey
			cfg.AIProviders[string(config.AIGemini)] = provider

			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Println(t.GetMessage("config.saved", 0, nil))
			return nil
		},
	}
}
