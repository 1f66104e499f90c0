package config

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/thomas-vilte/matestory/internal/config"
	"github.com/thomas-vilte/matestory/internal/i18n"
)

func (c *ConfigCommandFactory) newInitCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: t.GetMessage("config.init_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "api-key",
				Usage: t.GetMessage("config.flag_api_key", 0, nil),
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: t.GetMessage("config.flag_token", 0, nil),
			},
			&cli.StringFlag{
				Name:  "owner",
				Usage: t.GetMessage("config.flag_owner", 0, nil),
			},
			&cli.StringFlag{
				Name:  "repo",
				Usage: t.GetMessage("config.flag_repo", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			if apiKey := command.String("api-key"); apiKey != "" {
				if cfg.AIProviders == nil {
					cfg.AIProviders = make(map[string]config.AIProviderConfig)
				}
				provider := cfg.AIProviders[string(config.AIGemini)]
				provider.APIKey = apiKey
				cfg.AIProviders[string(config.AIGemini)] = provider
			}
			if token := command.String("token"); token != "" {
				cfg.VCS.Token = token
			}
			if owner := command.String("owner"); owner != "" {
				cfg.VCS.Owner = owner
			}
			if repo := command.String("repo"); repo != "" {
				cfg.VCS.Repo = repo
			}

			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Println(t.GetMessage("config.initialized", 0, map[string]interface{}{
				"Path": cfg.PathFile,
			}))
			return nil
		},
	}
}
