package config

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/thomas-vilte/matestory/internal/config"
	"github.com/thomas-vilte/matestory/internal/i18n"
	"github.com/thomas-vilte/matestory/internal/ui"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config.show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			fmt.Println(t.GetMessage("config.current_config", 0, nil))
			fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━")

			ui.PrintKeyValue("language", cfg.Language)
			ui.PrintKeyValue("ai", string(cfg.AIConfig.ActiveAI))
			ui.PrintKeyValue("model", string(cfg.AIConfig.Models[config.AIGemini]))
			ui.PrintKeyValue("max_output_tokens", fmt.Sprintf("%d", cfg.AIConfig.MaxOutputTokens))
			ui.PrintKeyValue("temperature", fmt.Sprintf("%.2f", cfg.AIConfig.Temperature))

			provider := cfg.AIProviders[string(config.AIGemini)]
			ui.PrintKeyValue("gemini_api_key", maskSecret(provider.APIKey))

			ui.PrintKeyValue("vcs", cfg.VCS.Provider)
			ui.PrintKeyValue("repository", fmt.Sprintf("%s/%s", cfg.VCS.Owner, cfg.VCS.Repo))
			ui.PrintKeyValue("token", maskSecret(cfg.VCS.Token))
			if cfg.VCS.APIURL != "" {
				ui.PrintKeyValue("api_url", cfg.VCS.APIURL)
			}

			return nil
		},
	}
}

// maskSecret keeps the last four characters visible so the user can
// tell which credential is configured.
func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
