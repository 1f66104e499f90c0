package config

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/thomas-vilte/matestory/internal/config"
	"github.com/thomas-vilte/matestory/internal/i18n"
)

func (c *ConfigCommandFactory) newSetVCSCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set-vcs",
		Usage: t.GetMessage("config.set_vcs_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "owner",
				Usage: t.GetMessage("config.flag_owner", 0, nil),
			},
			&cli.StringFlag{
				Name:  "repo",
				Usage: t.GetMessage("config.flag_repo", 0, nil),
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: t.GetMessage("config.flag_token", 0, nil),
			},
			&cli.StringFlag{
				Name:  "api-url",
				Usage: t.GetMessage("config.flag_api_url", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			if owner := command.String("owner"); owner != "" {
				cfg.VCS.Owner = owner
			}
			if repo := command.String("repo"); repo != "" {
				cfg.VCS.Repo = repo
			}
			if token := command.String("token"); token != "" {
				cfg.VCS.Token = token
			}
			if apiURL := command.String("api-url"); apiURL != "" {
				cfg.VCS.APIURL = apiURL
			}
			cfg.VCS.Provider = "github"

			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Println(t.GetMessage("config.saved", 0, nil))
			return nil
		},
	}
}
