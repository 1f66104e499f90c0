package config

import (
	"github.com/urfave/cli/v3"

	"github.com/thomas-vilte/matestory/internal/config"
	"github.com/thomas-vilte/matestory/internal/i18n"
)

// ConfigCommandFactory is the factory to create the config command.
type ConfigCommandFactory struct{}

func NewConfigCommandFactory() *ConfigCommandFactory {
	return &ConfigCommandFactory{}
}

// CreateCommand creates the main config command with its subcommands.
func (c *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   t.GetMessage("config.command_usage", 0, nil),
		Commands: []*cli.Command{
			c.newInitCommand(t, cfg),
			c.newShowCommand(t, cfg),
			c.newSetAPIKeyCommand(t, cfg),
			c.newSetLangCommand(t, cfg),
			c.newSetVCSCommand(t, cfg),
		},
	}
}
