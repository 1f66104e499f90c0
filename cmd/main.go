package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	configcmd "github.com/thomas-vilte/matestory/internal/cli/command/config"
	"github.com/thomas-vilte/matestory/internal/cli/command/story"
	"github.com/thomas-vilte/matestory/internal/cli/registry"
	cfg "github.com/thomas-vilte/matestory/internal/config"
	"github.com/thomas-vilte/matestory/internal/i18n"
	"github.com/thomas-vilte/matestory/internal/logger"
	"github.com/thomas-vilte/matestory/internal/services"
	"github.com/thomas-vilte/matestory/internal/version"

	"github.com/thomas-vilte/matestory/internal/ai/gemini"
	"github.com/thomas-vilte/matestory/internal/vcs/github"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error starting the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not resolve the user home directory: %w", err)
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language)
	if err != nil {
		return nil, fmt.Errorf("could not load translations: %w", err)
	}

	if err := cfg.SaveConfig(cfgApp); err != nil {
		return nil, err
	}

	storyServiceProvider := func(ctx context.Context) (story.StoryService, error) {
		generator, err := gemini.NewStoryGeneratorService(ctx, cfgApp, translations)
		if err != nil {
			return nil, err
		}

		opts := []services.StoryServiceOption{services.WithConfig(cfgApp)}

		vcsClient, err := github.NewGitHubClient(cfgApp.VCS.Owner, cfgApp.VCS.Repo, cfgApp.VCS.Token, cfgApp.VCS.APIURL)
		if err == nil {
			opts = append(opts, services.WithVCSClient(vcsClient))
		}

		return services.NewStoryService(generator, opts...), nil
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("story", story.NewStoryCommandFactory(storyServiceProvider)); err != nil {
		return nil, fmt.Errorf("error registering the 'story' command: %w", err)
	}

	if err := registerCommand.Register("config", configcmd.NewConfigCommandFactory()); err != nil {
		return nil, fmt.Errorf("error registering the 'config' command: %w", err)
	}

	commands := registerCommand.CreateCommands()

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	return &cli.Command{
		Name:                  "matestory",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.Version,
		Description:           translations.GetMessage("app_description", 0, nil),
		Commands:              commands,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable verbose logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))
			return ctx, nil
		},
	}, nil
}
