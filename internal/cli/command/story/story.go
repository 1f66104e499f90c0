package story

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/thomas-vilte/matestory/internal/cli/completion_helper"
	"github.com/thomas-vilte/matestory/internal/config"
	"github.com/thomas-vilte/matestory/internal/i18n"
	"github.com/thomas-vilte/matestory/internal/models"
	"github.com/thomas-vilte/matestory/internal/regex"
	"github.com/thomas-vilte/matestory/internal/services"
	"github.com/thomas-vilte/matestory/internal/ui"
)

// StoryService is a minimal interface for testing purposes
type StoryService interface {
	GenerateStory(ctx context.Context, params models.StoryParams) (*models.StoryDraft, error)
	CreateIssue(ctx context.Context, draft *models.StoryDraft, labels, assignees []string) (*models.Issue, error)
	GetAuthenticatedUser(ctx context.Context) (string, error)
	CheckLabels(ctx context.Context, labels []string) []string
}

type StoryServiceProvider func(ctx context.Context) (StoryService, error)

// StoryCommandFactory is the factory to create the story command.
type StoryCommandFactory struct {
	serviceProvider StoryServiceProvider
}

func NewStoryCommandFactory(serviceProvider StoryServiceProvider) *StoryCommandFactory {
	return &StoryCommandFactory{serviceProvider: serviceProvider}
}

// CreateCommand creates the main story command with its subcommands.
func (f *StoryCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "story",
		Aliases: []string{"s"},
		Usage:   t.GetMessage("story.command_usage", 0, nil),
		Commands: []*cli.Command{
			f.newCreateCommand(t, cfg),
		},
	}
}

func (f *StoryCommandFactory) newCreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "create",
		Aliases:       []string{"c"},
		Usage:         t.GetMessage("story.create_usage", 0, nil),
		Flags:         f.createFlags(t),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.createAction(t, cfg),
	}
}

func (f *StoryCommandFactory) createFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "title",
			Aliases:  []string{"t"},
			Usage:    t.GetMessage("story.flag_title", 0, nil),
			Required: true,
		},
		&cli.StringFlag{
			Name:     "description",
			Aliases:  []string{"m"},
			Usage:    t.GetMessage("story.flag_description", 0, nil),
			Required: true,
		},
		&cli.StringFlag{
			Name:    "complexity",
			Aliases: []string{"c"},
			Usage:   t.GetMessage("story.flag_complexity", 0, nil),
		},
		&cli.StringFlag{
			Name:    "duration",
			Aliases: []string{"d"},
			Usage:   t.GetMessage("story.flag_duration", 0, nil),
		},
		&cli.StringFlag{
			Name:    "labels",
			Aliases: []string{"l"},
			Usage:   t.GetMessage("story.flag_labels", 0, nil),
		},
		&cli.StringFlag{
			Name:  "assignees",
			Usage: t.GetMessage("story.flag_assignees", 0, nil),
		},
		&cli.BoolFlag{
			Name:    "assign-me",
			Aliases: []string{"a"},
			Usage:   t.GetMessage("story.flag_assign_me", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: t.GetMessage("story.flag_dry_run", 0, nil),
		},
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   t.GetMessage("story.flag_yes", 0, nil),
		},
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   t.GetMessage("story.flag_repo", 0, nil),
		},
		&cli.StringFlag{
			Name:  "api-url",
			Usage: t.GetMessage("story.flag_api_url", 0, nil),
		},
	}
}

func (f *StoryCommandFactory) createAction(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		if repo := command.String("repo"); repo != "" {
			matches := regex.OwnerRepo.FindStringSubmatch(repo)
			if matches == nil {
				msg := t.GetMessage("story.error_invalid_repo", 0, nil)
				ui.PrintError(os.Stdout, msg)
				return fmt.Errorf("%s", msg)
			}
			cfg.VCS.Owner = matches[1]
			cfg.VCS.Repo = matches[2]
		}
		if apiURL := command.String("api-url"); apiURL != "" {
			cfg.VCS.APIURL = apiURL
		}

		ui.PrintSectionBanner(t.GetMessage("story.banner", 0, nil))

		service, err := f.serviceProvider(ctx)
		if err != nil {
			ui.HandleAppError(err, t)
			return err
		}

		params := models.StoryParams{
			Title:       command.String("title"),
			Description: command.String("description"),
			Complexity:  command.String("complexity"),
			Duration:    command.String("duration"),
			Language:    cfg.Language,
		}

		spinner := ui.NewSmartSpinner(t.GetMessage("story.generating", 0, nil))
		spinner.Start()
		draft, err := service.GenerateStory(ctx, params)
		spinner.Stop()

		if err != nil {
			ui.HandleAppError(err, t)
			return err
		}

		if regex.PlaceholderTitle.MatchString(draft.Title) || regex.PlaceholderBrackets.MatchString(draft.Title) {
			ui.PrintWarning(t.GetMessage("story.warn_placeholder_title", 0, nil))
		}

		labels := services.SplitList(command.String("labels"))
		assignees := services.SplitList(command.String("assignees"))

		f.printPreview(draft, labels, t)
		ui.PrintTokenUsage(draft.Usage, t)

		if command.Bool("dry-run") {
			ui.PrintInfo(t.GetMessage("story.dry_run_complete", 0, nil))
			return nil
		}

		if unknown := service.CheckLabels(ctx, labels); len(unknown) > 0 {
			ui.PrintWarning(t.GetMessage("story.warn_unknown_labels", 0, map[string]interface{}{
				"Labels": strings.Join(unknown, ", "),
			}))
		}

		if !command.Bool("yes") && !f.promptConfirmation(t) {
			ui.PrintInfo(t.GetMessage("story.cancelled", 0, nil))
			return nil
		}

		if command.Bool("assign-me") {
			spinner = ui.NewSmartSpinner(t.GetMessage("story.getting_user", 0, nil))
			spinner.Start()
			username, err := service.GetAuthenticatedUser(ctx)
			spinner.Stop()

			if err != nil {
				ui.PrintWarning(fmt.Sprintf("%s: %v", t.GetMessage("story.warn_assignee_failed", 0, nil), err))
			} else {
				assignees = append(assignees, username)
				ui.PrintInfo(t.GetMessage("story.will_assign", 0, map[string]interface{}{
					"User": username,
				}))
			}
		}

		spinner = ui.NewSmartSpinner(t.GetMessage("story.creating", 0, nil))
		spinner.Start()
		issue, err := service.CreateIssue(ctx, draft, labels, assignees)
		spinner.Stop()

		if err != nil {
			ui.HandleAppError(err, t)
			return err
		}

		ui.PrintSuccess(os.Stdout, t.GetMessage("story.created_successfully", 0, map[string]interface{}{
			"Number": issue.Number,
			"URL":    issue.URL,
		}))
		return nil
	}
}

func (f *StoryCommandFactory) printPreview(draft *models.StoryDraft, labels []string, t *i18n.Translations) {
	separator := strings.Repeat("─", 60)

	fmt.Println()
	fmt.Println(separator)
	ui.PrintInfo(t.GetMessage("story.preview_title", 0, nil))
	fmt.Println()

	ui.PrintKeyValue(t.GetMessage("story.preview_title_label", 0, nil), draft.Title)
	fmt.Println()

	ui.PrintInfo(fmt.Sprintf("%s:", t.GetMessage("story.preview_body_label", 0, nil)))
	fmt.Println(draft.Body)
	fmt.Println()

	if count := services.CountChecklistItems(draft.Body); count > 0 {
		ui.PrintInfo(t.GetMessage("story.preview_checklist", count, map[string]interface{}{
			"Count": count,
		}))
	}

	if len(labels) > 0 {
		ui.PrintInfo(fmt.Sprintf("%s: %s", t.GetMessage("story.preview_labels_label", 0, nil), strings.Join(labels, ", ")))
	}

	fmt.Println(separator)
	fmt.Println()
}

func (f *StoryCommandFactory) promptConfirmation(t *i18n.Translations) bool {
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("%s: ", t.GetMessage("story.confirm_prompt", 0, nil))

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "" || response == "y" || response == "yes"
}
