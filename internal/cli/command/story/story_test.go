package story

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/thomas-vilte/matestory/internal/config"
	domainErrors "github.com/thomas-vilte/matestory/internal/errors"
	"github.com/thomas-vilte/matestory/internal/i18n"
	"github.com/thomas-vilte/matestory/internal/models"
)

func newTestApp(t *testing.T, service StoryService, cfg *config.Config) *cli.Command {
	t.Helper()

	trans, err := i18n.NewTranslations("en")
	require.NoError(t, err)

	factory := NewStoryCommandFactory(func(ctx context.Context) (StoryService, error) {
		return service, nil
	})

	return &cli.Command{
		Name:     "matestory",
		Commands: []*cli.Command{factory.CreateCommand(trans, cfg)},
	}
}

func sampleDraft() *models.StoryDraft {
	return &models.StoryDraft{
		Title: "Implement Dark Mode Toggle",
		Body:  "## User Story\nAs a user, I want dark mode.\n\n- [ ] toggle works",
		Usage: &models.TokenUsage{TotalTokens: 120, InputTokens: 20, OutputTokens: 100},
	}
}

func TestStoryCreateCommand(t *testing.T) {
	t.Run("should create the issue end to end with --yes", func(t *testing.T) {
		mockService := new(MockStoryService)
		cfg := &config.Config{Language: "en"}
		app := newTestApp(t, mockService, cfg)

		mockService.On("GenerateStory", mock.Anything, mock.MatchedBy(func(p models.StoryParams) bool {
			return p.Title == "Dark mode" && p.Description == "Add a toggle"
		})).Return(sampleDraft(), nil)
		mockService.On("CheckLabels", mock.Anything, []string{"feature"}).Return(nil)
		mockService.On("CreateIssue", mock.Anything, mock.Anything, []string{"feature"}, []string(nil)).
			Return(&models.Issue{Number: 42, URL: "https://github.com/o/r/issues/42"}, nil)

		err := app.Run(context.Background(), []string{
			"matestory", "story", "create",
			"--title", "Dark mode",
			"--description", "Add a toggle",
			"--labels", "feature",
			"--yes",
		})

		require.NoError(t, err)
		mockService.AssertExpectations(t)
	})

	t.Run("should not create an issue on dry run", func(t *testing.T) {
		mockService := new(MockStoryService)
		cfg := &config.Config{Language: "en"}
		app := newTestApp(t, mockService, cfg)

		mockService.On("GenerateStory", mock.Anything, mock.Anything).Return(sampleDraft(), nil)

		err := app.Run(context.Background(), []string{
			"matestory", "story", "create",
			"-t", "Dark mode",
			"-m", "Add a toggle",
			"--dry-run",
		})

		require.NoError(t, err)
		mockService.AssertNotCalled(t, "CreateIssue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should override the target repository from --repo", func(t *testing.T) {
		mockService := new(MockStoryService)
		cfg := &config.Config{Language: "en", VCS: config.VCSConfig{Owner: "old", Repo: "old"}}
		app := newTestApp(t, mockService, cfg)

		mockService.On("GenerateStory", mock.Anything, mock.Anything).Return(sampleDraft(), nil)

		err := app.Run(context.Background(), []string{
			"matestory", "story", "create",
			"-t", "Dark mode",
			"-m", "Add a toggle",
			"--repo", "thomas-vilte/matestory",
			"--dry-run",
		})

		require.NoError(t, err)
		assert.Equal(t, "thomas-vilte", cfg.VCS.Owner)
		assert.Equal(t, "matestory", cfg.VCS.Repo)
	})

	t.Run("should reject a malformed --repo value", func(t *testing.T) {
		mockService := new(MockStoryService)
		app := newTestApp(t, mockService, &config.Config{Language: "en"})

		err := app.Run(context.Background(), []string{
			"matestory", "story", "create",
			"-t", "Dark mode",
			"-m", "Add a toggle",
			"--repo", "not-a-repo",
		})

		assert.Error(t, err)
		mockService.AssertNotCalled(t, "GenerateStory", mock.Anything, mock.Anything)
	})

	t.Run("should assign the authenticated user with --assign-me", func(t *testing.T) {
		mockService := new(MockStoryService)
		app := newTestApp(t, mockService, &config.Config{Language: "en"})

		mockService.On("GenerateStory", mock.Anything, mock.Anything).Return(sampleDraft(), nil)
		mockService.On("CheckLabels", mock.Anything, []string(nil)).Return(nil)
		mockService.On("GetAuthenticatedUser", mock.Anything).Return("thomas", nil)
		mockService.On("CreateIssue", mock.Anything, mock.Anything, []string(nil), []string{"thomas"}).
			Return(&models.Issue{Number: 7, URL: "u"}, nil)

		err := app.Run(context.Background(), []string{
			"matestory", "story", "create",
			"-t", "Dark mode",
			"-m", "Add a toggle",
			"--assign-me",
			"--yes",
		})

		require.NoError(t, err)
		mockService.AssertExpectations(t)
	})

	t.Run("should still create the issue when the user lookup fails", func(t *testing.T) {
		mockService := new(MockStoryService)
		app := newTestApp(t, mockService, &config.Config{Language: "en"})

		mockService.On("GenerateStory", mock.Anything, mock.Anything).Return(sampleDraft(), nil)
		mockService.On("CheckLabels", mock.Anything, []string(nil)).Return(nil)
		mockService.On("GetAuthenticatedUser", mock.Anything).
			Return("", domainErrors.ErrGitHubTokenInvalid)
		mockService.On("CreateIssue", mock.Anything, mock.Anything, []string(nil), []string(nil)).
			Return(&models.Issue{Number: 8, URL: "u"}, nil)

		err := app.Run(context.Background(), []string{
			"matestory", "story", "create",
			"-t", "Dark mode",
			"-m", "Add a toggle",
			"--assign-me",
			"--yes",
		})

		require.NoError(t, err)
		mockService.AssertExpectations(t)
	})

	t.Run("should propagate generation failures", func(t *testing.T) {
		mockService := new(MockStoryService)
		app := newTestApp(t, mockService, &config.Config{Language: "en"})

		mockService.On("GenerateStory", mock.Anything, mock.Anything).
			Return(nil, domainErrors.ErrQuotaExceeded)

		err := app.Run(context.Background(), []string{
			"matestory", "story", "create",
			"-t", "Dark mode",
			"-m", "Add a toggle",
			"--yes",
		})

		assert.ErrorIs(t, err, domainErrors.ErrQuotaExceeded)
		mockService.AssertNotCalled(t, "CreateIssue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should require title and description flags", func(t *testing.T) {
		mockService := new(MockStoryService)
		app := newTestApp(t, mockService, &config.Config{Language: "en"})

		err := app.Run(context.Background(), []string{"matestory", "story", "create"})

		assert.Error(t, err)
	})
}
