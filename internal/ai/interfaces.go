package ai

import (
	"context"

	"github.com/thomas-vilte/matestory/internal/models"
)

// StoryGenerator produces a raw user story completion for the given
// parameters. Implementations wrap a concrete model provider.
type StoryGenerator interface {
	GenerateUserStory(ctx context.Context, params models.StoryParams) (*models.StoryCompletion, error)
}
