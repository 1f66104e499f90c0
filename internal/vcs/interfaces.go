package vcs

import (
	"context"

	"github.com/thomas-vilte/matestory/internal/models"
)

// VCSClient abstracts the issue tracker the story is filed on.
type VCSClient interface {
	CreateIssue(ctx context.Context, title, body string, labels, assignees []string) (*models.Issue, error)
	GetRepoLabels(ctx context.Context) ([]string, error)
	GetAuthenticatedUser(ctx context.Context) (string, error)
}
