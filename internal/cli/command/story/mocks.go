package story

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/thomas-vilte/matestory/internal/models"
)

type MockStoryService struct {
	mock.Mock
}

func (m *MockStoryService) GenerateStory(ctx context.Context, params models.StoryParams) (*models.StoryDraft, error) {
	args := m.Called(ctx, params)
	var draft *models.StoryDraft
	if args.Get(0) != nil {
		draft = args.Get(0).(*models.StoryDraft)
	}
	return draft, args.Error(1)
}

func (m *MockStoryService) CreateIssue(ctx context.Context, draft *models.StoryDraft, labels, assignees []string) (*models.Issue, error) {
	args := m.Called(ctx, draft, labels, assignees)
	var issue *models.Issue
	if args.Get(0) != nil {
		issue = args.Get(0).(*models.Issue)
	}
	return issue, args.Error(1)
}

func (m *MockStoryService) GetAuthenticatedUser(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockStoryService) CheckLabels(ctx context.Context, labels []string) []string {
	args := m.Called(ctx, labels)
	var unknown []string
	if args.Get(0) != nil {
		unknown = args.Get(0).([]string)
	}
	return unknown
}
