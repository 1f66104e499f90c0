package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/thomas-vilte/matestory/internal/models"
)

type MockStoryGenerator struct {
	mock.Mock
}

func (m *MockStoryGenerator) GenerateUserStory(ctx context.Context, params models.StoryParams) (*models.StoryCompletion, error) {
	args := m.Called(ctx, params)
	var completion *models.StoryCompletion
	if args.Get(0) != nil {
		completion = args.Get(0).(*models.StoryCompletion)
	}
	return completion, args.Error(1)
}

type MockVCSClient struct {
	mock.Mock
}

func (m *MockVCSClient) CreateIssue(ctx context.Context, title, body string, labels, assignees []string) (*models.Issue, error) {
	args := m.Called(ctx, title, body, labels, assignees)
	var issue *models.Issue
	if args.Get(0) != nil {
		issue = args.Get(0).(*models.Issue)
	}
	return issue, args.Error(1)
}

func (m *MockVCSClient) GetRepoLabels(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	var labels []string
	if args.Get(0) != nil {
		labels = args.Get(0).([]string)
	}
	return labels, args.Error(1)
}

func (m *MockVCSClient) GetAuthenticatedUser(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
