package services

import (
	"context"
	"strings"

	"github.com/thomas-vilte/matestory/internal/ai"
	"github.com/thomas-vilte/matestory/internal/config"
	domainErrors "github.com/thomas-vilte/matestory/internal/errors"
	"github.com/thomas-vilte/matestory/internal/logger"
	"github.com/thomas-vilte/matestory/internal/models"
	"github.com/thomas-vilte/matestory/internal/regex"
	"github.com/thomas-vilte/matestory/internal/vcs"
)

const (
	defaultComplexity = "Medium"
	defaultDuration   = "1 week"
)

// StoryService orchestrates story generation and issue creation.
type StoryService struct {
	ai     ai.StoryGenerator
	vcs    vcs.VCSClient
	config *config.Config
}

type StoryServiceOption func(*StoryService)

func WithVCSClient(client vcs.VCSClient) StoryServiceOption {
	return func(s *StoryService) {
		s.vcs = client
	}
}

func WithConfig(cfg *config.Config) StoryServiceOption {
	return func(s *StoryService) {
		s.config = cfg
	}
}

func NewStoryService(generator ai.StoryGenerator, opts ...StoryServiceOption) *StoryService {
	service := &StoryService{ai: generator}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// GenerateStory asks the AI for a completion and splits it into the
// issue title and body. Title and body together cover the whole
// completion, nothing the model wrote is dropped.
func (s *StoryService) GenerateStory(ctx context.Context, params models.StoryParams) (*models.StoryDraft, error) {
	if s.ai == nil {
		return nil, domainErrors.ErrAPIKeyMissing
	}
	if strings.TrimSpace(params.Title) == "" || strings.TrimSpace(params.Description) == "" {
		return nil, domainErrors.NewAppError(domainErrors.TypeConfiguration, "title and description are required", nil)
	}

	if params.Complexity == "" {
		params.Complexity = defaultComplexity
	}
	if params.Duration == "" {
		params.Duration = defaultDuration
	}
	if params.Language == "" && s.config != nil {
		params.Language = s.config.Language
	}

	completion, err := s.ai.GenerateUserStory(ctx, params)
	if err != nil {
		return nil, err
	}

	if completion.Usage == nil {
		completion.Usage = &models.TokenUsage{}
	}

	draft := &models.StoryDraft{
		Title: ai.ExtractTitle(completion.Text),
		Body:  ai.ExtractBody(completion.Text),
		Raw:   completion.Text,
		Usage: completion.Usage,
	}

	logger.FromContext(ctx).Debug("story draft ready",
		"title", draft.Title,
		"total_tokens", draft.Usage.TotalTokens)

	return draft, nil
}

// CreateIssue files the draft on the configured tracker.
func (s *StoryService) CreateIssue(ctx context.Context, draft *models.StoryDraft, labels, assignees []string) (*models.Issue, error) {
	if s.vcs == nil {
		return nil, domainErrors.ErrRepoNotConfigured
	}
	return s.vcs.CreateIssue(ctx, draft.Title, draft.Body, labels, assignees)
}

func (s *StoryService) GetAuthenticatedUser(ctx context.Context) (string, error) {
	if s.vcs == nil {
		return "", domainErrors.ErrRepoNotConfigured
	}
	return s.vcs.GetAuthenticatedUser(ctx)
}

// CheckLabels returns the requested labels that do not exist in the
// repository yet. Lookup failures are swallowed, a warning about
// unknown labels is never worth failing the command for.
func (s *StoryService) CheckLabels(ctx context.Context, labels []string) []string {
	if s.vcs == nil || len(labels) == 0 {
		return nil
	}

	existing, err := s.vcs.GetRepoLabels(ctx)
	if err != nil {
		logger.FromContext(ctx).Debug("label lookup failed", "error", err)
		return nil
	}

	known := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		known[strings.ToLower(name)] = struct{}{}
	}

	var unknown []string
	for _, label := range labels {
		if _, ok := known[strings.ToLower(label)]; !ok {
			unknown = append(unknown, label)
		}
	}
	return unknown
}

// SplitList parses a comma separated flag value into a clean slice,
// dropping empties and duplicates while preserving order.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var items []string
	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		items = append(items, item)
	}
	return items
}

// CountChecklistItems counts markdown task list entries in a body.
func CountChecklistItems(body string) int {
	count := 0
	for _, line := range strings.Split(body, "\n") {
		if regex.MarkdownCheckbox.MatchString(line) {
			count++
		}
	}
	return count
}
