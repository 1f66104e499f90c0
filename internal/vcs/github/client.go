package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	domainErrors "github.com/thomas-vilte/matestory/internal/errors"
	"github.com/thomas-vilte/matestory/internal/logger"
	"github.com/thomas-vilte/matestory/internal/models"
	"github.com/thomas-vilte/matestory/internal/vcs"
)

// IssuesService is the slice of the GitHub issues API the client needs.
type IssuesService interface {
	Create(ctx context.Context, owner string, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
	ListLabels(ctx context.Context, owner string, repo string, opts *github.ListOptions) ([]*github.Label, *github.Response, error)
}

// UsersService is the slice of the GitHub users API the client needs.
type UsersService interface {
	Get(ctx context.Context, user string) (*github.User, *github.Response, error)
}

type GitHubClient struct {
	issuesService IssuesService
	usersService  UsersService
	owner         string
	repo          string
}

var _ vcs.VCSClient = (*GitHubClient)(nil)

// NewGitHubClient builds a client for github.com, or for a
// GitHub-compatible tracker when apiURL is set.
func NewGitHubClient(owner, repo, token, apiURL string) (*GitHubClient, error) {
	if token == "" {
		return nil, domainErrors.ErrTokenMissing
	}
	if owner == "" || repo == "" {
		return nil, domainErrors.ErrRepoNotConfigured
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)

	client := github.NewClient(tc)
	if apiURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", apiURL, err)
		}
	}

	return &GitHubClient{
		issuesService: client.Issues,
		usersService:  client.Users,
		owner:         owner,
		repo:          repo,
	}, nil
}

// NewGitHubClientWithServices wires explicit service implementations,
// used by tests.
func NewGitHubClientWithServices(issues IssuesService, users UsersService, owner, repo string) *GitHubClient {
	return &GitHubClient{
		issuesService: issues,
		usersService:  users,
		owner:         owner,
		repo:          repo,
	}
}

func (c *GitHubClient) CreateIssue(ctx context.Context, title, body string, labels, assignees []string) (*models.Issue, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating issue",
		"owner", c.owner,
		"repo", c.repo,
		"title", title)

	req := &github.IssueRequest{
		Title: github.Ptr(title),
		Body:  github.Ptr(body),
	}
	if len(labels) > 0 {
		req.Labels = &labels
	}
	if len(assignees) > 0 {
		req.Assignees = &assignees
	}

	issue, resp, err := c.issuesService.Create(ctx, c.owner, c.repo, req)
	if err != nil {
		return nil, c.mapError(resp, err, "create issue")
	}

	created := mapIssue(issue)
	log.Info("issue created",
		"issue_number", created.Number,
		"issue_url", created.URL)
	return created, nil
}

func (c *GitHubClient) GetRepoLabels(ctx context.Context) ([]string, error) {
	opts := &github.ListOptions{PerPage: 100}
	var names []string

	for {
		labels, resp, err := c.issuesService.ListLabels(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, c.mapError(resp, err, "list labels")
		}
		for _, label := range labels {
			names = append(names, label.GetName())
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return names, nil
}

func (c *GitHubClient) GetAuthenticatedUser(ctx context.Context) (string, error) {
	user, resp, err := c.usersService.Get(ctx, "")
	if err != nil {
		return "", c.mapError(resp, err, "get authenticated user")
	}
	return user.GetLogin(), nil
}

func (c *GitHubClient) mapError(resp *github.Response, err error, operation string) error {
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domainErrors.ErrGitHubTokenInvalid.
				WithError(err).
				WithContext("operation", operation)
		case http.StatusForbidden:
			if resp.Rate.Limit > 0 && resp.Rate.Remaining == 0 {
				return domainErrors.ErrGitHubRateLimit.
					WithError(err).
					WithContext("operation", operation)
			}
			return domainErrors.ErrGitHubInsufficientPerms.
				WithError(err).
				WithContext("operation", operation)
		case http.StatusNotFound:
			return domainErrors.ErrRepositoryNotFound.
				WithError(err).
				WithContext("repo", fmt.Sprintf("%s/%s", c.owner, c.repo))
		}
	}

	return domainErrors.ErrCreateIssue.
		WithError(err).
		WithContext("operation", operation)
}

func mapIssue(issue *github.Issue) *models.Issue {
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}

	return &models.Issue{
		ID:     issue.GetID(),
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
		State:  issue.GetState(),
		Author: issue.GetUser().GetLogin(),
		URL:    issue.GetHTMLURL(),
		Labels: labels,
	}
}
