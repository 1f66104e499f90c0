package github

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/thomas-vilte/matestory/internal/errors"
)

func ghResponse(status int) *github.Response {
	return &github.Response{Response: &http.Response{StatusCode: status}}
}

func TestNewGitHubClient(t *testing.T) {
	t.Run("should reject a missing token", func(t *testing.T) {
		_, err := NewGitHubClient("owner", "repo", "", "")
		assert.ErrorIs(t, err, domainErrors.ErrTokenMissing)
	})

	t.Run("should reject a missing repository", func(t *testing.T) {
		_, err := NewGitHubClient("", "", "token", "")
		assert.ErrorIs(t, err, domainErrors.ErrRepoNotConfigured)
	})

	t.Run("should accept a custom API URL", func(t *testing.T) {
		client, err := NewGitHubClient("owner", "repo", "token", "https://git.example.com/api/v3/")
		require.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestCreateIssue(t *testing.T) {
	t.Run("should create an issue with labels and assignees", func(t *testing.T) {
		mockIssues := new(MockIssuesService)
		client := NewGitHubClientWithServices(mockIssues, nil, "owner", "repo")

		created := &github.Issue{
			ID:      github.Ptr(int64(10)),
			Number:  github.Ptr(42),
			Title:   github.Ptr("Implement Dark Mode"),
			State:   github.Ptr("open"),
			HTMLURL: github.Ptr("https://github.com/owner/repo/issues/42"),
			User:    &github.User{Login: github.Ptr("thomas")},
		}
		mockIssues.On("Create", mock.Anything, "owner", "repo", mock.MatchedBy(func(req *github.IssueRequest) bool {
			return req.GetTitle() == "Implement Dark Mode" &&
				req.Labels != nil && len(*req.Labels) == 1 &&
				req.Assignees != nil && len(*req.Assignees) == 1
		})).Return(created, ghResponse(http.StatusCreated), nil)

		issue, err := client.CreateIssue(context.Background(), "Implement Dark Mode", "body", []string{"feature"}, []string{"thomas"})

		require.NoError(t, err)
		assert.Equal(t, 42, issue.Number)
		assert.Equal(t, "https://github.com/owner/repo/issues/42", issue.URL)
		assert.Equal(t, "thomas", issue.Author)
		mockIssues.AssertExpectations(t)
	})

	t.Run("should omit labels and assignees when empty", func(t *testing.T) {
		mockIssues := new(MockIssuesService)
		client := NewGitHubClientWithServices(mockIssues, nil, "owner", "repo")

		mockIssues.On("Create", mock.Anything, "owner", "repo", mock.MatchedBy(func(req *github.IssueRequest) bool {
			return req.Labels == nil && req.Assignees == nil
		})).Return(&github.Issue{Number: github.Ptr(1)}, ghResponse(http.StatusCreated), nil)

		_, err := client.CreateIssue(context.Background(), "t", "b", nil, nil)

		require.NoError(t, err)
		mockIssues.AssertExpectations(t)
	})

	t.Run("should map 401 to an invalid token error", func(t *testing.T) {
		mockIssues := new(MockIssuesService)
		client := NewGitHubClientWithServices(mockIssues, nil, "owner", "repo")

		mockIssues.On("Create", mock.Anything, "owner", "repo", mock.Anything).
			Return(nil, ghResponse(http.StatusUnauthorized), errors.New("401"))

		_, err := client.CreateIssue(context.Background(), "t", "b", nil, nil)

		assert.ErrorIs(t, err, domainErrors.ErrGitHubTokenInvalid)
	})

	t.Run("should map 403 to insufficient permissions", func(t *testing.T) {
		mockIssues := new(MockIssuesService)
		client := NewGitHubClientWithServices(mockIssues, nil, "owner", "repo")

		mockIssues.On("Create", mock.Anything, "owner", "repo", mock.Anything).
			Return(nil, ghResponse(http.StatusForbidden), errors.New("403"))

		_, err := client.CreateIssue(context.Background(), "t", "b", nil, nil)

		assert.ErrorIs(t, err, domainErrors.ErrGitHubInsufficientPerms)
	})

	t.Run("should map an exhausted rate limit to a rate limit error", func(t *testing.T) {
		mockIssues := new(MockIssuesService)
		client := NewGitHubClientWithServices(mockIssues, nil, "owner", "repo")

		resp := ghResponse(http.StatusForbidden)
		resp.Rate = github.Rate{Limit: 5000, Remaining: 0}
		mockIssues.On("Create", mock.Anything, "owner", "repo", mock.Anything).
			Return(nil, resp, errors.New("403"))

		_, err := client.CreateIssue(context.Background(), "t", "b", nil, nil)

		assert.ErrorIs(t, err, domainErrors.ErrGitHubRateLimit)
	})

	t.Run("should map 404 to repository not found", func(t *testing.T) {
		mockIssues := new(MockIssuesService)
		client := NewGitHubClientWithServices(mockIssues, nil, "owner", "repo")

		mockIssues.On("Create", mock.Anything, "owner", "repo", mock.Anything).
			Return(nil, ghResponse(http.StatusNotFound), errors.New("404"))

		_, err := client.CreateIssue(context.Background(), "t", "b", nil, nil)

		assert.ErrorIs(t, err, domainErrors.ErrRepositoryNotFound)
		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "owner/repo", appErr.Context["repo"])
	})
}

func TestGetRepoLabels(t *testing.T) {
	t.Run("should collect labels across pages", func(t *testing.T) {
		mockIssues := new(MockIssuesService)
		client := NewGitHubClientWithServices(mockIssues, nil, "owner", "repo")

		page1 := ghResponse(http.StatusOK)
		page1.NextPage = 2
		mockIssues.On("ListLabels", mock.Anything, "owner", "repo", mock.MatchedBy(func(o *github.ListOptions) bool {
			return o.Page == 0
		})).Return([]*github.Label{{Name: github.Ptr("bug")}}, page1, nil).Once()

		mockIssues.On("ListLabels", mock.Anything, "owner", "repo", mock.MatchedBy(func(o *github.ListOptions) bool {
			return o.Page == 2
		})).Return([]*github.Label{{Name: github.Ptr("feature")}}, ghResponse(http.StatusOK), nil).Once()

		labels, err := client.GetRepoLabels(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"bug", "feature"}, labels)
		mockIssues.AssertExpectations(t)
	})

	t.Run("should propagate list errors", func(t *testing.T) {
		mockIssues := new(MockIssuesService)
		client := NewGitHubClientWithServices(mockIssues, nil, "owner", "repo")

		mockIssues.On("ListLabels", mock.Anything, "owner", "repo", mock.Anything).
			Return(nil, ghResponse(http.StatusNotFound), errors.New("404"))

		_, err := client.GetRepoLabels(context.Background())

		assert.ErrorIs(t, err, domainErrors.ErrRepositoryNotFound)
	})
}

func TestGetAuthenticatedUser(t *testing.T) {
	t.Run("should return the login of the token owner", func(t *testing.T) {
		mockUsers := new(MockUsersService)
		client := NewGitHubClientWithServices(nil, mockUsers, "owner", "repo")

		mockUsers.On("Get", mock.Anything, "").
			Return(&github.User{Login: github.Ptr("thomas")}, ghResponse(http.StatusOK), nil)

		login, err := client.GetAuthenticatedUser(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "thomas", login)
	})

	t.Run("should map 401 to an invalid token error", func(t *testing.T) {
		mockUsers := new(MockUsersService)
		client := NewGitHubClientWithServices(nil, mockUsers, "owner", "repo")

		mockUsers.On("Get", mock.Anything, "").
			Return(nil, ghResponse(http.StatusUnauthorized), errors.New("401"))

		_, err := client.GetAuthenticatedUser(context.Background())

		assert.ErrorIs(t, err, domainErrors.ErrGitHubTokenInvalid)
	})
}
