// Package githubissues implements the service.Service interface using the
// GitHub Issues API.
package githubissues

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"todosync/internal/service"
	"todosync/internal/tokenstore"
)

const (
	// PageSize is the number of issues per page when listing.
	PageSize = 100

	// APITimeout is the timeout for a single API call.
	APITimeout = 30 * time.Second
)

// Client implements service.Service using the GitHub API.
type Client struct {
	gh *github.Client
}

// New creates a client authenticated with the stored token.
// Fails with AuthenticationRequired when no token is stored.
func New(ctx context.Context, store tokenstore.Store) (*Client, error) {
	token, ok, err := store.Get()
	if err != nil {
		return nil, service.WrapError(service.KindAuthenticationRequired, "failed to load token", err)
	}
	if !ok {
		return nil, service.NewError(service.KindAuthenticationRequired,
			"not logged in (run: todosync login)")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, ts)

	return &Client{gh: github.NewClient(httpClient)}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client and base URL
// (for testing against httptest servers).
func NewWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	gh := github.NewClient(httpClient)
	if baseURL != "" {
		var err error
		gh, err = gh.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, err
		}
	}
	return &Client{gh: gh}, nil
}

// ListIssues returns the full issue snapshot, open and closed, pull requests
// excluded, paginated to exhaustion before any reconciliation begins.
func (c *Client) ListIssues(ctx context.Context, repo string) ([]service.Issue, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	opts := &github.IssueListByRepoOptions{
		State:     "all",
		Sort:      "created",
		Direction: "asc",
		ListOptions: github.ListOptions{
			PerPage: PageSize,
		},
	}

	var result []service.Issue
	for {
		issues, resp, err := c.listPage(ctx, owner, name, opts)
		if err != nil {
			return nil, wrapError(err)
		}
		for _, is := range issues {
			if is.IsPullRequest() {
				continue
			}
			result = append(result, toIssue(is))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

func (c *Client) listPage(ctx context.Context, owner, name string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()
	return c.gh.Issues.ListByRepo(ctx, owner, name, opts)
}

// CreateIssue creates a new open issue with the given title.
func (c *Client) CreateIssue(ctx context.Context, repo, title string) (service.Issue, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return service.Issue{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	issue, _, err := c.gh.Issues.Create(ctx, owner, name, &github.IssueRequest{
		Title: github.String(title),
	})
	if err != nil {
		return service.Issue{}, wrapError(err)
	}
	return toIssue(issue), nil
}

// CloseIssue closes the issue with the given number.
func (c *Client) CloseIssue(ctx context.Context, repo string, number int) (service.Issue, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return service.Issue{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	issue, _, err := c.gh.Issues.Edit(ctx, owner, name, number, &github.IssueRequest{
		State: github.String("closed"),
	})
	if err != nil {
		return service.Issue{}, wrapError(err)
	}
	return toIssue(issue), nil
}

// RepoExists reports whether the repository exists and is accessible.
func (c *Client) RepoExists(ctx context.Context, repo string) (bool, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, resp, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden) {
			return false, nil
		}
		return false, wrapError(err)
	}
	return true, nil
}

// AuthenticatedLogin returns the login of the authenticated user.
func (c *Client) AuthenticatedLogin(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	user, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return "", wrapError(err)
	}
	return user.GetLogin(), nil
}

func toIssue(is *github.Issue) service.Issue {
	state := service.IssueClosed
	if is.GetState() == "open" {
		state = service.IssueOpen
	}
	return service.Issue{
		Number: is.GetNumber(),
		Title:  is.GetTitle(),
		State:  state,
	}
}

// splitRepo validates and splits an "owner/repo" string.
func splitRepo(repo string) (owner, name string, err error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", service.NewError(service.KindInvalidRepositoryFormat,
			"repository must be in <owner>/<repo> format: "+repo)
	}
	return parts[0], parts[1], nil
}

// wrapError maps API failures onto the error taxonomy.
func wrapError(err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return service.WrapError(service.KindRateLimitError, "rate limited by GitHub", err)
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return service.WrapError(service.KindRateLimitError, "rate limited by GitHub", err)
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusUnauthorized:
			return service.WrapError(service.KindAuthExpired,
				"token invalid or expired (run: todosync login)", err)
		case http.StatusNotFound:
			return service.WrapError(service.KindRepositoryNotFound,
				"repository not found or not accessible", err)
		}
	}

	return service.WrapError(service.KindNetworkError, "GitHub request failed", err)
}
