// Package service defines the backend-agnostic interface for issue operations.
package service

import "context"

// Service defines the interface for remote tracker operations.
// All GitHub API calls go through this interface.
// Commands never import the GitHub SDK directly.
type Service interface {
	// ListIssues returns the full snapshot of issues for the repository,
	// both open and closed, with pull requests excluded.
	ListIssues(ctx context.Context, repo string) ([]Issue, error)

	// CreateIssue creates a new open issue with the given title.
	CreateIssue(ctx context.Context, repo, title string) (Issue, error)

	// CloseIssue closes the issue with the given number.
	CloseIssue(ctx context.Context, repo string, number int) (Issue, error)

	// RepoExists reports whether the repository exists and is accessible.
	RepoExists(ctx context.Context, repo string) (bool, error)

	// AuthenticatedLogin returns the login of the authenticated user.
	AuthenticatedLogin(ctx context.Context) (string, error)
}
