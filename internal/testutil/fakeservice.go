// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sort"
	"sync"

	"todosync/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu         sync.RWMutex
	issues     map[int]service.Issue
	nextNumber int
	login      string

	// Records of mutations, in call order.
	CreatedTitles []string
	ClosedNumbers []int

	// Error injection for testing
	ListIssuesErr  error
	CreateIssueErr error
	CloseIssueErr  error
	RepoExistsErr  error
	LoginErr       error

	// Repos that RepoExists acknowledges.
	KnownRepos map[string]bool
}

// NewFakeService creates an empty fake tracker.
func NewFakeService() *FakeService {
	return &FakeService{
		issues:     make(map[int]service.Issue),
		nextNumber: 1,
		login:      "octocat",
		KnownRepos: make(map[string]bool),
	}
}

// AddIssue seeds an issue into the fake tracker.
func (f *FakeService) AddIssue(number int, title string, state service.IssueState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issues[number] = service.Issue{Number: number, Title: title, State: state}
	if number >= f.nextNumber {
		f.nextNumber = number + 1
	}
}

// Issue returns the current state of an issue.
func (f *FakeService) Issue(number int) (service.Issue, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	is, ok := f.issues[number]
	return is, ok
}

// SetLogin sets the login reported by AuthenticatedLogin.
func (f *FakeService) SetLogin(login string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.login = login
}

// ListIssues implements service.Service. Issues are returned in ascending
// number order.
func (f *FakeService) ListIssues(ctx context.Context, repo string) ([]service.Issue, error) {
	if f.ListIssuesErr != nil {
		return nil, f.ListIssuesErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	result := make([]service.Issue, 0, len(f.issues))
	for _, is := range f.issues {
		result = append(result, is)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

// CreateIssue implements service.Service.
func (f *FakeService) CreateIssue(ctx context.Context, repo, title string) (service.Issue, error) {
	if f.CreateIssueErr != nil {
		return service.Issue{}, f.CreateIssueErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	is := service.Issue{Number: f.nextNumber, Title: title, State: service.IssueOpen}
	f.issues[is.Number] = is
	f.nextNumber++
	f.CreatedTitles = append(f.CreatedTitles, title)
	return is, nil
}

// CloseIssue implements service.Service.
func (f *FakeService) CloseIssue(ctx context.Context, repo string, number int) (service.Issue, error) {
	if f.CloseIssueErr != nil {
		return service.Issue{}, f.CloseIssueErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	is, ok := f.issues[number]
	if !ok {
		return service.Issue{}, service.NewError(service.KindRepositoryNotFound, "issue not found")
	}
	is.State = service.IssueClosed
	f.issues[number] = is
	f.ClosedNumbers = append(f.ClosedNumbers, number)
	return is, nil
}

// RepoExists implements service.Service.
func (f *FakeService) RepoExists(ctx context.Context, repo string) (bool, error) {
	if f.RepoExistsErr != nil {
		return false, f.RepoExistsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.KnownRepos[repo], nil
}

// AuthenticatedLogin implements service.Service.
func (f *FakeService) AuthenticatedLogin(ctx context.Context) (string, error) {
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.login, nil
}
