// Package service defines the backend-agnostic interface for issue operations.
package service

// IssueState is the lifecycle state of a remote issue.
type IssueState string

const (
	// IssueOpen marks an issue that is still open.
	IssueOpen IssueState = "open"

	// IssueClosed marks an issue that has been closed.
	IssueClosed IssueState = "closed"
)

// Issue is a snapshot of one remote issue. It is immutable for the duration
// of a reconciliation pass: the full set is fetched once at the start and
// never re-fetched mid-pass.
type Issue struct {
	Number int
	Title  string
	State  IssueState
}
