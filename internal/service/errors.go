package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so the command layer can map each kind to
// one fixed user-facing message and exit code.
type ErrorKind int

const (
	// KindUnknown is an unclassified failure.
	KindUnknown ErrorKind = iota

	// KindAuthenticationRequired means no token is stored.
	KindAuthenticationRequired

	// KindNoRepositoryConfigured means no remote has been added.
	KindNoRepositoryConfigured

	// KindDocumentNotFound means the checklist document is missing.
	KindDocumentNotFound

	// KindInvalidRepositoryFormat means a repo name is not <owner>/<repo>.
	KindInvalidRepositoryFormat

	// KindRepositoryNotFound means the repository does not exist or is not accessible.
	KindRepositoryNotFound

	// KindNetworkError means the transport failed.
	KindNetworkError

	// KindRateLimitError means the tracker rejected the request for rate limiting.
	KindRateLimitError

	// KindAuthExpired means the token or device authorization expired.
	KindAuthExpired

	// KindAuthDenied means the user declined the authorization.
	KindAuthDenied
)

// Error is a classified failure. Core components return these instead of
// throwing generically; commands switch on Kind.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil && e.Msg != "" {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Msg
}

// Unwrap returns the wrapped error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a classified error.
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// WrapError classifies an underlying error.
func WrapError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the ErrorKind from err, or KindUnknown if err is not a
// classified error.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}
