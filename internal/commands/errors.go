package commands

import (
	"fmt"
	"io"

	"todosync/internal/exitcode"
	"todosync/internal/service"
)

// fail prints the single-line error contract and returns the exit code for
// the error's kind.
func fail(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "Error: %s\n", err)
	return codeFor(err)
}

func codeFor(err error) int {
	switch service.KindOf(err) {
	case service.KindAuthenticationRequired, service.KindAuthExpired, service.KindAuthDenied:
		return exitcode.AuthError
	case service.KindNoRepositoryConfigured,
		service.KindDocumentNotFound,
		service.KindInvalidRepositoryFormat,
		service.KindRepositoryNotFound:
		return exitcode.UserError
	default:
		return exitcode.BackendError
	}
}
