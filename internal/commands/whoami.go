package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/service"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the authenticated GitHub login.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string     { return "whoami" }
func (c *WhoamiCmd) Synopsis() string { return "Print the authenticated user" }
func (c *WhoamiCmd) Usage() string    { return "todosync whoami [common flags]" }
func (c *WhoamiCmd) NeedsAuth() bool  { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	login, err := svc.AuthenticatedLogin(ctx)
	if err != nil {
		return fail(errOut, err)
	}
	fmt.Fprintln(out, login)
	return exitcode.Success
}
