package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/service"
	"todosync/internal/tokenstore"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string     { return "logout" }
func (c *LogoutCmd) Synopsis() string { return "Remove stored credentials" }
func (c *LogoutCmd) Usage() string    { return "todosync logout [common flags]" }
func (c *LogoutCmd) NeedsAuth() bool  { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	store := tokenstore.NewFileStore(cfg.TokenPath())

	_, ok, err := store.Get()
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return exitcode.AuthError
	}
	if !ok {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	if err := store.Clear(); err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
