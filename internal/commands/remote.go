package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/project"
	"todosync/internal/service"
)

func init() {
	Register(&RemoteCmd{})
}

// RemoteCmd manages the configured repositories: bare "remote" lists them,
// "remote add <owner/repo>" verifies and adds, "remote remove <owner/repo>"
// drops.
type RemoteCmd struct{}

func (c *RemoteCmd) Name() string     { return "remote" }
func (c *RemoteCmd) Synopsis() string { return "List or manage sync repositories" }
func (c *RemoteCmd) Usage() string {
	return "todosync remote [common flags] [add <owner/repo> | remove <owner/repo>]"
}
func (c *RemoteCmd) NeedsAuth() bool { return true }

func (c *RemoteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RemoteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	proj, err := project.Load(".")
	if err != nil {
		return fail(errOut, err)
	}

	if len(args) == 0 {
		for _, repo := range proj.Repositories {
			fmt.Fprintln(out, repo)
		}
		return exitcode.Success
	}

	if len(args) != 2 {
		fmt.Fprintf(errOut, "Error: usage: %s\n", c.Usage())
		return exitcode.UserError
	}

	repo := args[1]
	switch args[0] {
	case "add":
		return c.add(ctx, cfg, svc, proj, repo, out, errOut)
	case "remove":
		if !proj.Remove(repo) {
			fmt.Fprintf(errOut, "Error: repository not configured: %s\n", repo)
			return exitcode.UserError
		}
		if err := proj.Save("."); err != nil {
			return fail(errOut, err)
		}
		if !cfg.Quiet {
			fmt.Fprintln(out, "ok")
		}
		return exitcode.Success
	default:
		fmt.Fprintf(errOut, "Error: unknown remote subcommand: %s\n", args[0])
		return exitcode.UserError
	}
}

func (c *RemoteCmd) add(ctx context.Context, cfg *config.Config, svc service.Service, proj *project.Config, repo string, out, errOut io.Writer) int {
	// Validate before touching the network or the stored config.
	if err := project.ValidateRepo(repo); err != nil {
		return fail(errOut, err)
	}

	exists, err := svc.RepoExists(ctx, repo)
	if err != nil {
		return fail(errOut, err)
	}
	if !exists {
		return fail(errOut, service.NewError(service.KindRepositoryNotFound,
			fmt.Sprintf("repository %s not found or not accessible", repo)))
	}

	added, err := proj.Add(repo)
	if err != nil {
		return fail(errOut, err)
	}
	if added {
		if err := proj.Save("."); err != nil {
			return fail(errOut, err)
		}
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
