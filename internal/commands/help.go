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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string     { return "help" }
func (c *HelpCmd) Synopsis() string { return "Print usage" }
func (c *HelpCmd) Usage() string    { return "todosync help" }
func (c *HelpCmd) NeedsAuth() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todosync login                                 Authenticate with GitHub (device flow)
  todosync logout                                Remove stored credentials
  todosync whoami                                Print the authenticated user
  todosync remote                                List configured repositories
  todosync remote add <owner/repo>               Add a sync repository
  todosync remote remove <owner/repo>            Remove a sync repository
  todosync push [--file <path>]                  Sync checklist state to GitHub issues
  todosync pull [--file <path>]                  Sync GitHub issue state into the checklist
  todosync help
  todosync version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
