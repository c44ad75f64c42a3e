package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"todosync/internal/config"
	"todosync/internal/deviceflow"
	"todosync/internal/exitcode"
	"todosync/internal/service"
	"todosync/internal/tokenstore"
)

// ClientID is the GitHub OAuth app client ID. Overridable at build time via
// -ldflags, and at runtime through TODOSYNC_CLIENT_ID.
var ClientID = "Ov23liJYJNu4todosync"

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	// NewFlow builds the device flow; tests replace it with a fake.
	NewFlow func(store tokenstore.Store) *deviceflow.Flow
}

func (c *LoginCmd) Name() string     { return "login" }
func (c *LoginCmd) Synopsis() string { return "Authenticate with GitHub" }
func (c *LoginCmd) Usage() string    { return "todosync login [common flags]" }
func (c *LoginCmd) NeedsAuth() bool  { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	store := tokenstore.NewFileStore(cfg.TokenPath())

	if _, ok, err := store.Get(); err == nil && ok {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "Error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}

	flow := c.newFlow(store)

	if err := flow.Start(ctx); err != nil {
		return fail(errOut, err)
	}

	userCode, verificationURI, err := flow.UserPrompt()
	if err != nil {
		return fail(errOut, err)
	}
	fmt.Fprintf(out, "Please visit: %s\n", verificationURI)
	fmt.Fprintf(out, "and enter code: %s\n", userCode)

	if _, err := flow.Poll(ctx); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "✓ Authentication complete")
	}
	return exitcode.Success
}

func (c *LoginCmd) newFlow(store tokenstore.Store) *deviceflow.Flow {
	if c.NewFlow != nil {
		return c.NewFlow(store)
	}
	clientID := ClientID
	if env := os.Getenv("TODOSYNC_CLIENT_ID"); env != "" {
		clientID = env
	}
	return deviceflow.New(deviceflow.NewGitHubAuthorizer(clientID), store)
}
