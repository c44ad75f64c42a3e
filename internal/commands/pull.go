package commands

import (
	"context"
	"flag"
	"io"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/output"
	"todosync/internal/reconcile"
	"todosync/internal/service"
	"todosync/internal/todo"
)

func init() {
	Register(&PullCmd{})
}

// PullCmd implements the pull command: remote issue state drives checking
// items off and appending newly discovered open issues.
type PullCmd struct {
	file string
}

func (c *PullCmd) Name() string     { return "pull" }
func (c *PullCmd) Synopsis() string { return "Sync GitHub issue state into the local checklist" }
func (c *PullCmd) Usage() string    { return "todosync pull [common flags] [--file <path>]" }
func (c *PullCmd) NeedsAuth() bool  { return true }

func (c *PullCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.file, "file", "", "")
}

func (c *PullCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	logger := newLogger(errOut, cfg)

	file, doc, original, err := loadDocument(c.file, cfg, logger)
	if err != nil {
		return fail(errOut, err)
	}

	repo, err := configuredRepo()
	if err != nil {
		return fail(errOut, err)
	}

	issues, err := svc.ListIssues(ctx, repo)
	if err != nil {
		return fail(errOut, err)
	}
	dir := reconcile.NewDirectory(issues)

	for _, a := range reconcile.Pull(doc.Items(), dir) {
		switch a.Kind {
		case reconcile.ActionCheckItem:
			doc.SetChecked(a.Position)
			if it, ok := doc.Item(a.Position); ok && !cfg.Quiet {
				output.Checked(out, it.Text)
			}
		case reconcile.ActionAppendItem:
			doc.Append(todo.Item{
				Text:     a.Title,
				Checked:  a.Checked,
				IssueRef: a.Number,
			})
			if !cfg.Quiet {
				output.Added(out, a.Title, a.Number)
			}
		}
	}

	if err := writeDocument(file, doc, original); err != nil {
		return fail(errOut, err)
	}
	return exitcode.Success
}
