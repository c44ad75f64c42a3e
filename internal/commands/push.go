package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/output"
	"todosync/internal/project"
	"todosync/internal/reconcile"
	"todosync/internal/service"
	"todosync/internal/todo"
)

// DefaultDocument is the checklist file push and pull operate on.
const DefaultDocument = "TODO.md"

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command: local checklist state drives remote
// issue creation and closing.
type PushCmd struct {
	file string
}

func (c *PushCmd) Name() string     { return "push" }
func (c *PushCmd) Synopsis() string { return "Sync local checklist state to GitHub issues" }
func (c *PushCmd) Usage() string    { return "todosync push [common flags] [--file <path>]" }
func (c *PushCmd) NeedsAuth() bool  { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.file, "file", "", "")
}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	logger := newLogger(errOut, cfg)

	file, doc, original, err := loadDocument(c.file, cfg, logger)
	if err != nil {
		return fail(errOut, err)
	}

	repo, err := configuredRepo()
	if err != nil {
		return fail(errOut, err)
	}

	// Full snapshot before any diffing: the reconciler sees one consistent view.
	issues, err := svc.ListIssues(ctx, repo)
	if err != nil {
		return fail(errOut, err)
	}
	dir := reconcile.NewDirectory(issues)

	actions := reconcile.Push(doc.Items(), dir)

	var execErr error
	for _, a := range actions {
		switch a.Kind {
		case reconcile.ActionCreateIssue:
			issue, err := svc.CreateIssue(ctx, repo, a.Title)
			if err != nil {
				execErr = err
				break
			}
			doc.SetIssueRef(a.Position, issue.Number)
			if !cfg.Quiet {
				output.Created(out, issue)
			}
			if a.Checked {
				if _, err := svc.CloseIssue(ctx, repo, issue.Number); err != nil {
					execErr = err
					break
				}
				if !cfg.Quiet {
					output.Closed(out, issue.Number)
				}
			}
		case reconcile.ActionCloseIssue:
			if _, err := svc.CloseIssue(ctx, repo, a.Number); err != nil {
				execErr = err
				break
			}
			if !cfg.Quiet {
				output.Closed(out, a.Number)
			}
		case reconcile.ActionLinkReference:
			doc.SetIssueRef(a.Position, a.Number)
			if it, ok := doc.Item(a.Position); ok && !cfg.Quiet {
				output.Linked(out, it.Text, a.Number)
			}
		case reconcile.ActionReportStaleReference:
			logger.Warn("stale issue reference, leaving annotation as-is",
				"issue", a.Number, "position", a.Position)
		}
		if execErr != nil {
			break
		}
	}

	// Persist whatever was linked so far even on failure: issued remote
	// mutations are not rolled back, and losing the reference would make
	// the next push create a duplicate issue.
	if err := writeDocument(file, doc, original); err != nil {
		return fail(errOut, err)
	}
	if execErr != nil {
		return fail(errOut, execErr)
	}
	return exitcode.Success
}

// loadDocument reads and parses the checklist file, logging parse warnings.
func loadDocument(flagFile string, cfg *config.Config, logger warnLogger) (string, *todo.Document, string, error) {
	file := flagFile
	if file == "" {
		file = cfg.File
	}
	if file == "" {
		file = DefaultDocument
	}

	data, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return "", nil, "", service.NewError(service.KindDocumentNotFound,
			fmt.Sprintf("document not found: %s", file))
	}
	if err != nil {
		return "", nil, "", service.WrapError(service.KindDocumentNotFound,
			"failed to read document", err)
	}

	doc, warnings := todo.Parse(string(data))
	for _, w := range warnings {
		logger.Warn(w.Msg, "line", w.Line)
	}
	return file, doc, string(data), nil
}

// warnLogger is the slice of the logger the document loader needs.
type warnLogger interface {
	Warn(msg interface{}, keyvals ...interface{})
}

// writeDocument persists the rendered document when it differs from the
// original text.
func writeDocument(file string, doc *todo.Document, original string) error {
	rendered := doc.Render()
	if rendered == original {
		return nil
	}
	if err := os.WriteFile(file, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// configuredRepo resolves the sync target from the project configuration.
func configuredRepo() (string, error) {
	proj, err := project.Load(".")
	if err != nil {
		return "", err
	}
	return proj.First()
}
