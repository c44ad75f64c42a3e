package reconcile

import (
	"todosync/internal/service"
	"todosync/internal/todo"
)

// Push computes the actions that align the remote tracker with the document.
// Items are processed in ascending position order so the plan is
// deterministic. Push never reopens a closed issue, and running it again
// against the state produced by executing the plan decides nothing new.
func Push(items []todo.Item, dir *Directory) []Action {
	var actions []Action

	for _, it := range items {
		if it.HasRef() {
			issue, ok := dir.ByNumber(it.IssueRef)
			if !ok {
				actions = append(actions, Action{
					Kind:     ActionReportStaleReference,
					Position: it.Position,
					Number:   it.IssueRef,
				})
				continue
			}
			if it.Checked && issue.State == service.IssueOpen {
				actions = append(actions, Action{
					Kind:   ActionCloseIssue,
					Number: issue.Number,
				})
			}
			continue
		}

		if issue, ok := dir.ByTitle(it.Text); ok {
			actions = append(actions, Action{
				Kind:     ActionLinkReference,
				Position: it.Position,
				Number:   issue.Number,
			})
			if it.Checked && issue.State == service.IssueOpen {
				actions = append(actions, Action{
					Kind:   ActionCloseIssue,
					Number: issue.Number,
				})
			}
			continue
		}

		actions = append(actions, Action{
			Kind:     ActionCreateIssue,
			Position: it.Position,
			Title:    it.Text,
			Checked:  it.Checked,
		})
	}

	return actions
}

// Pull computes the actions that align the document with the remote
// snapshot: items referencing a closed issue get checked, and open issues
// not present in the document get appended. Check actions come first in
// document order, then appends in ascending issue-number order.
func Pull(items []todo.Item, dir *Directory) []Action {
	var actions []Action

	for _, it := range items {
		if !it.HasRef() || it.Checked {
			continue
		}
		if issue, ok := dir.ByNumber(it.IssueRef); ok && issue.State == service.IssueClosed {
			actions = append(actions, Action{
				Kind:     ActionCheckItem,
				Position: it.Position,
			})
		}
	}

	referenced := make(map[int]bool, len(items))
	titles := make(map[string]bool, len(items))
	for _, it := range items {
		if it.HasRef() {
			referenced[it.IssueRef] = true
		}
		titles[it.Text] = true
	}

	for _, issue := range dir.Issues() {
		if issue.State != service.IssueOpen {
			continue
		}
		if referenced[issue.Number] || titles[issue.Title] {
			continue
		}
		actions = append(actions, Action{
			Kind:   ActionAppendItem,
			Title:  issue.Title,
			Number: issue.Number,
		})
	}

	return actions
}
