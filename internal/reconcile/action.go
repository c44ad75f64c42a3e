// Package reconcile computes the actions needed to align the checklist
// document with the remote issue snapshot, in either direction.
package reconcile

import "fmt"

// ActionKind discriminates the decided units of work.
type ActionKind int

const (
	// ActionCreateIssue creates a remote issue for an unmatched item. The
	// executor links the created number back to the item, and closes the
	// issue right away when the item is already checked, so a repeated run
	// decides nothing new.
	ActionCreateIssue ActionKind = iota

	// ActionCloseIssue closes an open remote issue.
	ActionCloseIssue

	// ActionLinkReference records an issue number on an item.
	ActionLinkReference

	// ActionCheckItem marks an item as checked.
	ActionCheckItem

	// ActionAppendItem appends a new item at the end of the document.
	ActionAppendItem

	// ActionReportStaleReference flags an item whose reference is absent
	// from the snapshot. Nothing is mutated; the command layer reports it.
	ActionReportStaleReference
)

// Action is a decided, not-yet-applied unit of work. Actions are pure data;
// executing them against the tracker or the document is the caller's job.
type Action struct {
	Kind     ActionKind
	Position int    // item position (CreateIssue, LinkReference, CheckItem, ReportStaleReference)
	Title    string // issue title (CreateIssue, AppendItem)
	Number   int    // issue number (CloseIssue, LinkReference, AppendItem, ReportStaleReference)
	Checked  bool   // item checked state (CreateIssue, AppendItem)
}

func (a Action) String() string {
	switch a.Kind {
	case ActionCreateIssue:
		return fmt.Sprintf("CreateIssue(%q)", a.Title)
	case ActionCloseIssue:
		return fmt.Sprintf("CloseIssue(#%d)", a.Number)
	case ActionLinkReference:
		return fmt.Sprintf("LinkReference(%d, #%d)", a.Position, a.Number)
	case ActionCheckItem:
		return fmt.Sprintf("CheckItem(%d)", a.Position)
	case ActionAppendItem:
		return fmt.Sprintf("AppendItem(%q, #%d)", a.Title, a.Number)
	case ActionReportStaleReference:
		return fmt.Sprintf("ReportStaleReference(%d, #%d)", a.Position, a.Number)
	}
	return "Unknown"
}
