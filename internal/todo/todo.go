// Package todo parses and serializes the flat checkbox document.
package todo

// Item is one checklist line. Text carries no checkbox or reference markup.
type Item struct {
	Text     string
	Checked  bool
	IssueRef int // remote issue number, 0 = unset
	Position int // zero-based index among checkbox lines
}

// HasRef reports whether the item carries an issue reference.
func (it Item) HasRef() bool {
	return it.IssueRef > 0
}
