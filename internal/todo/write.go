package todo

import (
	"fmt"
	"strings"
)

// Items returns a copy of the checklist items in document order.
func (d *Document) Items() []Item {
	items := make([]Item, len(d.items))
	copy(items, d.items)
	return items
}

// Item returns the item at the given position.
func (d *Document) Item(position int) (Item, bool) {
	if position < 0 || position >= len(d.items) {
		return Item{}, false
	}
	return d.items[position], true
}

// SetChecked marks the item at position as checked.
func (d *Document) SetChecked(position int) {
	if position >= 0 && position < len(d.items) {
		d.items[position].Checked = true
	}
}

// SetIssueRef records the issue number for the item at position.
func (d *Document) SetIssueRef(position, number int) {
	if position >= 0 && position < len(d.items) {
		d.items[position].IssueRef = number
	}
}

// Append adds a new item at the end of the document. When the original text
// ended with a newline the appended line is placed before the final empty
// line so the rendered document still ends with a newline.
func (d *Document) Append(it Item) Item {
	it.Position = len(d.items)
	d.items = append(d.items, it)

	newLine := line{item: it.Position}
	if n := len(d.lines); n > 0 && d.lines[n-1].item == -1 && d.lines[n-1].raw == "" {
		d.lines = append(d.lines[:n-1], newLine, d.lines[n-1])
	} else {
		d.lines = append(d.lines, newLine)
	}
	return it
}

// Render serializes the document back to text. Verbatim lines are emitted
// untouched in their original positions; checkbox lines are rebuilt from the
// item state, with the trailing annotation normalized to "(#N)" whenever a
// reference is set. Render is a pure function of the parsed lines and the
// current item state.
func (d *Document) Render() string {
	var b strings.Builder
	for i, ln := range d.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if ln.item < 0 {
			b.WriteString(ln.raw)
			continue
		}
		it := d.items[ln.item]
		marker := " "
		if it.Checked {
			marker = "x"
		}
		b.WriteString(ln.indent)
		fmt.Fprintf(&b, "- [%s] %s", marker, it.Text)
		if it.IssueRef > 0 {
			fmt.Fprintf(&b, " (#%d)", it.IssueRef)
		}
	}
	return b.String()
}
