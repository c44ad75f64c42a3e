// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"

	"todosync/internal/service"
)

// Created reports a freshly created issue.
func Created(w io.Writer, issue service.Issue) {
	fmt.Fprintf(w, "Created issue #%d: %s\n", issue.Number, issue.Title)
}

// Closed reports a closed issue.
func Closed(w io.Writer, number int) {
	fmt.Fprintf(w, "Closed issue #%d\n", number)
}

// Linked reports an item annotated with an existing issue number.
func Linked(w io.Writer, text string, number int) {
	fmt.Fprintf(w, "Linked: %s (#%d)\n", text, number)
}

// Checked reports an item checked off because its issue was closed remotely.
func Checked(w io.Writer, text string) {
	fmt.Fprintf(w, "Checked: %s\n", text)
}

// Added reports an item appended for a remote issue new to the document.
func Added(w io.Writer, title string, number int) {
	fmt.Fprintf(w, "Added: %s (#%d)\n", title, number)
}
