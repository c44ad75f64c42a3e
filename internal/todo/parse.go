package todo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// checkboxRe matches well-formed checkbox lines: "- [ ] text" / "- [x] text".
var checkboxRe = regexp.MustCompile(`^(\s*)- \[([ xX])\] (.+)$`)

// malformedRe catches lines that look like a checkbox attempt but have a
// broken marker (unbalanced brackets, bad fill). They stay verbatim lines.
var malformedRe = regexp.MustCompile(`^\s*- \[`)

// Warning reports a line the parser accepted as verbatim text even though it
// resembles checklist markup, or an item whose reference was dropped.
type Warning struct {
	Line int // one-based line number in the document
	Msg  string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Msg)
}

// line is one physical document line: either verbatim text or a checkbox
// item (identified by its position), with the original indentation kept so
// the writer can reproduce it.
type line struct {
	raw    string
	item   int // index into items, -1 for verbatim lines
	indent string
}

// Document is the parsed checklist: all lines in original order, checkbox
// items addressable by position. New items appended by pull go at the end.
type Document struct {
	lines []line
	items []Item
}

// Parse splits text into verbatim lines and checklist items. Malformed
// checkbox markers never fail the parse; they are reported as warnings and
// the line is preserved untouched. A duplicate issue reference is stripped
// from the later item so references stay unique across the document.
func Parse(text string) (*Document, []Warning) {
	doc := &Document{}
	var warnings []Warning
	seenRefs := make(map[int]int) // issue number -> position

	for i, raw := range strings.Split(text, "\n") {
		m := checkboxRe.FindStringSubmatch(raw)
		if m == nil {
			if malformedRe.MatchString(raw) {
				warnings = append(warnings, Warning{
					Line: i + 1,
					Msg:  "malformed checkbox marker, keeping line as plain text",
				})
			}
			doc.lines = append(doc.lines, line{raw: raw, item: -1})
			continue
		}

		text, ref := splitRef(strings.TrimSpace(m[3]))
		if ref > 0 {
			if first, dup := seenRefs[ref]; dup {
				warnings = append(warnings, Warning{
					Line: i + 1,
					Msg: fmt.Sprintf("issue reference #%d already used at position %d, dropping it",
						ref, first),
				})
				ref = 0
			} else {
				seenRefs[ref] = len(doc.items)
			}
		}

		item := Item{
			Text:     text,
			Checked:  m[2] == "x" || m[2] == "X",
			IssueRef: ref,
			Position: len(doc.items),
		}
		doc.lines = append(doc.lines, line{item: item.Position, indent: m[1]})
		doc.items = append(doc.items, item)
	}

	return doc, warnings
}

// splitRef strips a trailing "(#N)" or "#N" reference from an item text.
// Anything that does not parse as a positive integer stays part of the text.
func splitRef(text string) (string, int) {
	if strings.HasSuffix(text, ")") {
		if i := strings.LastIndex(text, " (#"); i >= 0 {
			if n, ok := parseIssueNumber(text[i+3 : len(text)-1]); ok {
				return strings.TrimSpace(text[:i]), n
			}
		}
	}
	if i := strings.LastIndex(text, " #"); i >= 0 {
		if n, ok := parseIssueNumber(text[i+2:]); ok {
			return strings.TrimSpace(text[:i]), n
		}
	}
	return text, 0
}

func parseIssueNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
