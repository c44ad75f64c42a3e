package reconcile

import (
	"sort"

	"todosync/internal/service"
)

// Directory is a queryable index over one fetched issue snapshot, open and
// closed issues included. It is built once per run and never refreshed.
type Directory struct {
	issues   []service.Issue // ascending number
	byNumber map[int]service.Issue
	byTitle  map[string]service.Issue
}

// NewDirectory indexes a snapshot. Title lookup is exact and case-sensitive;
// when several issues share a title the lowest issue number wins, so the
// tie-break is deterministic regardless of fetch order.
func NewDirectory(issues []service.Issue) *Directory {
	sorted := make([]service.Issue, len(issues))
	copy(sorted, issues)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	d := &Directory{
		issues:   sorted,
		byNumber: make(map[int]service.Issue, len(sorted)),
		byTitle:  make(map[string]service.Issue, len(sorted)),
	}
	for _, is := range sorted {
		if _, ok := d.byNumber[is.Number]; !ok {
			d.byNumber[is.Number] = is
		}
		if _, ok := d.byTitle[is.Title]; !ok {
			d.byTitle[is.Title] = is
		}
	}
	return d
}

// ByNumber looks an issue up by its number.
func (d *Directory) ByNumber(n int) (service.Issue, bool) {
	is, ok := d.byNumber[n]
	return is, ok
}

// ByTitle looks an issue up by exact title, any state.
func (d *Directory) ByTitle(title string) (service.Issue, bool) {
	is, ok := d.byTitle[title]
	return is, ok
}

// Issues returns the snapshot in ascending issue-number order.
func (d *Directory) Issues() []service.Issue {
	return d.issues
}
