package grid

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
)

// SortDirection specifies the direction of sorting.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

func (d SortDirection) String() string {
	switch d {
	case SortNone:
		return "None"
	case SortAscending:
		return "Ascending"
	case SortDescending:
		return "Descending"
	default:
		return fmt.Sprintf("Unknown(%d)", d)
	}
}

// SortSpec orders a view by one column. A zero Direction means unsorted.
type SortSpec struct {
	Column    int
	Direction SortDirection
}

func (s SortSpec) IsSorted() bool {
	return s.Direction != SortNone
}

// FilterSpec keeps rows whose rendering of Column contains Substring.
// An empty Substring keeps every row.
type FilterSpec struct {
	Column    int
	Substring string
}

func (f FilterSpec) IsActive() bool {
	return f.Substring != ""
}

// ViewOptions tune matching and ordering. The zero value matches
// case-sensitively and orders text by byte value.
type ViewOptions struct {
	IgnoreCase bool

	// Collator orders text columns. It is not safe for concurrent use.
	Collator *collate.Collator
}

// DeriveView builds a new table from canonical: rows matching filter, in
// canonical order, then stably reordered by sort. canonical is never
// modified and the result shares no rows with it.
func DeriveView(canonical *Table, filter FilterSpec, sort SortSpec, opts ViewOptions) (*Table, error) {
	if canonical == nil {
		return nil, ErrNoData
	}
	if filter.IsActive() && !validColumn(canonical, filter.Column) {
		return nil, fmt.Errorf("%w: filter column %d", ErrInvalidColumn, filter.Column)
	}
	if sort.IsSorted() && !validColumn(canonical, sort.Column) {
		return nil, fmt.Errorf("%w: sort column %d", ErrInvalidColumn, sort.Column)
	}

	view := &Table{
		Columns: slices.Clone(canonical.Columns),
		Rows:    make([]Row, 0, len(canonical.Rows)),
	}

	match := newMatcher(filter, opts.IgnoreCase)
	for _, row := range canonical.Rows {
		if match(row) {
			view.Rows = append(view.Rows, slices.Clone(row))
		}
	}

	if sort.IsSorted() {
		cmp := compareFunc(canonical.Columns[sort.Column].Kind, opts.Collator)
		col := sort.Column
		slices.SortStableFunc(view.Rows, func(a, b Row) int {
			c := cmp(a[col], b[col])
			if sort.Direction == SortDescending {
				return -c
			}
			return c
		})
	}
	return view, nil
}

func validColumn(t *Table, col int) bool {
	return col >= 0 && col < len(t.Columns)
}

func newMatcher(filter FilterSpec, ignoreCase bool) func(Row) bool {
	if !filter.IsActive() {
		return func(Row) bool { return true }
	}
	if ignoreCase {
		fold := cases.Fold()
		needle := fold.String(filter.Substring)
		return func(row Row) bool {
			return strings.Contains(fold.String(row[filter.Column].String()), needle)
		}
	}
	return func(row Row) bool {
		return strings.Contains(row[filter.Column].String(), filter.Substring)
	}
}

func compareFunc(kind Kind, collator *collate.Collator) func(a, b Value) int {
	if kind == KindInt {
		return func(a, b Value) int {
			switch {
			case a.num < b.num:
				return -1
			case a.num > b.num:
				return 1
			}
			return 0
		}
	}
	if collator != nil {
		return func(a, b Value) int {
			return collator.CompareString(a.text, b.text)
		}
	}
	return func(a, b Value) int {
		return strings.Compare(a.text, b.text)
	}
}
