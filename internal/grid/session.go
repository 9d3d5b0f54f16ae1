package grid

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Session owns the canonical table of the last successful load and the
// view derived from it. It is not safe for concurrent use.
type Session struct {
	path      string
	canonical *Table
	view      *Table
	filter    FilterSpec
	sort      SortSpec
	opts      ViewOptions

	// touched is set once the view was derived since the last load.
	touched bool
}

type SessionOptions struct {
	// Locale orders text columns, for example "en" or "de". Empty means
	// byte order.
	Locale     string
	IgnoreCase bool
}

func NewSession(opts SessionOptions) (*Session, error) {
	s := &Session{opts: ViewOptions{IgnoreCase: opts.IgnoreCase}}
	if opts.Locale != "" {
		tag, err := language.Parse(opts.Locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", opts.Locale, err)
		}
		s.opts.Collator = collate.New(tag, collate.IgnoreCase)
	}
	return s, nil
}

// Load replaces the canonical table with the contents of path. On error the
// previous canonical table, view, filter and sort are left as they were.
func (s *Session) Load(path string) error {
	t, err := Load(path)
	if err != nil {
		return err
	}
	s.path = path
	s.canonical = t
	s.view = t.Clone()
	s.filter = FilterSpec{}
	s.sort = SortSpec{}
	s.touched = false
	log.Info().Str("path", path).Int("rows", t.Len()).Int("columns", len(t.Columns)).Msg("loaded")
	return nil
}

func (s *Session) Loaded() bool { return s.canonical != nil }

// Path is the file the canonical table came from.
func (s *Session) Path() string { return s.path }

// Canonical returns the last loaded table. Callers must not modify it.
func (s *Session) Canonical() *Table { return s.canonical }

// View returns the current derived table.
func (s *Session) View() *Table { return s.view }

func (s *Session) ActiveFilter() FilterSpec { return s.filter }

// SortState reports the column carrying the sort indicator, if any.
func (s *Session) SortState() SortSpec { return s.sort }

// Filter shows the canonical rows whose column contains substring. Any sort
// is dropped. An empty substring shows every row.
func (s *Session) Filter(column int, substring string) error {
	spec := FilterSpec{Column: column, Substring: substring}
	view, err := DeriveView(s.canonical, spec, SortSpec{}, s.opts)
	if err != nil {
		s.revert()
		return err
	}
	s.view = view
	s.filter = spec
	s.sort = SortSpec{}
	s.touched = true
	return nil
}

// Sort reorders every canonical row by column. The direction is ascending
// unless column is currently sorted ascending. Any filter is dropped.
func (s *Session) Sort(column int) (SortDirection, error) {
	dir := SortAscending
	if s.sort.Column == column && s.sort.Direction == SortAscending {
		dir = SortDescending
	}
	spec := SortSpec{Column: column, Direction: dir}
	view, err := DeriveView(s.canonical, FilterSpec{}, spec, s.opts)
	if err != nil {
		s.revert()
		return SortNone, err
	}
	s.view = view
	s.filter = FilterSpec{}
	s.sort = spec
	s.touched = true
	return dir, nil
}

// Reset drops filter and sort and shows a copy of the canonical table.
func (s *Session) Reset() {
	s.revert()
}

func (s *Session) revert() {
	s.touched = true
	s.filter = FilterSpec{}
	s.sort = SortSpec{}
	if s.canonical == nil {
		s.view = nil
		return
	}
	s.view = s.canonical.Clone()
}

// Status is the two-part readout shown under the grid.
type Status struct {
	Rows   string
	Detail string
}

func (s *Session) Status() Status {
	if s.canonical == nil {
		return Status{Rows: "No data loaded"}
	}
	total := s.canonical.Len()
	switch {
	case s.filter.IsActive():
		return Status{
			Rows:   fmt.Sprintf("Rows: %d of %d", s.view.Len(), total),
			Detail: fmt.Sprintf("Filter: %s contains '%s'", s.canonical.Columns[s.filter.Column].Name, s.filter.Substring),
		}
	case s.sort.IsSorted():
		return Status{
			Rows:   fmt.Sprintf("Rows: %d", total),
			Detail: fmt.Sprintf("Sorted by: %s (%s)", s.canonical.Columns[s.sort.Column].Name, s.sort.Direction),
		}
	case s.touched:
		return Status{Rows: fmt.Sprintf("Rows: %d", total), Detail: "No filter applied"}
	}
	return Status{Rows: fmt.Sprintf("Rows: %d", total), Detail: "File: " + filepath.Base(s.path)}
}
