package grid

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. The struct error types below match them.
var (
	ErrNotFound  = errors.New("file not found")
	ErrRead      = errors.New("file could not be read")
	ErrFormat    = errors.New("invalid file format")
	ErrEmptyData = errors.New("no data rows")

	// ErrNoData is returned by view operations before anything was loaded.
	ErrNoData = errors.New("no data loaded")

	// ErrInvalidColumn is returned when a column index is out of range.
	ErrInvalidColumn = errors.New("invalid column index")
)

type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("the file '%s' could not be found", e.Path)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ReadError means the file exists but could not be opened or read,
// for example because another program holds a lock on it.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("error reading file '%s', the file may be in use by another program: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

func (e *ReadError) Is(target error) bool { return target == ErrRead }

// FormatReason says which validation rule a line broke.
type FormatReason int

const (
	ReasonNotInteger FormatReason = iota
	ReasonTooFewFields
	ReasonDuplicateColumn
)

// FormatError carries the 1-based line number of the offending line.
type FormatError struct {
	Line   int
	Reason FormatReason

	// Value is the offending field for ReasonNotInteger and
	// ReasonDuplicateColumn.
	Value string

	// Expected and Found are field counts for ReasonTooFewFields.
	Expected int
	Found    int
}

func (e *FormatError) Error() string {
	switch e.Reason {
	case ReasonNotInteger:
		return fmt.Sprintf("line %d: the value '%s' in the first column is not an integer", e.Line, e.Value)
	case ReasonTooFewFields:
		return fmt.Sprintf("line %d: not enough columns, expected %d, found %d", e.Line, e.Expected, e.Found)
	default:
		return fmt.Sprintf("line %d: duplicate column name '%s'", e.Line, e.Value)
	}
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

type EmptyDataError struct {
	Path string
}

func (e *EmptyDataError) Error() string {
	return "no data was loaded, the file may be empty or incorrectly formatted"
}

func (e *EmptyDataError) Is(target error) bool { return target == ErrEmptyData }
