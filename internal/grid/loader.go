package grid

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Delimiter separates fields on a line.
const Delimiter = ','

// Load reads the file at path. Loading is all-or-nothing: on error the
// returned table is nil and nothing partial escapes.
func Load(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.WithStack(&NotFoundError{Path: path})
		}
		return nil, errors.WithStack(&ReadError{Path: path, Err: err})
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(&ReadError{Path: path, Err: err})
	}
	defer file.Close()

	return parse(file, path)
}

// Parse reads a table from r. The first non-blank line is the header.
func Parse(r io.Reader) (*Table, error) {
	return parse(r, "")
}

// maxLineSize bounds a single physical line.
const maxLineSize = 1 << 20

// parse reads physical lines and splits each on Delimiter. Quotes carry no
// meaning, so a line always yields exactly one record.
func parse(r io.Reader, path string) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var t *Table
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		record := strings.Split(text, string(Delimiter))

		if t == nil {
			var err error
			t, err = parseHeader(record, line)
			if err != nil {
				return nil, err
			}
			continue
		}

		row, err := parseRow(record, line, len(t.Columns))
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WithStack(&ReadError{Path: path, Err: err})
	}

	if t.Len() == 0 {
		return nil, errors.WithStack(&EmptyDataError{Path: path})
	}
	return t, nil
}

func parseHeader(record []string, line int) (*Table, error) {
	t := &Table{Columns: make([]Column, 0, len(record))}
	seen := make(map[string]bool, len(record))
	for i, field := range record {
		name := strings.TrimSpace(field)
		if seen[name] {
			return nil, errors.WithStack(&FormatError{
				Line:   line,
				Reason: ReasonDuplicateColumn,
				Value:  name,
			})
		}
		seen[name] = true

		kind := KindText
		if i == 0 {
			kind = KindInt
		}
		t.Columns = append(t.Columns, Column{Name: name, Kind: kind})
	}
	return t, nil
}

func parseRow(record []string, line, columns int) (Row, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 32)
	if err != nil {
		return nil, errors.WithStack(&FormatError{
			Line:   line,
			Reason: ReasonNotInteger,
			Value:  record[0],
		})
	}

	if len(record) < columns {
		return nil, errors.WithStack(&FormatError{
			Line:     line,
			Reason:   ReasonTooFewFields,
			Expected: columns,
			Found:    len(record),
		})
	}
	if extra := len(record) - columns; extra > 0 {
		log.Debug().Int("line", line).Int("extra", extra).Msg("dropping fields beyond header")
	}

	row := make(Row, columns)
	row[0] = IntValue(int(id))
	for i := 1; i < columns; i++ {
		row[i] = TextValue(record[i])
	}
	return row, nil
}
