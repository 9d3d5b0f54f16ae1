// Package grid loads delimited text files into typed tables and derives
// filtered and sorted views from them.
package grid

import (
	"fmt"
	"strconv"
)

// Kind is the declared type of a column.
type Kind int

const (
	KindText Kind = iota
	KindInt
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// Value is a single cell. Only the field matching kind is meaningful.
type Value struct {
	kind Kind
	num  int
	text string
}

func IntValue(n int) Value {
	return Value{kind: KindInt, num: n}
}

func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) Int() int   { return v.num }

// String renders the value the way it is displayed and matched by filters.
func (v Value) String() string {
	if v.kind == KindInt {
		return strconv.Itoa(v.num)
	}
	return v.text
}

// Row holds one value per table column.
type Row []Value

type Column struct {
	Name string
	Kind Kind
}

// Table is an ordered set of rows sharing one column schema.
// Every row has exactly len(Columns) values.
type Table struct {
	Columns []Column
	Rows    []Row
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnIndex returns the index of the column called name.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// ColumnNames returns the header names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Clone returns a deep copy, so the copy and t never share backing arrays.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		Columns: make([]Column, len(t.Columns)),
		Rows:    make([]Row, len(t.Rows)),
	}
	copy(out.Columns, t.Columns)
	for i, row := range t.Rows {
		out.Rows[i] = make(Row, len(row))
		copy(out.Rows[i], row)
	}
	return out
}

// Strings renders every row as display strings.
func (t *Table) Strings() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = v.String()
		}
		out[i] = cells
	}
	return out
}
