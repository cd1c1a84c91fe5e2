package data

import (
	"errors"
	"time"
)

// Typed errors allow callers and tests to detect failure categories
// without string matching.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoTimeColumn      = errors.New("no usable time column")
	ErrNoPriceColumn     = errors.New("no usable price column")
	ErrEmptyResult       = errors.New("no usable rows after parsing")
	ErrNotFound          = errors.New("source file not found")
)

// Column is one loaded table column. Delimited sources fill Text and, where
// every non-blank cell parses as a number, Floats; columnar sources fill
// Floats or Times natively.
type Column struct {
	Name    string
	Text    []string
	Floats  []float64
	Times   []time.Time
	Numeric bool
}

// Table is a loaded tabular snapshot, format-agnostic. Both the delimited
// reader and the Arrow reader produce one.
type Table struct {
	Cols []Column
}

// Names returns column names in source order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Cols))
	for i, c := range t.Cols {
		names[i] = c.Name
	}
	return names
}

// Column finds a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Cols {
		if t.Cols[i].Name == name {
			return &t.Cols[i], true
		}
	}
	return nil, false
}

// NumRows returns the row count of the first column; all columns are equal
// length by construction.
func (t *Table) NumRows() int {
	if len(t.Cols) == 0 {
		return 0
	}
	c := t.Cols[0]
	if c.Times != nil {
		return len(c.Times)
	}
	if c.Text != nil {
		return len(c.Text)
	}
	return len(c.Floats)
}

// LastNumericColumn returns the right-most numeric column, the fallback when
// no close-named column exists.
func (t *Table) LastNumericColumn() (*Column, bool) {
	for i := len(t.Cols) - 1; i >= 0; i-- {
		if t.Cols[i].Numeric {
			return &t.Cols[i], true
		}
	}
	return nil, false
}
