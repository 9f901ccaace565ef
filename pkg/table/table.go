// Package table provides the canonical header+rows container moved between
// callers and relational schemas.
//
// A Table is validated at construction and immutable afterwards. It has no
// connection to any database until handed to the statement synthesizer or
// returned by a read.
package table

import (
	"fmt"
	"strconv"
)

// Value is a single table cell. Supported concrete types are nil, int64,
// float64, string and []byte; other integer and float widths are normalized
// at construction.
type Value = any

// Table is an immutable header+rows container.
type Table struct {
	header []string
	rows   [][]Value
}

// ShapeError reports a row whose width does not match the header.
type ShapeError struct {
	Row  int // index of the first offending row
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("row %d has %d values, want %d", e.Row, e.Got, e.Want)
}

// New builds a Table from an ordered sequence of rows.
//
// If withHeader is true the first element of data is taken as the header;
// otherwise positional names (col0, col1, ...) are synthesized from the width
// of the first row. Every row must match the header width; the first
// mismatching row fails with a *ShapeError. Header names must be unique.
func New(data [][]Value, withHeader bool) (*Table, error) {
	var header []string
	var rows [][]Value

	if withHeader {
		if len(data) == 0 {
			return nil, fmt.Errorf("missing header row")
		}
		var err error
		header, err = headerRow(data[0])
		if err != nil {
			return nil, err
		}
		rows = data[1:]
	} else {
		rows = data
		width := 0
		if len(rows) > 0 {
			width = len(rows[0])
		}
		header = make([]string, width)
		for i := range header {
			header[i] = "col" + strconv.Itoa(i)
		}
	}

	return FromParts(header, rows)
}

// FromParts builds a Table from an already-split header and row set.
// It applies the same uniqueness and shape validation as New.
func FromParts(header []string, rows [][]Value) (*Table, error) {
	seen := make(map[string]struct{}, len(header))
	for _, name := range header {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", name)
		}
		seen[name] = struct{}{}
	}

	out := make([][]Value, len(rows))
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, &ShapeError{Row: i, Want: len(header), Got: len(row)}
		}
		normalized := make([]Value, len(row))
		for j, v := range row {
			normalized[j] = normalize(v)
		}
		out[i] = normalized
	}

	return &Table{header: header, rows: out}, nil
}

func headerRow(row []Value) ([]string, error) {
	header := make([]string, len(row))
	for i, v := range row {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("header value at column %d is %T, want string", i, v)
		}
		header[i] = s
	}
	return header, nil
}

// normalize folds integer and float widths onto int64/float64.
func normalize(v Value) Value {
	switch n := v.(type) {
	case nil, int64, float64, string, []byte, bool:
		return v
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

// Header returns the ordered column names.
func (t *Table) Header() []string { return t.header }

// Rows returns the ordered row values.
func (t *Table) Rows() [][]Value { return t.rows }

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.header) }

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// ParseValue converts a textual cell (e.g., from CSV input) to the narrowest
// supported value: empty → nil, integer → int64, numeric → float64, anything
// else stays a string.
func ParseValue(s string) Value {
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// FromStrings builds a Table from string records (e.g., CSV rows), converting
// each cell with ParseValue. The header row, when present, is kept verbatim.
func FromStrings(records [][]string, withHeader bool) (*Table, error) {
	data := make([][]Value, len(records))
	for i, rec := range records {
		row := make([]Value, len(rec))
		if i == 0 && withHeader {
			for j, cell := range rec {
				row[j] = cell
			}
		} else {
			for j, cell := range rec {
				row[j] = ParseValue(cell)
			}
		}
		data[i] = row
	}
	return New(data, withHeader)
}
