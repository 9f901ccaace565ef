package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tabledb-io/tabledb/pkg/table"
)

// FromDB executes a read statement and returns a fully realized table:
// header from the cursor's column descriptors, all rows fetched eagerly.
// The result is safe to use after the underlying cursor closes.
func (s *Session) FromDB(ctx context.Context, query string, args ...any) (*table.Table, error) {
	rows, err := s.FromDBLazy(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var data [][]table.Value
	for rows.Next() {
		data = append(data, rows.Row())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return table.FromParts(rows.Header(), data)
}

// FromDBLazy executes a read statement and returns a single-pass, forward-only
// row sequence bound to the still-open cursor. The caller must keep the
// session open until the sequence is exhausted or closed; re-iterating an
// exhausted sequence yields no further rows.
func (s *Session) FromDBLazy(ctx context.Context, query string, args ...any) (*Rows, error) {
	rows, err := s.mgr.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	cols, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("failed to read column descriptors: %w", err)
	}

	return &Rows{rows: rows, header: cols}, nil
}

// Rows is a streamed read result: single-pass and tied to the cursor's open
// lifetime. Use Next/Row to consume it, then check Err.
type Rows struct {
	rows    *sql.Rows
	header  []string
	current []table.Value
	err     error
}

// Header returns the ordered column names of the result.
func (r *Rows) Header() []string { return r.header }

// Next advances to the next row. It returns false at the end of the result
// or on the first scan error; Err distinguishes the two.
func (r *Rows) Next() bool {
	if r.err != nil || !r.rows.Next() {
		return false
	}

	values := make([]any, len(r.header))
	ptrs := make([]any, len(r.header))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := r.rows.Scan(ptrs...); err != nil {
		r.err = fmt.Errorf("failed to scan row: %w", err)
		return false
	}

	r.current = make([]table.Value, len(values))
	copy(r.current, values)
	return true
}

// Row returns the most recently scanned row. The slice is owned by the
// caller and remains valid after the next call to Next.
func (r *Rows) Row() []table.Value { return r.current }

// Err returns the first error encountered while iterating.
func (r *Rows) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.rows.Err()
}

// Close releases the underlying cursor early. Closing an exhausted sequence
// is a no-op.
func (r *Rows) Close() error { return r.rows.Close() }
