package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabledb-io/tabledb/pkg/table"
)

func expectPointSelect(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT * FROM Point").WillReturnRows(
		sqlmock.NewRows([]string{"x", "y", "z"}).
			AddRow(int64(1), int64(0), int64(0)).
			AddRow(int64(2), int64(0), int64(0)),
	)
}

func TestFromDB(t *testing.T) {
	sess, mock := newMockSession(t)
	expectPointSelect(mock)

	tbl, err := sess.FromDB(context.Background(), "SELECT * FROM Point")
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y", "z"}, tbl.Header())
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, []table.Value{int64(1), int64(0), int64(0)}, tbl.Rows()[0])
	assert.Equal(t, []table.Value{int64(2), int64(0), int64(0)}, tbl.Rows()[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFromDBLazy(t *testing.T) {
	sess, mock := newMockSession(t)
	expectPointSelect(mock)

	rows, err := sess.FromDBLazy(context.Background(), "SELECT * FROM Point")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	assert.Equal(t, []string{"x", "y", "z"}, rows.Header())

	var got [][]table.Value
	for rows.Next() {
		got = append(got, rows.Row())
	}
	require.NoError(t, rows.Err())
	require.Len(t, got, 2)
	assert.Equal(t, []table.Value{int64(1), int64(0), int64(0)}, got[0])

	// Re-iterating a fully consumed sequence yields no further rows.
	assert.False(t, rows.Next())
	assert.NoError(t, rows.Err())
}

func TestFromDBEagerAndLazyAgree(t *testing.T) {
	sess, mock := newMockSession(t)
	expectPointSelect(mock)
	expectPointSelect(mock)

	eager, err := sess.FromDB(context.Background(), "SELECT * FROM Point")
	require.NoError(t, err)

	lazy, err := sess.FromDBLazy(context.Background(), "SELECT * FROM Point")
	require.NoError(t, err)
	defer func() { _ = lazy.Close() }()

	assert.Equal(t, eager.Header(), lazy.Header())
	for _, want := range eager.Rows() {
		require.True(t, lazy.Next())
		assert.Equal(t, want, lazy.Row())
	}
	assert.False(t, lazy.Next())
}

func TestFromDBWithParams(t *testing.T) {
	sess, mock := newMockSession(t)

	mock.ExpectQuery("SELECT * FROM Point WHERE x > ?").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"x"}).AddRow(int64(2)))

	tbl, err := sess.FromDB(context.Background(), "SELECT * FROM Point WHERE x > ?", int64(1))
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, int64(2), tbl.Rows()[0][0])
}

func TestFromDBQueryError(t *testing.T) {
	sess, mock := newMockSession(t)

	queryErr := errors.New("syntax error")
	mock.ExpectQuery("SELECT nope").WillReturnError(queryErr)

	_, err := sess.FromDB(context.Background(), "SELECT nope")
	assert.ErrorIs(t, err, queryErr)
}

func TestRowsRowIsStable(t *testing.T) {
	sess, mock := newMockSession(t)
	expectPointSelect(mock)

	rows, err := sess.FromDBLazy(context.Background(), "SELECT * FROM Point")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	require.True(t, rows.Next())
	first := rows.Row()
	require.True(t, rows.Next())

	// The previously returned row is not overwritten by the next scan.
	assert.Equal(t, []table.Value{int64(1), int64(0), int64(0)}, first)
}
