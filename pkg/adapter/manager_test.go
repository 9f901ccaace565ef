package adapter

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabledb-io/tabledb/pkg/dialect"
)

var testDesc = &dialect.Descriptor{
	Name:        "mock",
	Placeholder: dialect.PlaceholderQuestion,
	Quote:       `"`,
	QuoteEnd:    `"`,
}

func newAttachedManager(t *testing.T) (*Manager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	mgr := NewManager(nil)
	require.NoError(t, mgr.Attach(context.Background(), testDesc, db))
	return mgr, mock
}

func TestManagerNotConnected(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(nil)

	assert.ErrorIs(t, mgr.Exec(ctx, "SELECT 1"), ErrNotConnected)
	_, err := mgr.Query(ctx, "SELECT 1")
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.ErrorIs(t, mgr.Begin(ctx), ErrNotConnected)
	assert.ErrorIs(t, mgr.Commit(), ErrNotConnected)
	assert.ErrorIs(t, mgr.Rollback(), ErrNotConnected)
	_, err = mgr.Scope(ctx)
	assert.ErrorIs(t, err, ErrNotConnected)

	// Close on a closed manager is a no-op.
	assert.NoError(t, mgr.Close())
	assert.Nil(t, mgr.Descriptor())
}

func TestManagerConnectUnknownDriver(t *testing.T) {
	mgr := NewManager(nil)
	err := mgr.Connect(context.Background(), testDesc, Config{Type: "no-such-driver"})

	var unsupported *dialect.UnsupportedDriverError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "no-such-driver", unsupported.Name)
}

func TestManagerConnect(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing()

	Register("manager-test", func(Config) (*sql.DB, error) { return db, nil })

	mgr := NewManager(nil)
	require.NoError(t, mgr.Connect(context.Background(), testDesc, Config{Type: "manager-test"}))
	assert.Equal(t, testDesc, mgr.Descriptor())

	mock.ExpectClose()
	require.NoError(t, mgr.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagerConnectOpenFailure(t *testing.T) {
	opened := errors.New("boom")
	Register("manager-test-fail", func(Config) (*sql.DB, error) { return nil, opened })

	mgr := NewManager(nil)
	err := mgr.Connect(context.Background(), testDesc, Config{Type: "manager-test-fail"})

	var connErr *ConnectError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "manager-test-fail", connErr.Driver)
	assert.ErrorIs(t, err, opened)
}

func TestManagerExecAndQuery(t *testing.T) {
	mgr, mock := newAttachedManager(t)
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO t (a) VALUES (?)").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, mgr.Exec(ctx, "INSERT INTO t (a) VALUES (?)", int64(1)))

	mock.ExpectQuery("SELECT a FROM t").
		WillReturnRows(sqlmock.NewRows([]string{"a"}).AddRow(int64(1)))
	rows, err := mgr.Query(ctx, "SELECT a FROM t")
	require.NoError(t, err)
	require.True(t, rows.Next())
	require.NoError(t, rows.Close())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagerScopeCommit(t *testing.T) {
	mgr, mock := newAttachedManager(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO t (a) VALUES (?)").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	scope, err := mgr.Scope(context.Background())
	require.NoError(t, err)
	require.NoError(t, scope.Exec("INSERT INTO t (a) VALUES (?)", int64(1)))
	require.NoError(t, scope.End(nil))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagerScopeRollback(t *testing.T) {
	mgr, mock := newAttachedManager(t)

	execErr := errors.New("constraint violation")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO t (a) VALUES (?)").
		WithArgs(int64(1)).
		WillReturnError(execErr)
	mock.ExpectRollback()

	scope, err := mgr.Scope(context.Background())
	require.NoError(t, err)

	err = scope.Exec("INSERT INTO t (a) VALUES (?)", int64(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, execErr)

	assert.ErrorIs(t, scope.End(err), execErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagerScopeEndIdempotent(t *testing.T) {
	mgr, mock := newAttachedManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	scope, err := mgr.Scope(context.Background())
	require.NoError(t, err)
	require.NoError(t, scope.End(nil))
	// A second End settles nothing.
	require.NoError(t, scope.End(nil))
	require.NoError(t, scope.End(errors.New("late")))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagerCloseRollsBackOpenTransaction(t *testing.T) {
	mgr, mock := newAttachedManager(t)

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectClose()

	require.NoError(t, mgr.Begin(context.Background()))
	require.NoError(t, mgr.Close())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagerTransactionStateErrors(t *testing.T) {
	mgr, mock := newAttachedManager(t)
	ctx := context.Background()

	assert.ErrorContains(t, mgr.Commit(), "no open transaction")
	assert.ErrorContains(t, mgr.Rollback(), "no open transaction")

	mock.ExpectBegin()
	require.NoError(t, mgr.Begin(ctx))
	assert.ErrorContains(t, mgr.Begin(ctx), "transaction already open")

	mock.ExpectCommit()
	require.NoError(t, mgr.Commit())
}

func TestListDrivers(t *testing.T) {
	Register("zz-list-test", func(Config) (*sql.DB, error) { return nil, nil })
	drivers := ListDrivers()
	assert.Contains(t, drivers, "zz-list-test")
	assert.IsNonDecreasing(t, drivers)
}
