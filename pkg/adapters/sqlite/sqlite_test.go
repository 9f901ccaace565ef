package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabledb-io/tabledb/pkg/adapter"
	"github.com/tabledb-io/tabledb/pkg/dialect"
)

func TestRegistration(t *testing.T) {
	desc, err := dialect.Lookup("sqlite")
	require.NoError(t, err)
	assert.Equal(t, dialect.PlaceholderQuestion, desc.Placeholder)
	assert.True(t, desc.SupportsReplace)
	assert.False(t, desc.SupportsUpsert)

	_, ok := adapter.Opener("sqlite")
	assert.True(t, ok)
}

func TestOpenInMemory(t *testing.T) {
	db, err := Open(adapter.Config{Type: "sqlite"})
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	require.NoError(t, db.PingContext(ctx))

	_, err = db.ExecContext(ctx, "CREATE TABLE t (a INTEGER)")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO t (a) VALUES (?)", 42)
	require.NoError(t, err)

	var got int64
	require.NoError(t, db.QueryRowContext(ctx, "SELECT a FROM t").Scan(&got))
	assert.Equal(t, int64(42), got)
}
