// Package sqlite provides the SQLite backend for tabledb.
package sqlite

import (
	"database/sql"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/tabledb-io/tabledb/pkg/adapter"
	"github.com/tabledb-io/tabledb/pkg/dialect"
)

func init() {
	dialect.Register("sqlite", &dialect.Descriptor{
		Name:        "sqlite",
		Family:      dialect.FamilyGeneric,
		Placeholder: dialect.PlaceholderQuestion,
		Quote:       `"`,
		QuoteEnd:    `"`,
		// SQLite accepts REPLACE INTO but not ON DUPLICATE KEY UPDATE.
		SupportsReplace: true,
	})
	adapter.Register("sqlite", Open)
}

// Open opens a SQLite database handle.
// Use ":memory:" as the path for an in-memory database.
func Open(cfg adapter.Config) (*sql.DB, error) {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	return sql.Open("sqlite", path)
}
