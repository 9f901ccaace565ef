// Package duckdb provides the DuckDB backend for tabledb.
package duckdb

import (
	"database/sql"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/tabledb-io/tabledb/pkg/adapter"
	"github.com/tabledb-io/tabledb/pkg/dialect"
)

func init() {
	dialect.Register("duckdb", &dialect.Descriptor{
		Name:        "duckdb",
		Family:      dialect.FamilyGeneric,
		Placeholder: dialect.PlaceholderQuestion,
		Quote:       `"`,
		QuoteEnd:    `"`,
	})
	adapter.Register("duckdb", Open)
}

// Open opens a DuckDB database handle.
// An empty path opens an in-memory database.
func Open(cfg adapter.Config) (*sql.DB, error) {
	return sql.Open("duckdb", cfg.Path)
}
