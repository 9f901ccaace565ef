// Package postgres provides the PostgreSQL backend for tabledb.
package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"github.com/tabledb-io/tabledb/pkg/adapter"
	"github.com/tabledb-io/tabledb/pkg/dialect"
)

func init() {
	dialect.Register("postgres", &dialect.Descriptor{
		Name:        "postgres",
		Family:      dialect.FamilyGeneric,
		Placeholder: dialect.PlaceholderDollar,
		Quote:       `"`,
		QuoteEnd:    `"`,
	})
	adapter.Register("postgres", Open)
}

// Open opens a PostgreSQL database handle via the pgx stdlib driver.
func Open(cfg adapter.Config) (*sql.DB, error) {
	return sql.Open("pgx", BuildDSN(cfg))
}

// BuildDSN constructs a key=value PostgreSQL connection string:
// host=localhost port=5432 dbname=... sslmode=disable user=... password=...
func BuildDSN(cfg adapter.Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := "disable"
	if cfg.Options != nil {
		if mode, ok := cfg.Options["sslmode"]; ok {
			sslmode = mode
		}
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, cfg.Database, sslmode)

	if cfg.Username != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.Username)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}

	return dsn
}
