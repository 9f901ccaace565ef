// Package dialect defines driver capability descriptors used by the
// statement synthesizer and connection manager.
//
// This package contains the public contract that describes a driver family's
// syntax quirks and supported write modes. Concrete driver implementations in
// pkg/adapters/ register their descriptors in their init() functions.
package dialect

import (
	"strconv"
	"strings"
)

// Family classifies a driver into one of the capability variants the
// synthesizer understands. Write-mode legality is declared per descriptor,
// not derived from the family; the family exists for display and grouping.
type Family int

const (
	// FamilyGeneric covers engines with plain ANSI-ish syntax (SQLite,
	// DuckDB, PostgreSQL).
	FamilyGeneric Family = iota
	// FamilyMySQL covers MySQL and its wire-compatible forks.
	FamilyMySQL
	// FamilyMSSQL covers SQL Server and compatible engines.
	FamilyMSSQL
)

// String returns the string representation of Family.
func (f Family) String() string {
	switch f {
	case FamilyMySQL:
		return "mysql"
	case FamilyMSSQL:
		return "mssql"
	case FamilyGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (MySQL, SQLite, DuckDB).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. for parameters (PostgreSQL).
	PlaceholderDollar
)

// Descriptor holds the static capability facts for one driver family.
// Descriptors are constructed once, registered at init time, and shared
// read-only by every synthesizer and connection manager that uses them.
type Descriptor struct {
	// Name is the driver identifier (e.g., "sqlite", "postgres", "mysql").
	Name string

	// Family groups the driver into a capability variant.
	Family Family

	// Placeholder defines how bound parameters are formatted.
	Placeholder PlaceholderStyle

	// Quote and QuoteEnd delimit identifiers: " for ANSI, ` for MySQL,
	// [ ] for SQL Server.
	Quote    string
	QuoteEnd string

	// SupportsReplace reports whether REPLACE INTO statements are accepted.
	SupportsReplace bool

	// SupportsUpsert reports whether INSERT ... ON DUPLICATE KEY UPDATE
	// statements are accepted.
	SupportsUpsert bool
}

// FormatPlaceholder returns the placeholder token for the n-th parameter
// (1-based) of a statement.
func (d *Descriptor) FormatPlaceholder(n int) string {
	if d.Placeholder == PlaceholderDollar {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Placeholders returns a comma-joined placeholder list for parameters
// start..start+count-1 (1-based).
func (d *Descriptor) Placeholders(start, count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = d.FormatPlaceholder(start + i)
	}
	return strings.Join(parts, ", ")
}

// QuoteIdent quotes an identifier with the descriptor's quote characters.
// Embedded end-quote characters are escaped by doubling.
func (d *Descriptor) QuoteIdent(name string) string {
	return d.Quote + strings.ReplaceAll(name, d.QuoteEnd, d.QuoteEnd+d.QuoteEnd) + d.QuoteEnd
}
