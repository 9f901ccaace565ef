// Package synth turns a table and a write mode into dialect-correct,
// parameterized SQL statements.
//
// Data values never appear in the generated SQL text; they are carried as
// bound parameters regardless of content. This is the package's hard
// invariant and the reason the synthesizer, not the caller, owns all SQL
// templates.
package synth

import (
	"strings"

	"github.com/tabledb-io/tabledb/pkg/dialect"
	"github.com/tabledb-io/tabledb/pkg/table"
)

// Statement is an SQL template paired with its ordered bound parameters.
type Statement struct {
	SQL  string
	Args []any
}

// Plan is the output of one Build call: DDL statements to run once before
// batching, and one row statement per table row. Row statements share their
// SQL text; only the bound arguments differ.
type Plan struct {
	DDL  []Statement
	Rows []Statement
}

// Synthesizer generates statements for one driver capability descriptor.
// It retains the SQL texts of its most recent Build for diagnostic display.
// It is not safe for concurrent use.
type Synthesizer struct {
	desc    *dialect.Descriptor
	lastSQL []string
}

// New returns a synthesizer for the given capability descriptor.
func New(desc *dialect.Descriptor) *Synthesizer {
	return &Synthesizer{desc: desc}
}

// LastSQL returns the SQL texts generated by the most recent Build call:
// any DDL statements followed by the shared row-statement template.
func (s *Synthesizer) LastSQL() []string {
	out := make([]string, len(s.lastSQL))
	copy(out, s.lastSQL)
	return out
}

// Build validates the mode against the capability descriptor and generates
// the statement plan for writing tbl into tableName.
//
// The table name is used verbatim; callers must pre-quote it (using the
// descriptor's quote characters) if it collides with a reserved word.
// All legality checks run before any statement is emitted.
func (s *Synthesizer) Build(tbl *table.Table, tableName string, mode Mode, dupKey []string) (*Plan, error) {
	switch mode {
	case ModeReplace:
		if !s.desc.SupportsReplace {
			return nil, &UnsupportedModeError{Mode: mode, Driver: s.desc.Name}
		}
	case ModeUpdate:
		if !s.desc.SupportsUpsert {
			return nil, &UnsupportedModeError{Mode: mode, Driver: s.desc.Name}
		}
		if len(dupKey) == 0 {
			return nil, &MissingKeyError{}
		}
		for _, key := range dupKey {
			if !contains(tbl.Header(), key) {
				return nil, &MissingKeyError{Column: key}
			}
		}
	case ModeInsert, ModeTruncate, ModeCreate:
	default:
		return nil, &UnsupportedModeError{Mode: mode, Driver: s.desc.Name}
	}

	plan := &Plan{}

	switch mode {
	case ModeTruncate:
		plan.DDL = append(plan.DDL, Statement{SQL: "TRUNCATE TABLE " + tableName})
	case ModeCreate:
		ddl, err := s.createSQL(tbl, tableName)
		if err != nil {
			return nil, err
		}
		plan.DDL = append(plan.DDL, Statement{SQL: ddl})
	}

	var rowSQL string
	var argsFor func(row []table.Value) []any

	switch mode {
	case ModeReplace:
		rowSQL = s.replaceSQL(tbl, tableName)
		argsFor = func(row []table.Value) []any { return row }
	case ModeUpdate:
		var setIdx []int
		rowSQL, setIdx = s.upsertSQL(tbl, tableName, dupKey)
		argsFor = func(row []table.Value) []any {
			args := make([]any, 0, len(row)+len(setIdx))
			args = append(args, row...)
			for _, i := range setIdx {
				args = append(args, row[i])
			}
			return args
		}
	default: // insert semantics, shared by insert/truncate/create
		rowSQL = s.insertSQL(tbl, tableName)
		argsFor = func(row []table.Value) []any { return row }
	}

	plan.Rows = make([]Statement, tbl.Len())
	for i, row := range tbl.Rows() {
		plan.Rows[i] = Statement{SQL: rowSQL, Args: argsFor(row)}
	}

	s.lastSQL = s.lastSQL[:0]
	for _, st := range plan.DDL {
		s.lastSQL = append(s.lastSQL, st.SQL)
	}
	s.lastSQL = append(s.lastSQL, rowSQL)

	return plan, nil
}

// insertSQL builds INSERT INTO <table> (<columns>) VALUES (<placeholders>).
func (s *Synthesizer) insertSQL(tbl *table.Table, tableName string) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(tableName)
	b.WriteString(" (")
	b.WriteString(s.columnList(tbl.Header()))
	b.WriteString(") VALUES (")
	b.WriteString(s.desc.Placeholders(1, tbl.Width()))
	b.WriteString(")")
	return b.String()
}

// replaceSQL builds REPLACE INTO <table> VALUES (<placeholders>) using
// full-row positional values, no explicit column list.
func (s *Synthesizer) replaceSQL(tbl *table.Table, tableName string) string {
	return "REPLACE INTO " + tableName + " VALUES (" + s.desc.Placeholders(1, tbl.Width()) + ")"
}

// upsertSQL builds the INSERT ... ON DUPLICATE KEY UPDATE template. The SET
// clause lists every header column except the key columns; key columns are
// never reassigned. It returns the header indexes of the SET columns so the
// caller can bind their values after the insert values.
func (s *Synthesizer) upsertSQL(tbl *table.Table, tableName string, dupKey []string) (string, []int) {
	header := tbl.Header()

	var setIdx []int
	for i, col := range header {
		if !contains(dupKey, col) {
			setIdx = append(setIdx, i)
		}
	}

	var b strings.Builder
	b.WriteString(s.insertSQL(tbl, tableName))
	b.WriteString(" ON DUPLICATE KEY UPDATE ")
	for n, i := range setIdx {
		if n > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.desc.QuoteIdent(header[i]))
		b.WriteString("=")
		b.WriteString(s.desc.FormatPlaceholder(tbl.Width() + n + 1))
	}
	return b.String(), setIdx
}

// createSQL builds CREATE TABLE <table> (<col> <type>, ...) from the
// inferred schema.
func (s *Synthesizer) createSQL(tbl *table.Table, tableName string) (string, error) {
	cols, err := tbl.InferSchema()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(tableName)
	b.WriteString(" (")
	for i, col := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.desc.QuoteIdent(col.Name))
		b.WriteString(" ")
		b.WriteString(col.Kind.SQLType())
	}
	b.WriteString(")")
	return b.String(), nil
}

func (s *Synthesizer) columnList(header []string) string {
	quoted := make([]string, len(header))
	for i, col := range header {
		quoted[i] = s.desc.QuoteIdent(col)
	}
	return strings.Join(quoted, ", ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
