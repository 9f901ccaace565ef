package synth

import "fmt"

// Mode selects the write strategy for a table transfer.
type Mode int

const (
	// ModeInsert emits one INSERT per row with an explicit column list.
	ModeInsert Mode = iota
	// ModeReplace emits REPLACE INTO per row with full-row positional values.
	ModeReplace
	// ModeUpdate emits INSERT ... ON DUPLICATE KEY UPDATE per row.
	ModeUpdate
	// ModeTruncate truncates the table, then inserts all rows.
	ModeTruncate
	// ModeCreate creates the table from the inferred schema, then inserts all rows.
	ModeCreate
)

// String returns the string representation of Mode.
func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "insert"
	case ModeReplace:
		return "replace"
	case ModeUpdate:
		return "update"
	case ModeTruncate:
		return "truncate"
	case ModeCreate:
		return "create"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name (as accepted on the CLI) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "insert":
		return ModeInsert, nil
	case "replace":
		return ModeReplace, nil
	case "update":
		return ModeUpdate, nil
	case "truncate":
		return ModeTruncate, nil
	case "create":
		return ModeCreate, nil
	default:
		return 0, fmt.Errorf("unknown write mode %q (want insert, replace, update, truncate or create)", s)
	}
}
