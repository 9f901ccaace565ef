package synth

import "fmt"

// UnsupportedModeError is returned when a write mode is not legal for the
// target driver's capabilities.
type UnsupportedModeError struct {
	Mode   Mode
	Driver string
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("write mode %s is not supported by driver %q", e.Mode, e.Driver)
}

// MissingKeyError is returned when update mode is requested without a usable
// duplicate key: either no key columns were given, or a named column is not
// part of the table header.
type MissingKeyError struct {
	Column string // offending column, empty when no key was given at all
}

func (e *MissingKeyError) Error() string {
	if e.Column == "" {
		return "update mode requires a non-empty duplicate key"
	}
	return fmt.Sprintf("duplicate key column %q is not in the table header", e.Column)
}
