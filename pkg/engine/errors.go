package engine

import (
	"fmt"

	"github.com/tabledb-io/tabledb/pkg/synth"
)

// ConfigError reports an invalid write option detected before any statement
// is sent to the driver.
type ConfigError struct {
	Option string
	Value  any
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Option, e.Value)
}

// BatchError reports the first statement failure inside a batch. Batches
// committed before the failing one remain committed; the caller must
// reconcile using the returned row count and this error.
//
// Row is the statement index within the failing batch, or -1 when the
// batch's commit itself failed after every statement succeeded.
type BatchError struct {
	Table string
	Mode  synth.Mode
	Batch int
	Row   int
	Err   error
}

func (e *BatchError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("writing %s to %q: commit of batch %d failed: %v", e.Mode, e.Table, e.Batch, e.Err)
	}
	return fmt.Sprintf("writing %s to %q: batch %d row %d failed: %v", e.Mode, e.Table, e.Batch, e.Row, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }
