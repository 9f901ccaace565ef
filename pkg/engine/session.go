// Package engine provides the batched write executor (ToDB) and the
// read/result-wrapping surface (FromDB) over one connection manager.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tabledb-io/tabledb/pkg/adapter"
	"github.com/tabledb-io/tabledb/pkg/synth"
	"github.com/tabledb-io/tabledb/pkg/table"
)

// DefaultBatchSize is the row-statement batch size used when WriteOptions
// leaves BatchSize at zero.
const DefaultBatchSize = 128

// WriteOptions controls one ToDB call.
type WriteOptions struct {
	// Mode selects the write strategy. The zero value is insert.
	Mode synth.Mode

	// BatchSize is the number of row statements committed per transaction.
	// Zero means DefaultBatchSize; negative values fail with *ConfigError.
	BatchSize int

	// DuplicateKey names the key columns for update mode. Key columns are
	// never reassigned in the generated SET clause.
	DuplicateKey []string
}

// Session binds the synthesizer and executor to one connection manager.
// Like the manager it owns, a session is not safe for concurrent use.
type Session struct {
	mgr    *adapter.Manager
	synth  *synth.Synthesizer
	logger *slog.Logger
}

// NewSession wraps a connected manager. If logger is nil, a discard logger
// is used.
func NewSession(mgr *adapter.Manager, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	desc := mgr.Descriptor()
	if desc == nil {
		return nil, adapter.ErrNotConnected
	}
	return &Session{
		mgr:    mgr,
		synth:  synth.New(desc),
		logger: logger,
	}, nil
}

// LastSQL exposes the SQL texts generated by the most recent write, for
// diagnostic display.
func (s *Session) LastSQL() []string { return s.synth.LastSQL() }

// ToDB writes tbl into tableName and returns the number of rows in fully
// committed batches.
//
// DDL statements (create, truncate) execute once before batching begins.
// Row statements run in transactions of BatchSize rows each; on the first
// failure that batch is rolled back, later batches are never started, and
// the error is a *BatchError. Batches committed before the failure stay
// committed.
func (s *Session) ToDB(ctx context.Context, tbl *table.Table, tableName string, opts WriteOptions) (int, error) {
	batchSize := opts.BatchSize
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}
	if batchSize < 0 {
		return 0, &ConfigError{Option: "batch size", Value: opts.BatchSize}
	}

	plan, err := s.synth.Build(tbl, tableName, opts.Mode, opts.DuplicateKey)
	if err != nil {
		return 0, err
	}

	runID := uuid.NewString()
	s.logger.Debug("write started",
		slog.String("run_id", runID),
		slog.String("table", tableName),
		slog.String("mode", opts.Mode.String()),
		slog.Int("rows", tbl.Len()),
		slog.Int("batch_size", batchSize))

	for _, ddl := range plan.DDL {
		if err := s.mgr.Exec(ctx, ddl.SQL, ddl.Args...); err != nil {
			return 0, fmt.Errorf("writing %s to %q: %w", opts.Mode, tableName, err)
		}
	}

	total := 0
	for batchIdx := 0; len(plan.Rows) > 0; batchIdx++ {
		batch := plan.Rows
		if len(batch) > batchSize {
			batch = batch[:batchSize]
		}
		plan.Rows = plan.Rows[len(batch):]

		if err := s.runBatch(ctx, batch); err != nil {
			if be, ok := err.(*BatchError); ok {
				be.Table = tableName
				be.Mode = opts.Mode
				be.Batch = batchIdx
			}
			return total, err
		}
		total += len(batch)

		s.logger.Debug("batch committed",
			slog.String("run_id", runID),
			slog.Int("batch", batchIdx),
			slog.Int("rows", len(batch)))
	}

	return total, nil
}

// runBatch executes one batch inside its own transaction scope. The scope is
// settled on every exit path: commit on success, rollback on the first
// statement failure.
func (s *Session) runBatch(ctx context.Context, batch []synth.Statement) error {
	scope, err := s.mgr.Scope(ctx)
	if err != nil {
		return &BatchError{Row: 0, Err: err}
	}

	for i, st := range batch {
		if err := scope.Exec(st.SQL, st.Args...); err != nil {
			_ = scope.End(err)
			return &BatchError{Row: i, Err: err}
		}
	}

	if err := scope.End(nil); err != nil {
		return &BatchError{Row: -1, Err: err}
	}
	return nil
}
