package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tabledb-io/tabledb/pkg/dialect"
)

// ErrNotConnected is returned when an operation other than Connect is called
// on a closed manager.
var ErrNotConnected = errors.New("not connected")

// Manager owns exactly one pinned connection for its lifetime. It is not safe
// for concurrent use by multiple callers; concurrent access must be
// externally serialized. Independent managers (separate connections) may run
// concurrently against the same schema.
type Manager struct {
	desc   *dialect.Descriptor
	cfg    Config
	db     *sql.DB
	conn   *sql.Conn
	tx     *sql.Tx
	logger *slog.Logger
}

// NewManager returns a closed manager. If logger is nil, a discard logger is used.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{logger: logger}
}

// Descriptor returns the capability descriptor of the connected driver, or
// nil while closed.
func (m *Manager) Descriptor() *dialect.Descriptor { return m.desc }

// Connect opens a connection using the registered opener for cfg.Type and
// pins a single connection from the pool. Transport failures are wrapped in
// *ConnectError.
func (m *Manager) Connect(ctx context.Context, desc *dialect.Descriptor, cfg Config) error {
	if m.conn != nil {
		return fmt.Errorf("already connected")
	}
	open, ok := Opener(cfg.Type)
	if !ok {
		return &dialect.UnsupportedDriverError{Name: cfg.Type, Available: ListDrivers()}
	}

	m.logger.Debug("connecting", slog.String("driver", cfg.Type), slog.String("database", cfg.Database))

	db, err := open(cfg)
	if err != nil {
		return &ConnectError{Driver: cfg.Type, Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return &ConnectError{Driver: cfg.Type, Err: err}
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return &ConnectError{Driver: cfg.Type, Err: err}
	}

	m.desc = desc
	m.cfg = cfg
	m.db = db
	m.conn = conn
	return nil
}

// Attach binds an already-open database handle instead of opening one.
// The caller keeps ownership of pool sizing; the manager still pins one
// connection and closes the handle on Close.
func (m *Manager) Attach(ctx context.Context, desc *dialect.Descriptor, db *sql.DB) error {
	if m.conn != nil {
		return fmt.Errorf("already connected")
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return &ConnectError{Driver: desc.Name, Err: err}
	}
	m.desc = desc
	m.db = db
	m.conn = conn
	return nil
}

// Exec executes a statement on the pinned connection, inside the open
// transaction when one is active.
func (m *Manager) Exec(ctx context.Context, query string, args ...any) error {
	if m.conn == nil {
		return ErrNotConnected
	}
	var err error
	if m.tx != nil {
		_, err = m.tx.ExecContext(ctx, query, args...)
	} else {
		_, err = m.conn.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// Query executes a statement that returns rows on the pinned connection.
func (m *Manager) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if m.conn == nil {
		return nil, ErrNotConnected
	}
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := m.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return rows, nil
}

// Begin opens a transaction on the pinned connection.
func (m *Manager) Begin(ctx context.Context) error {
	if m.conn == nil {
		return ErrNotConnected
	}
	if m.tx != nil {
		return fmt.Errorf("transaction already open")
	}
	tx, err := m.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	m.tx = tx
	return nil
}

// Commit commits the open transaction.
func (m *Manager) Commit() error {
	if m.conn == nil {
		return ErrNotConnected
	}
	if m.tx == nil {
		return fmt.Errorf("no open transaction")
	}
	err := m.tx.Commit()
	m.tx = nil
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Rollback rolls back the open transaction.
func (m *Manager) Rollback() error {
	if m.conn == nil {
		return ErrNotConnected
	}
	if m.tx == nil {
		return fmt.Errorf("no open transaction")
	}
	err := m.tx.Rollback()
	m.tx = nil
	if err != nil {
		return fmt.Errorf("failed to rollback: %w", err)
	}
	return nil
}

// Close releases the pinned connection and the underlying handle. An open
// transaction is rolled back first. Close on a closed manager is a no-op.
func (m *Manager) Close() error {
	if m.conn == nil {
		return nil
	}
	if m.tx != nil {
		_ = m.tx.Rollback()
		m.tx = nil
	}
	connErr := m.conn.Close()
	dbErr := m.db.Close()
	m.conn = nil
	m.db = nil
	m.desc = nil
	if connErr != nil {
		return connErr
	}
	return dbErr
}

// Scope begins a transaction and returns a handle whose End method settles
// it: commit when err is nil, rollback otherwise. End is idempotent, so it is
// safe to defer a rollback and still End(nil) explicitly on success. This
// guarantee holds on every exit path, including errors raised deep inside
// statement execution.
func (m *Manager) Scope(ctx context.Context) (*Scope, error) {
	if err := m.Begin(ctx); err != nil {
		return nil, err
	}
	return &Scope{mgr: m, ctx: ctx}, nil
}

// Scope is a single-transaction view of the manager's pinned connection.
type Scope struct {
	mgr  *Manager
	ctx  context.Context
	done bool
}

// Exec executes a statement inside the scope's transaction.
func (s *Scope) Exec(query string, args ...any) error {
	return s.mgr.Exec(s.ctx, query, args...)
}

// End settles the scope's transaction: commit on nil, rollback otherwise.
func (s *Scope) End(err error) error {
	if s.done {
		return nil
	}
	s.done = true
	if err != nil {
		if rbErr := s.mgr.Rollback(); rbErr != nil {
			s.mgr.logger.Warn("rollback failed", slog.Any("error", rbErr))
		}
		return err
	}
	return s.mgr.Commit()
}
