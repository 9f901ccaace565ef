// Package adapter provides the connection manager and driver registry for
// tabledb's transfer engine.
//
// This package contains the contract every database backend must satisfy:
// a registered opener that turns a Config into a database/sql handle, plus a
// capability descriptor registered in pkg/dialect. Concrete backends live in
// pkg/adapters/ subdirectories and register themselves in init().
package adapter

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"
)

// Config holds the configuration for connecting to a database.
type Config struct {
	// Type specifies the driver (e.g., "sqlite", "duckdb", "postgres").
	Type string

	// Path is the file path for file-based databases (e.g., SQLite, DuckDB).
	// Use ":memory:" for in-memory databases.
	Path string

	// Host is the hostname for network-based databases.
	Host string

	// Port is the port number for network-based databases.
	Port int

	// Database is the database name.
	Database string

	// Username for authentication.
	Username string

	// Password for authentication.
	Password string

	// Options contains additional driver-specific options.
	Options map[string]string
}

// OpenFunc opens a database handle for one driver.
type OpenFunc func(cfg Config) (*sql.DB, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]OpenFunc)
)

// Register adds a driver opener to the registry.
// Called by driver implementations in their init() functions.
func Register(name string, open OpenFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = open
}

// Opener retrieves a driver opener by name.
func Opener(name string) (OpenFunc, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// ListDrivers returns all registered driver names (sorted).
func ListDrivers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConnectError wraps a transport failure while opening a connection.
type ConnectError struct {
	Driver string
	Err    error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("failed to connect using driver %q: %v", e.Driver, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }
