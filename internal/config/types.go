// Package config loads the schema registry: the mapping from schema names to
// driver families and connect settings consumed by the transfer engine.
package config

import (
	"fmt"
	"sort"

	"github.com/tabledb-io/tabledb/pkg/adapter"
)

// Config is the resolved tabledb configuration.
type Config struct {
	// DefaultSchema is the schema used when no --schema flag is given.
	DefaultSchema string `koanf:"default_schema"`

	// Format is the default output format for query results.
	Format string `koanf:"format"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	// Schemas maps schema names to their connect settings.
	Schemas map[string]Schema `koanf:"schemas"`
}

// Schema holds the connect settings for one configured schema.
type Schema struct {
	Driver   string            `koanf:"driver"`
	Path     string            `koanf:"path"`
	Host     string            `koanf:"host"`
	Port     int               `koanf:"port"`
	Database string            `koanf:"database"`
	Username string            `koanf:"username"`
	Password string            `koanf:"password"`
	Options  map[string]string `koanf:"options"`
}

// AdapterConfig converts the schema settings to the connection manager's
// config shape.
func (s Schema) AdapterConfig() adapter.Config {
	return adapter.Config{
		Type:     s.Driver,
		Path:     s.Path,
		Host:     s.Host,
		Port:     s.Port,
		Database: s.Database,
		Username: s.Username,
		Password: s.Password,
		Options:  s.Options,
	}
}

// Schema resolves a schema by name; an empty name resolves the default
// schema. Unknown names fail with the configured names listed.
func (c *Config) Schema(name string) (Schema, error) {
	if name == "" {
		name = c.DefaultSchema
	}
	s, ok := c.Schemas[name]
	if !ok {
		return Schema{}, fmt.Errorf("unknown schema %q, configured schemas: %v", name, c.SchemaNames())
	}
	return s, nil
}

// SchemaNames returns the configured schema names (sorted).
func (c *Config) SchemaNames() []string {
	names := make([]string, 0, len(c.Schemas))
	for name := range c.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
