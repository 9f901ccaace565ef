package dialect

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Descriptor)
)

// Register adds a descriptor to the registry.
// Called by driver implementations in their init() functions.
func Register(name string, d *Descriptor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = d
}

// Lookup retrieves the descriptor for a driver family name.
// The returned descriptor is shared and must not be modified.
func Lookup(name string) (*Descriptor, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[name]
	if !ok {
		return nil, &UnsupportedDriverError{
			Name:      name,
			Available: listLocked(),
		}
	}
	return d, nil
}

// List returns all registered driver names (sorted).
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return listLocked()
}

func listLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnsupportedDriverError is returned when an unknown driver family is requested.
type UnsupportedDriverError struct {
	Name      string
	Available []string
}

func (e *UnsupportedDriverError) Error() string {
	return fmt.Sprintf("unsupported driver %q, available drivers: %v", e.Name, e.Available)
}

// The bare family descriptors are always registered, even when no transport
// for them ships in this build. Lookup("mysql") must work for statement
// synthesis against a remote schema regardless of which adapters are linked in.
func init() {
	Register("mysql", &Descriptor{
		Name:            "mysql",
		Family:          FamilyMySQL,
		Placeholder:     PlaceholderQuestion,
		Quote:           "`",
		QuoteEnd:        "`",
		SupportsReplace: true,
		SupportsUpsert:  true,
	})
	Register("mssql", &Descriptor{
		Name:        "mssql",
		Family:      FamilyMSSQL,
		Placeholder: PlaceholderQuestion,
		Quote:       "[",
		QuoteEnd:    "]",
	})
	Register("generic", &Descriptor{
		Name:        "generic",
		Family:      FamilyGeneric,
		Placeholder: PlaceholderQuestion,
		Quote:       `"`,
		QuoteEnd:    `"`,
	})
}
