// Package dictionary provides the generic layer's registry of mapped entity
// types, populated from engine metadata at store initialization.
package dictionary

import (
	"sort"
	"sync"

	"github.com/neogan74/entitystore/engine"
)

// Dictionary maps entity names to their metadata. Registration is a set
// union: binding the same entry twice is a no-op, so callers may repopulate
// freely. Safe for concurrent use.
type Dictionary struct {
	mu      sync.RWMutex
	entries map[string]engine.ClassMetadata
}

// New creates an empty dictionary
func New() *Dictionary {
	return &Dictionary{
		entries: make(map[string]engine.ClassMetadata),
	}
}

// BindEntity registers one mapped type. Rebinding an identical entry is a
// no-op; rebinding a name to a different type overwrites the previous entry,
// visibility policy being the caller's concern.
func (d *Dictionary) BindEntity(meta engine.ClassMetadata) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries[meta.Name] = meta
}

// Lookup returns the metadata bound to an entity name
func (d *Dictionary) Lookup(name string) (engine.ClassMetadata, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	meta, ok := d.entries[name]
	return meta, ok
}

// Len returns the number of bound entity types
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.entries)
}

// Names returns the sorted names of all bound entity types
func (d *Dictionary) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.entries))
	for name := range d.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
