// Package engine defines the capability contracts a persistence engine must
// implement to back a datastore: session factories, sessions, cursors and
// mapped-type metadata. The datastore core depends only on these interfaces,
// never on a concrete engine.
package engine

import (
	"reflect"
)

// ScrollMode selects how a cursor walks a large result set.
type ScrollMode int

const (
	// ScrollForwardOnly streams results one at a time and cannot rewind.
	ScrollForwardOnly ScrollMode = iota
	// ScrollScrollable materializes results so the cursor can be rewound.
	ScrollScrollable
)

func (m ScrollMode) String() string {
	switch m {
	case ScrollForwardOnly:
		return "forward_only"
	case ScrollScrollable:
		return "scrollable"
	default:
		return "unknown"
	}
}

// ClassMetadata describes one mapped entity type known to an engine.
type ClassMetadata struct {
	// Name is the entity name used in keys and dictionary bindings
	Name string
	// Type is the mapped runtime struct type (not a pointer type)
	Type reflect.Type
}

// SessionFactory is the long-lived engine handle owning session creation and
// the registry of mapped types. Implementations must be safe for concurrent
// use; the datastore shares one factory across all callers.
type SessionFactory interface {
	// AllClassMetadata enumerates every mapped entity type the engine knows
	// about. Fails if the factory is closed or was never initialized.
	AllClassMetadata() (map[string]ClassMetadata, error)

	// OpenSession creates a new session. Fails if the factory is closed.
	OpenSession() (Session, error)

	// Close releases the factory and the underlying engine resources.
	Close() error
}

// Session is a live engine handle executing operations against persisted
// data. Sessions are not safe for concurrent use unless the concrete engine
// documents otherwise; callers sharing a session must serialize access.
type Session interface {
	// Factory returns the factory this session was opened from.
	Factory() SessionFactory

	// Begin starts an engine-level transaction on this session. Writes
	// issued before Begin fail with ErrNoTransaction.
	Begin() error

	// Commit applies all writes staged since Begin and ends the transaction.
	Commit() error

	// Rollback discards all writes staged since Begin.
	Rollback() error

	// Load reads one entity by name and id into a new instance of the
	// mapped type. Returns a *NotFoundError if no such entity exists.
	Load(entity, id string) (any, error)

	// Persist stages a create-or-update of the given mapped object.
	Persist(obj any) error

	// Remove stages a delete of the given mapped object.
	Remove(obj any) error

	// All loads every instance of the named entity type into memory.
	All(entity string) ([]any, error)

	// Scroll opens a cursor over every instance of the named entity type.
	// The caller owns the cursor and must close it.
	Scroll(entity string, mode ScrollMode) (Cursor, error)

	// Close releases session-local resources, discarding any transaction
	// still active. Safe to call repeatedly; the engine's shared resources
	// are released by the factory's Close, not here.
	Close() error
}

// Cursor iterates a result set incrementally.
type Cursor interface {
	// Next advances the cursor, returning false when exhausted or failed.
	Next() bool

	// Entity returns the decoded entity at the current position.
	Entity() any

	// Rewind repositions the cursor before the first result. Only
	// scrollable cursors support it; forward-only cursors return
	// ErrForwardOnly.
	Rewind() error

	// Err reports the first error encountered while iterating.
	Err() error

	Close() error
}
