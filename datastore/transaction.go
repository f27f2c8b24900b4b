package datastore

import (
	"context"

	"github.com/neogan74/entitystore/engine"
)

// Transaction is the unit-of-work handed to the generic layer. Each instance
// wraps exactly one engine session and the scroll configuration captured at
// creation; the caller owns it exclusively and must finalize it with exactly
// one Commit or Rollback.
//
// Contexts are accepted for tracing and log correlation only; no
// cancellation semantics are introduced at this layer.
type Transaction interface {
	// Save stages a create-or-update of a mapped object.
	Save(ctx context.Context, obj any) error

	// Delete stages removal of a mapped object.
	Delete(ctx context.Context, obj any) error

	// Load reads one entity by name and id.
	Load(ctx context.Context, entity, id string) (any, error)

	// LoadAll reads every instance of an entity type. With scrolling
	// enabled results stream through an engine cursor in the configured
	// scroll mode; otherwise they are materialized up front.
	LoadAll(ctx context.Context, entity string) (engine.Cursor, error)

	// Commit applies all staged writes and finalizes the unit-of-work.
	Commit(ctx context.Context) error

	// Rollback discards all staged writes and finalizes the unit-of-work.
	Rollback(ctx context.Context) error

	// Close releases the unit-of-work, rolling it back if it was never
	// finalized. Safe to defer alongside an explicit Commit.
	Close() error
}

// TransactionSupplier constructs a unit-of-work from a live session and the
// store's scroll configuration. Suppliers must be stateless: the store reuses
// one supplier value for every transaction it creates. Substitute a custom
// supplier at build time to inject transaction behavior without re-deriving
// the store's session management.
type TransactionSupplier func(session engine.Session, scrollEnabled bool, scrollMode engine.ScrollMode) (Transaction, error)
