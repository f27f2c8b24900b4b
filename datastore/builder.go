package datastore

import (
	"github.com/neogan74/entitystore/engine"
	"github.com/neogan74/entitystore/internal/logger"
)

// Builder configures and validates a Store. A builder is created from
// exactly one construction source — a session factory or an externally
// managed session — and is discarded after Build.
type Builder struct {
	factory       engine.SessionFactory
	session       engine.Session
	scrollEnabled bool
	scrollMode    engine.ScrollMode
	supplier      TransactionSupplier
}

// NewBuilder starts configuration of a factory-backed store. The resulting
// store owns session creation: every transaction gets a session opened from
// the factory.
func NewBuilder(factory engine.SessionFactory) *Builder {
	return &Builder{
		factory:       factory,
		scrollEnabled: true,
		scrollMode:    engine.ScrollForwardOnly,
	}
}

// NewBuilderFromSession starts configuration of a store wrapping a single
// externally managed session. The store never opens or closes sessions of
// its own; every transaction shares the supplied one.
func NewBuilderFromSession(session engine.Session) *Builder {
	return &Builder{
		session:       session,
		scrollEnabled: true,
		scrollMode:    engine.ScrollForwardOnly,
	}
}

// WithScrollEnabled toggles cursor-based iteration for bulk loads.
func (b *Builder) WithScrollEnabled(enabled bool) *Builder {
	b.scrollEnabled = enabled
	return b
}

// WithScrollMode selects the scroll strategy passed to each unit-of-work.
func (b *Builder) WithScrollMode(mode engine.ScrollMode) *Builder {
	b.scrollMode = mode
	return b
}

// WithTransactionSupplier substitutes a custom unit-of-work constructor for
// the default one.
func (b *Builder) WithTransactionSupplier(supplier TransactionSupplier) *Builder {
	b.supplier = supplier
	return b
}

// Build validates the configuration and produces an immutable store. It
// fails with ErrNoSource when neither construction source was supplied.
// Build performs no I/O; metadata binding happens later via
// PopulateEntityDictionary.
func (b *Builder) Build() (Store, error) {
	supplier := b.supplier
	if supplier == nil {
		supplier = NewTransaction
	}

	base := baseStore{
		scrollEnabled: b.scrollEnabled,
		scrollMode:    b.scrollMode,
		supplier:      supplier,
		log:           logger.GetDefault(),
	}

	switch {
	case b.factory != nil:
		base.log.Debug("Store built",
			logger.String("variant", "factory"),
			logger.Bool("scroll_enabled", b.scrollEnabled),
			logger.String("scroll_mode", b.scrollMode.String()))
		return &factoryStore{baseStore: base, factory: b.factory}, nil
	case b.session != nil:
		base.log.Debug("Store built",
			logger.String("variant", "external_session"),
			logger.Bool("scroll_enabled", b.scrollEnabled),
			logger.String("scroll_mode", b.scrollMode.String()))
		return &sessionStore{baseStore: base, session: b.session}, nil
	default:
		return nil, ErrNoSource
	}
}
