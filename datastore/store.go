// Package datastore bridges a generic entity API onto a session-oriented
// persistence engine. A Store owns either a session factory or a single
// externally managed session, and turns either into independent
// units-of-work for the generic layer.
package datastore

import (
	"github.com/neogan74/entitystore/dictionary"
	"github.com/neogan74/entitystore/engine"
	"github.com/neogan74/entitystore/internal/logger"
	"github.com/neogan74/entitystore/internal/metrics"
)

// Store is the persistence-store capability consumed by the generic layer.
// Stores are immutable once built and safe for concurrent use to the extent
// the underlying engine is.
type Store interface {
	// PopulateEntityDictionary binds every mapped entity type the engine
	// knows about into the given dictionary. Called once at startup; an
	// enumeration failure is startup-blocking, not a per-request error.
	PopulateEntityDictionary(dict *dictionary.Dictionary) error

	// GetSession returns the session the next transaction would use. The
	// factory-backed store opens a new session on every call; the
	// session-wrapping store returns its one external session unchanged.
	GetSession() (engine.Session, error)

	// BeginTransaction produces a new, independent unit-of-work bound to a
	// session and the store's scroll configuration. The caller must commit
	// or roll it back exactly once.
	BeginTransaction() (Transaction, error)
}

// baseStore carries the configuration shared by both store variants. The
// variants differ only in session acquisition.
type baseStore struct {
	scrollEnabled bool
	scrollMode    engine.ScrollMode
	supplier      TransactionSupplier
	log           logger.Logger
}

func (s *baseStore) populate(factory engine.SessionFactory, dict *dictionary.Dictionary) error {
	all, err := factory.AllClassMetadata()
	if err != nil {
		return err
	}

	// Bind every mapped type; scoping policy belongs to the generic layer.
	for _, meta := range all {
		dict.BindEntity(meta)
		metrics.EntitiesBoundTotal.Inc()
	}

	s.log.Info("Entity dictionary populated", logger.Int("entities", len(all)))
	return nil
}

func (s *baseStore) newTransaction(session engine.Session) (Transaction, error) {
	return s.supplier(session, s.scrollEnabled, s.scrollMode)
}

// factoryStore owns a session factory and opens a fresh session for every
// transaction. Opening per call is the documented baseline: it keeps
// units-of-work fully independent at the cost of one session per operation.
type factoryStore struct {
	baseStore
	factory engine.SessionFactory
}

func (s *factoryStore) PopulateEntityDictionary(dict *dictionary.Dictionary) error {
	return s.populate(s.factory, dict)
}

func (s *factoryStore) GetSession() (engine.Session, error) {
	session, err := s.factory.OpenSession()
	if err != nil {
		return nil, err
	}
	metrics.SessionsOpenedTotal.WithLabelValues("factory").Inc()
	return session, nil
}

func (s *factoryStore) BeginTransaction() (Transaction, error) {
	session, err := s.GetSession()
	if err != nil {
		return nil, err
	}
	tx, err := s.newTransaction(session)
	if err != nil {
		// The session was opened solely for this transaction
		_ = session.Close()
		return nil, err
	}
	return tx, nil
}

// sessionStore wraps one externally managed session shared by every
// transaction. No locking is added here: if the engine's session type is not
// concurrency-safe, serializing access is the owner's responsibility.
type sessionStore struct {
	baseStore
	session engine.Session
}

func (s *sessionStore) PopulateEntityDictionary(dict *dictionary.Dictionary) error {
	return s.populate(s.session.Factory(), dict)
}

func (s *sessionStore) GetSession() (engine.Session, error) {
	metrics.SessionsOpenedTotal.WithLabelValues("external").Inc()
	return s.session, nil
}

func (s *sessionStore) BeginTransaction() (Transaction, error) {
	session, err := s.GetSession()
	if err != nil {
		return nil, err
	}
	return s.newTransaction(session)
}
