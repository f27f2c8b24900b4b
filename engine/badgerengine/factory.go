// Package badgerengine provides a BadgerDB-backed persistence engine. Mapped
// entities are stored as JSON values under "ent:<entity>:<id>" keys; sessions
// wrap badger transactions and cursors wrap badger iterators.
package badgerengine

import (
	"errors"
	"fmt"
	"os"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/neogan74/entitystore/engine"
	"github.com/neogan74/entitystore/internal/logger"
)

const keyPrefix = "ent:"

// Factory is a BadgerDB-backed engine.SessionFactory. It owns the database
// handle and the registry of mapped types; sessions borrow both.
type Factory struct {
	db     *badger.DB
	models map[string]engine.ClassMetadata
	log    logger.Logger
	stopGC chan struct{}
}

// Open opens the database and registers the given mapped models.
func Open(cfg Config, models ...any) (*Factory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		opts = badger.DefaultOptions(cfg.DataDir)
		opts.SyncWrites = cfg.SyncWrites
	}
	opts.Logger = nil // Disable BadgerDB internal logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}

	log := logger.GetDefault()
	f := &Factory{
		db:     db,
		models: make(map[string]engine.ClassMetadata),
		log:    log,
		stopGC: make(chan struct{}),
	}

	for _, model := range models {
		meta, err := engine.MetadataFor(model)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		f.models[meta.Name] = meta
	}

	if cfg.GCEnabled && !cfg.InMemory {
		go f.runGarbageCollection()
	}

	log.Info("BadgerDB engine opened",
		logger.String("data_dir", cfg.DataDir),
		logger.Bool("in_memory", cfg.InMemory),
		logger.Int("mapped_types", len(f.models)))

	return f, nil
}

func (f *Factory) runGarbageCollection() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-f.stopGC:
			return
		case <-ticker.C:
			err := f.db.RunValueLogGC(0.5)
			if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				f.log.Warn("BadgerDB garbage collection failed", logger.Error(err))
			}
		}
	}
}

// AllClassMetadata enumerates the mapped models registered at Open time.
func (f *Factory) AllClassMetadata() (map[string]engine.ClassMetadata, error) {
	if f.db.IsClosed() {
		return nil, engine.ErrFactoryClosed
	}

	all := make(map[string]engine.ClassMetadata, len(f.models))
	for name, meta := range f.models {
		all[name] = meta
	}
	return all, nil
}

// OpenSession creates a new session over the shared database handle.
func (f *Factory) OpenSession() (engine.Session, error) {
	if f.db.IsClosed() {
		return nil, engine.ErrFactoryClosed
	}
	return &session{factory: f}, nil
}

// Close stops background work and closes the database.
func (f *Factory) Close() error {
	select {
	case <-f.stopGC:
	default:
		close(f.stopGC)
	}
	return f.db.Close()
}

func (f *Factory) metadata(entity string) (engine.ClassMetadata, error) {
	meta, ok := f.models[entity]
	if !ok {
		return engine.ClassMetadata{}, &engine.UnmappedTypeError{Entity: entity}
	}
	return meta, nil
}

func entityKey(entity, id string) []byte {
	return []byte(keyPrefix + entity + ":" + id)
}

func entityPrefix(entity string) []byte {
	return []byte(keyPrefix + entity + ":")
}
