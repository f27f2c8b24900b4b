package badgerengine

import (
	"encoding/json"
	"errors"
	"reflect"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/neogan74/entitystore/engine"
)

// session is a BadgerDB-backed engine.Session. Writes require an active
// transaction; reads use the active transaction when one exists so staged
// writes are visible, and a short-lived view otherwise. Not safe for
// concurrent use.
type session struct {
	factory *Factory
	txn     *badger.Txn
}

func (s *session) Factory() engine.SessionFactory {
	return s.factory
}

func (s *session) Begin() error {
	if s.txn != nil {
		return engine.ErrTransactionActive
	}
	if s.factory.db.IsClosed() {
		return engine.ErrFactoryClosed
	}
	s.txn = s.factory.db.NewTransaction(true)
	return nil
}

func (s *session) Commit() error {
	if s.txn == nil {
		return engine.ErrNoTransaction
	}
	err := s.txn.Commit()
	s.txn = nil
	return err
}

func (s *session) Rollback() error {
	if s.txn == nil {
		return engine.ErrNoTransaction
	}
	s.txn.Discard()
	s.txn = nil
	return nil
}

func (s *session) Persist(obj any) error {
	if s.txn == nil {
		return engine.ErrNoTransaction
	}

	entity, id, err := engine.Identify(obj)
	if err != nil {
		return err
	}
	if _, err := s.factory.metadata(entity); err != nil {
		return err
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return s.txn.Set(entityKey(entity, id), data)
}

func (s *session) Remove(obj any) error {
	if s.txn == nil {
		return engine.ErrNoTransaction
	}

	entity, id, err := engine.Identify(obj)
	if err != nil {
		return err
	}
	if _, err := s.factory.metadata(entity); err != nil {
		return err
	}
	return s.txn.Delete(entityKey(entity, id))
}

func (s *session) Load(entity, id string) (any, error) {
	meta, err := s.factory.metadata(entity)
	if err != nil {
		return nil, err
	}

	var data []byte
	read := func(txn *badger.Txn) error {
		item, err := txn.Get(entityKey(entity, id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	}

	if s.txn != nil {
		err = read(s.txn)
	} else {
		err = s.factory.db.View(read)
	}
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, &engine.NotFoundError{Entity: entity, ID: id}
	}
	if err != nil {
		return nil, err
	}
	return decode(meta, data)
}

func (s *session) All(entity string) ([]any, error) {
	cursor, err := s.Scroll(entity, engine.ScrollForwardOnly)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close() }()

	var objs []any
	for cursor.Next() {
		objs = append(objs, cursor.Entity())
	}
	return objs, cursor.Err()
}

func (s *session) Scroll(entity string, mode engine.ScrollMode) (engine.Cursor, error) {
	meta, err := s.factory.metadata(entity)
	if err != nil {
		return nil, err
	}
	if s.factory.db.IsClosed() {
		return nil, engine.ErrFactoryClosed
	}

	// Reuse the active transaction so staged writes are visible; otherwise
	// the cursor owns a read-only transaction for its lifetime.
	txn := s.txn
	ownTxn := false
	if txn == nil {
		txn = s.factory.db.NewTransaction(false)
		ownTxn = true
	}

	if mode == engine.ScrollScrollable {
		objs, err := materialize(txn, meta, entity)
		if ownTxn {
			txn.Discard()
		}
		if err != nil {
			return nil, err
		}
		return &scrollableCursor{objs: objs, pos: -1}, nil
	}

	opts := badger.DefaultIteratorOptions
	opts.Prefix = entityPrefix(entity)
	it := txn.NewIterator(opts)
	it.Rewind()

	return &forwardCursor{
		it:     it,
		txn:    txn,
		ownTxn: ownTxn,
		meta:   meta,
	}, nil
}

func (s *session) Close() error {
	if s.txn != nil {
		s.txn.Discard()
		s.txn = nil
	}
	return nil
}

func materialize(txn *badger.Txn, meta engine.ClassMetadata, entity string) ([]any, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = entityPrefix(entity)
	it := txn.NewIterator(opts)
	defer it.Close()

	var objs []any
	for it.Rewind(); it.Valid(); it.Next() {
		var obj any
		err := it.Item().Value(func(val []byte) error {
			var derr error
			obj, derr = decode(meta, val)
			return derr
		})
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

func decode(meta engine.ClassMetadata, data []byte) (any, error) {
	obj := reflect.New(meta.Type).Interface()
	if err := json.Unmarshal(data, obj); err != nil {
		return nil, err
	}
	return obj, nil
}
