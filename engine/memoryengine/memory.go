// Package memoryengine provides an in-memory persistence engine. It backs
// tests and deployments that do not need durability, mirroring the durable
// badger engine behind the same capability interfaces.
package memoryengine

import (
	"encoding/json"
	"reflect"
	"sort"
	"sync"

	"github.com/neogan74/entitystore/engine"
)

// Factory is an in-memory engine.SessionFactory. Committed data lives in
// maps keyed by entity name and id; sessions stage writes locally and apply
// them on commit under the factory lock.
type Factory struct {
	mu     sync.RWMutex
	models map[string]engine.ClassMetadata
	data   map[string]map[string][]byte
	closed bool
}

// New creates a memory engine with the given mapped models.
func New(models ...any) (*Factory, error) {
	f := &Factory{
		models: make(map[string]engine.ClassMetadata),
		data:   make(map[string]map[string][]byte),
	}
	for _, model := range models {
		meta, err := engine.MetadataFor(model)
		if err != nil {
			return nil, err
		}
		f.models[meta.Name] = meta
		f.data[meta.Name] = make(map[string][]byte)
	}
	return f, nil
}

func (f *Factory) AllClassMetadata() (map[string]engine.ClassMetadata, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return nil, engine.ErrFactoryClosed
	}

	all := make(map[string]engine.ClassMetadata, len(f.models))
	for name, meta := range f.models {
		all[name] = meta
	}
	return all, nil
}

func (f *Factory) OpenSession() (engine.Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return nil, engine.ErrFactoryClosed
	}
	return &session{factory: f}, nil
}

func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	return nil
}

func (f *Factory) metadata(entity string) (engine.ClassMetadata, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	meta, ok := f.models[entity]
	if !ok {
		return engine.ClassMetadata{}, &engine.UnmappedTypeError{Entity: entity}
	}
	return meta, nil
}

// session is an in-memory engine.Session. Not safe for concurrent use.
type session struct {
	factory *Factory
	active  bool
	writes  map[string]map[string][]byte
	deletes map[string]map[string]bool
}

func (s *session) Factory() engine.SessionFactory {
	return s.factory
}

func (s *session) Begin() error {
	if s.active {
		return engine.ErrTransactionActive
	}
	s.active = true
	s.writes = make(map[string]map[string][]byte)
	s.deletes = make(map[string]map[string]bool)
	return nil
}

func (s *session) Commit() error {
	if !s.active {
		return engine.ErrNoTransaction
	}

	s.factory.mu.Lock()
	defer s.factory.mu.Unlock()

	for entity, rows := range s.writes {
		for id, data := range rows {
			s.factory.data[entity][id] = data
		}
	}
	for entity, ids := range s.deletes {
		for id := range ids {
			delete(s.factory.data[entity], id)
		}
	}

	s.clear()
	return nil
}

func (s *session) Rollback() error {
	if !s.active {
		return engine.ErrNoTransaction
	}
	s.clear()
	return nil
}

func (s *session) clear() {
	s.active = false
	s.writes = nil
	s.deletes = nil
}

func (s *session) Persist(obj any) error {
	if !s.active {
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

	if s.writes[entity] == nil {
		s.writes[entity] = make(map[string][]byte)
	}
	s.writes[entity][id] = data
	delete(s.deletes[entity], id)
	return nil
}

func (s *session) Remove(obj any) error {
	if !s.active {
		return engine.ErrNoTransaction
	}

	entity, id, err := engine.Identify(obj)
	if err != nil {
		return err
	}
	if _, err := s.factory.metadata(entity); err != nil {
		return err
	}

	if s.deletes[entity] == nil {
		s.deletes[entity] = make(map[string]bool)
	}
	s.deletes[entity][id] = true
	if s.writes[entity] != nil {
		delete(s.writes[entity], id)
	}
	return nil
}

func (s *session) Load(entity, id string) (any, error) {
	meta, err := s.factory.metadata(entity)
	if err != nil {
		return nil, err
	}

	// Staged writes and deletes shadow committed data
	if s.active {
		if s.deletes[entity][id] {
			return nil, &engine.NotFoundError{Entity: entity, ID: id}
		}
		if data, ok := s.writes[entity][id]; ok {
			return decode(meta, data)
		}
	}

	s.factory.mu.RLock()
	data, ok := s.factory.data[entity][id]
	s.factory.mu.RUnlock()
	if !ok {
		return nil, &engine.NotFoundError{Entity: entity, ID: id}
	}
	return decode(meta, data)
}

func (s *session) All(entity string) ([]any, error) {
	meta, err := s.factory.metadata(entity)
	if err != nil {
		return nil, err
	}

	merged := make(map[string][]byte)

	s.factory.mu.RLock()
	for id, data := range s.factory.data[entity] {
		merged[id] = data
	}
	s.factory.mu.RUnlock()

	if s.active {
		for id, data := range s.writes[entity] {
			merged[id] = data
		}
		for id := range s.deletes[entity] {
			delete(merged, id)
		}
	}

	ids := make([]string, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	objs := make([]any, 0, len(ids))
	for _, id := range ids {
		obj, err := decode(meta, merged[id])
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

func (s *session) Scroll(entity string, mode engine.ScrollMode) (engine.Cursor, error) {
	objs, err := s.All(entity)
	if err != nil {
		return nil, err
	}
	return &cursor{objs: objs, pos: -1, mode: mode}, nil
}

func (s *session) Close() error {
	s.clear()
	return nil
}

func decode(meta engine.ClassMetadata, data []byte) (any, error) {
	obj := reflect.New(meta.Type).Interface()
	if err := json.Unmarshal(data, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// cursor walks a snapshot taken at Scroll time.
type cursor struct {
	objs []any
	pos  int
	mode engine.ScrollMode
}

func (c *cursor) Next() bool {
	if c.pos+1 >= len(c.objs) {
		return false
	}
	c.pos++
	return true
}

func (c *cursor) Entity() any {
	if c.pos < 0 || c.pos >= len(c.objs) {
		return nil
	}
	return c.objs[c.pos]
}

func (c *cursor) Rewind() error {
	if c.mode != engine.ScrollScrollable {
		return engine.ErrForwardOnly
	}
	c.pos = -1
	return nil
}

func (c *cursor) Err() error {
	return nil
}

func (c *cursor) Close() error {
	c.objs = nil
	c.pos = -1
	return nil
}
