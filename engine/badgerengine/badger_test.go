package badgerengine

import (
	"testing"

	"github.com/neogan74/entitystore/engine"
)

type record struct {
	ID    string
	Value string
}

func newTestFactory(t *testing.T) *Factory {
	t.Helper()

	cfg := Config{DataDir: t.TempDir(), SyncWrites: true}
	factory, err := Open(cfg, &record{})
	if err != nil {
		t.Fatalf("Failed to open badger engine: %v", err)
	}
	t.Cleanup(func() { _ = factory.Close() })
	return factory
}

func TestConfig_Validate(t *testing.T) {
	if err := (Config{}).Validate(); err == nil {
		t.Error("Expected error for empty data dir")
	}
	if err := (Config{InMemory: true}).Validate(); err != nil {
		t.Errorf("Expected in-memory config to validate, got %v", err)
	}
	if err := (Config{DataDir: "/tmp/x"}).Validate(); err != nil {
		t.Errorf("Expected config with data dir to validate, got %v", err)
	}
}

func TestFactory_Metadata(t *testing.T) {
	factory := newTestFactory(t)

	all, err := factory.AllClassMetadata()
	if err != nil {
		t.Fatalf("Failed to enumerate metadata: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected 1 mapped type, got %d", len(all))
	}
	if _, ok := all["record"]; !ok {
		t.Error("Expected 'record' to be mapped")
	}
}

func TestFactory_ClosedErrors(t *testing.T) {
	cfg := Config{DataDir: t.TempDir()}
	factory, err := Open(cfg, &record{})
	if err != nil {
		t.Fatalf("Failed to open badger engine: %v", err)
	}
	if err := factory.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	if _, err := factory.OpenSession(); err != engine.ErrFactoryClosed {
		t.Errorf("Expected ErrFactoryClosed, got %v", err)
	}
	if _, err := factory.AllClassMetadata(); err != engine.ErrFactoryClosed {
		t.Errorf("Expected ErrFactoryClosed, got %v", err)
	}
}

func TestSession_Lifecycle(t *testing.T) {
	factory := newTestFactory(t)

	session, err := factory.OpenSession()
	if err != nil {
		t.Fatalf("Failed to open session: %v", err)
	}
	defer func() { _ = session.Close() }()

	if err := session.Persist(&record{ID: "r-1"}); err != engine.ErrNoTransaction {
		t.Errorf("Expected ErrNoTransaction, got %v", err)
	}

	if err := session.Begin(); err != nil {
		t.Fatalf("Failed to begin: %v", err)
	}
	if err := session.Begin(); err != engine.ErrTransactionActive {
		t.Errorf("Expected ErrTransactionActive, got %v", err)
	}

	if err := session.Persist(&record{ID: "r-1", Value: "hello"}); err != nil {
		t.Fatalf("Failed to persist: %v", err)
	}

	// Staged write visible before commit
	obj, err := session.Load("record", "r-1")
	if err != nil {
		t.Fatalf("Failed to load staged write: %v", err)
	}
	if obj.(*record).Value != "hello" {
		t.Errorf("Expected 'hello', got %q", obj.(*record).Value)
	}

	if err := session.Commit(); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	// Visible from a fresh session after commit
	other, err := factory.OpenSession()
	if err != nil {
		t.Fatalf("Failed to open session: %v", err)
	}
	defer func() { _ = other.Close() }()

	obj, err = other.Load("record", "r-1")
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if obj.(*record).Value != "hello" {
		t.Errorf("Expected 'hello', got %q", obj.(*record).Value)
	}
}

func TestSession_RollbackDiscards(t *testing.T) {
	factory := newTestFactory(t)

	session, _ := factory.OpenSession()
	defer func() { _ = session.Close() }()

	if err := session.Begin(); err != nil {
		t.Fatalf("Failed to begin: %v", err)
	}
	if err := session.Persist(&record{ID: "r-2"}); err != nil {
		t.Fatalf("Failed to persist: %v", err)
	}
	if err := session.Rollback(); err != nil {
		t.Fatalf("Failed to rollback: %v", err)
	}

	if _, err := session.Load("record", "r-2"); !engine.IsNotFound(err) {
		t.Errorf("Expected not found after rollback, got %v", err)
	}
}

func TestSession_Remove(t *testing.T) {
	factory := newTestFactory(t)

	session, _ := factory.OpenSession()
	defer func() { _ = session.Close() }()

	_ = session.Begin()
	_ = session.Persist(&record{ID: "r-3"})
	if err := session.Commit(); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	_ = session.Begin()
	if err := session.Remove(&record{ID: "r-3"}); err != nil {
		t.Fatalf("Failed to remove: %v", err)
	}
	if err := session.Commit(); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	if _, err := session.Load("record", "r-3"); !engine.IsNotFound(err) {
		t.Errorf("Expected not found after delete, got %v", err)
	}
}

func TestSession_ScrollForwardOnly(t *testing.T) {
	factory := newTestFactory(t)

	session, _ := factory.OpenSession()
	defer func() { _ = session.Close() }()

	_ = session.Begin()
	_ = session.Persist(&record{ID: "a", Value: "1"})
	_ = session.Persist(&record{ID: "b", Value: "2"})
	_ = session.Persist(&record{ID: "c", Value: "3"})
	if err := session.Commit(); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	cursor, err := session.Scroll("record", engine.ScrollForwardOnly)
	if err != nil {
		t.Fatalf("Failed to scroll: %v", err)
	}
	defer func() { _ = cursor.Close() }()

	var ids []string
	for cursor.Next() {
		ids = append(ids, cursor.Entity().(*record).ID)
	}
	if cursor.Err() != nil {
		t.Fatalf("Cursor failed: %v", cursor.Err())
	}
	if len(ids) != 3 || ids[0] != "a" || ids[2] != "c" {
		t.Errorf("Expected [a b c], got %v", ids)
	}

	if err := cursor.Rewind(); err != engine.ErrForwardOnly {
		t.Errorf("Expected ErrForwardOnly, got %v", err)
	}
}

func TestSession_ScrollScrollable(t *testing.T) {
	factory := newTestFactory(t)

	session, _ := factory.OpenSession()
	defer func() { _ = session.Close() }()

	_ = session.Begin()
	_ = session.Persist(&record{ID: "a"})
	_ = session.Persist(&record{ID: "b"})
	if err := session.Commit(); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	cursor, err := session.Scroll("record", engine.ScrollScrollable)
	if err != nil {
		t.Fatalf("Failed to scroll: %v", err)
	}
	defer func() { _ = cursor.Close() }()

	count := 0
	for cursor.Next() {
		count++
	}
	if count != 2 {
		t.Errorf("Expected 2 results, got %d", count)
	}

	if err := cursor.Rewind(); err != nil {
		t.Fatalf("Failed to rewind: %v", err)
	}
	if !cursor.Next() {
		t.Error("Expected results after rewind")
	}
}

func TestSession_ScrollSeesStagedWrites(t *testing.T) {
	factory := newTestFactory(t)

	session, _ := factory.OpenSession()
	defer func() { _ = session.Close() }()

	_ = session.Begin()
	_ = session.Persist(&record{ID: "staged"})

	objs, err := session.All("record")
	if err != nil {
		t.Fatalf("Failed to load all: %v", err)
	}
	if len(objs) != 1 || objs[0].(*record).ID != "staged" {
		t.Errorf("Expected staged write in scan, got %v", objs)
	}
	_ = session.Rollback()
}

func TestSession_CloseDiscardsTransaction(t *testing.T) {
	factory := newTestFactory(t)

	session, _ := factory.OpenSession()
	_ = session.Begin()
	_ = session.Persist(&record{ID: "r-9"})
	if err := session.Close(); err != nil {
		t.Fatalf("Failed to close session: %v", err)
	}

	other, _ := factory.OpenSession()
	defer func() { _ = other.Close() }()
	if _, err := other.Load("record", "r-9"); !engine.IsNotFound(err) {
		t.Errorf("Expected closed session to discard writes, got %v", err)
	}
}

func TestInMemoryConfig(t *testing.T) {
	factory, err := Open(Config{InMemory: true}, &record{})
	if err != nil {
		t.Fatalf("Failed to open in-memory engine: %v", err)
	}
	defer func() { _ = factory.Close() }()

	session, err := factory.OpenSession()
	if err != nil {
		t.Fatalf("Failed to open session: %v", err)
	}
	defer func() { _ = session.Close() }()

	_ = session.Begin()
	if err := session.Persist(&record{ID: "m-1"}); err != nil {
		t.Fatalf("Failed to persist: %v", err)
	}
	if err := session.Commit(); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}
}
