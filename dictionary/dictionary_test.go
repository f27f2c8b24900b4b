package dictionary

import (
	"reflect"
	"testing"

	"github.com/neogan74/entitystore/engine"
)

type widget struct {
	ID string
}

type gadget struct {
	ID string
}

func TestDictionary_BindAndLookup(t *testing.T) {
	d := New()

	d.BindEntity(engine.ClassMetadata{Name: "widget", Type: reflect.TypeOf(widget{})})
	d.BindEntity(engine.ClassMetadata{Name: "gadget", Type: reflect.TypeOf(gadget{})})

	if d.Len() != 2 {
		t.Fatalf("Expected 2 entries, got %d", d.Len())
	}

	meta, ok := d.Lookup("widget")
	if !ok {
		t.Fatal("Expected widget to be bound")
	}
	if meta.Type != reflect.TypeOf(widget{}) {
		t.Errorf("Expected widget type, got %v", meta.Type)
	}

	if _, ok := d.Lookup("missing"); ok {
		t.Error("Expected missing entity to be unbound")
	}
}

func TestDictionary_BindIsIdempotent(t *testing.T) {
	d := New()

	meta := engine.ClassMetadata{Name: "widget", Type: reflect.TypeOf(widget{})}
	d.BindEntity(meta)
	d.BindEntity(meta)
	d.BindEntity(meta)

	if d.Len() != 1 {
		t.Errorf("Expected 1 entry after rebinding, got %d", d.Len())
	}
}

func TestDictionary_Names(t *testing.T) {
	d := New()

	d.BindEntity(engine.ClassMetadata{Name: "widget", Type: reflect.TypeOf(widget{})})
	d.BindEntity(engine.ClassMetadata{Name: "gadget", Type: reflect.TypeOf(gadget{})})

	names := d.Names()
	if len(names) != 2 || names[0] != "gadget" || names[1] != "widget" {
		t.Errorf("Expected sorted [gadget widget], got %v", names)
	}
}
