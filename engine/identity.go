package engine

import (
	"fmt"
	"reflect"
	"strings"
)

// MetadataFor derives ClassMetadata for a mapped model value. The model must
// be a struct or pointer to struct; the entity name is the lowercased struct
// name unless an `entity:"name=..."` tag on any field overrides it.
func MetadataFor(model any) (ClassMetadata, error) {
	t := reflect.TypeOf(model)
	if t == nil {
		return ClassMetadata{}, fmt.Errorf("mapped model must not be nil")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return ClassMetadata{}, fmt.Errorf("mapped model must be a struct, got %s", t.Kind())
	}

	name := strings.ToLower(t.Name())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("entity")
		if v, ok := strings.CutPrefix(tag, "name="); ok {
			name = v
		}
	}
	if name == "" {
		return ClassMetadata{}, fmt.Errorf("mapped model %s has no entity name", t)
	}

	return ClassMetadata{Name: name, Type: t}, nil
}

// Identify resolves the entity name and identifier of a mapped object. The
// identifier is read from the field tagged `entity:"id"`, falling back to a
// string field named ID.
func Identify(obj any) (entity, id string, err error) {
	meta, err := MetadataFor(obj)
	if err != nil {
		return "", "", err
	}

	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	idField := -1
	for i := 0; i < meta.Type.NumField(); i++ {
		f := meta.Type.Field(i)
		if f.Tag.Get("entity") == "id" {
			idField = i
			break
		}
		if f.Name == "ID" && idField == -1 {
			idField = i
		}
	}
	if idField == -1 {
		return "", "", fmt.Errorf("mapped model %s has no identifier field", meta.Type)
	}

	fv := v.Field(idField)
	if fv.Kind() != reflect.String {
		return "", "", fmt.Errorf("identifier field of %s must be a string, got %s", meta.Type, fv.Kind())
	}
	id = fv.String()
	if id == "" {
		return "", "", fmt.Errorf("mapped object of type %s has an empty identifier", meta.Type)
	}

	return meta.Name, id, nil
}
