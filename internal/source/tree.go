// Package source decodes recipe, tag and feature documents into an ordered
// generic tree.
//
// Values in the tree are one of: *Map, []any, string, float64, bool or nil.
// Object key order is preserved so that recipe load order and shaped-recipe
// key maps follow the document.
package source

import (
	"fmt"
	"strings"
)

// Map is an insertion-ordered string-keyed object.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Set stores v under k. Overwriting keeps the original position.
func (m *Map) Set(k string, v any) {
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// Get returns the value stored under k.
func (m *Map) Get(k string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[k]
	return v, ok
}

// Has reports whether k is present.
func (m *Map) Has(k string) bool {
	_, ok := m.Get(k)
	return ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// String returns the string stored under k. Missing keys yield ("", false, nil);
// a present non-string value is an error.
func (m *Map) String(k string) (string, bool, error) {
	v, ok := m.Get(k)
	if !ok || v == nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("field %q: expected string, got %s", k, TypeName(v))
	}
	return s, true, nil
}

// Number returns the number stored under k.
func (m *Map) Number(k string) (float64, bool, error) {
	v, ok := m.Get(k)
	if !ok || v == nil {
		return 0, false, nil
	}
	f, ok := v.(float64)
	if !ok {
		return 0, false, fmt.Errorf("field %q: expected number, got %s", k, TypeName(v))
	}
	return f, true, nil
}

// Bool returns the boolean stored under k.
func (m *Map) Bool(k string) (bool, bool, error) {
	v, ok := m.Get(k)
	if !ok || v == nil {
		return false, false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, false, fmt.Errorf("field %q: expected bool, got %s", k, TypeName(v))
	}
	return b, true, nil
}

// Object returns the nested map stored under k.
func (m *Map) Object(k string) (*Map, bool, error) {
	v, ok := m.Get(k)
	if !ok || v == nil {
		return nil, false, nil
	}
	o, ok := v.(*Map)
	if !ok {
		return nil, false, fmt.Errorf("field %q: expected object, got %s", k, TypeName(v))
	}
	return o, true, nil
}

// TypeName names the tree type of v for error messages.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case *Map:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	default:
		return strings.TrimPrefix(fmt.Sprintf("%T", v), "*")
	}
}
