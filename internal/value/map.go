// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v2"
)

// Map is an insertion-ordered string-keyed host mapping. It is what Lift
// returns for an Object and what callers should build when key order
// matters.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{keys: []string{}, values: map[string]any{}}
}

// Set stores v under key. A new key is appended; an existing key keeps its
// position. Set returns m so calls can be chained.
func (m *Map) Set(key string, v any) *Map {
	if m.values == nil {
		m.values = map[string]any{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
	return m
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Range calls fn for each entry in order until fn returns false.
func (m *Map) Range(fn func(key string, v any) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// ToMap converts m, and any nested *Map, into plain Go maps. Key order is
// lost.
func (m *Map) ToMap() map[string]any {
	out := make(map[string]any, m.Len())
	m.Range(func(k string, v any) bool {
		out[k] = unorder(v)
		return true
	})
	return out
}

func unorder(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.ToMap()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = unorder(item)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON writes the entries in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		// Route through the canonical encoder so floats keep their fraction.
		var raw []byte
		if lowered, lerr := Lower(m.values[k]); lerr == nil {
			raw, err = lowered.MarshalJSON()
		} else {
			raw, err = json.Marshal(m.values[k])
		}
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML returns an ordered yaml.MapSlice so gopkg.in/yaml.v2 keeps the
// insertion order.
func (m *Map) MarshalYAML() (interface{}, error) {
	out := make(yaml.MapSlice, 0, m.Len())
	m.Range(func(k string, v any) bool {
		out = append(out, yaml.MapItem{Key: k, Value: v})
		return true
	})
	return out, nil
}
