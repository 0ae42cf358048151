// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"math"
)

// Kind identifies which of the six canonical shapes a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lower-case kind name used in messages and text output.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable canonical tree node. The zero Value is Null.
type Value struct {
	kind    Kind
	b       bool
	isInt   bool
	i       int64
	f       float64
	s       string
	items   []Value
	members []Member
}

// Null returns the Null value.
func Null() Value { return Value{} }

// Bool returns a Bool value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an exact integer Number.
func Int(i int64) Value { return Value{kind: KindNumber, isInt: true, i: i} }

// Float returns a floating point Number. The value is stored verbatim; use
// FromFloat when the input may be NaN or infinite.
func Float(f float64) Value { return Value{kind: KindNumber, f: f} }

// FromFloat returns a floating point Number, or the integer 0 sentinel when f
// is NaN or infinite and therefore has no numeric encoding.
func FromFloat(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Int(0)
	}
	return Float(f)
}

// String returns a String value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an Array holding items in order.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}
}

// Object returns an Object holding members in order. A repeated key replaces
// the earlier value in place, keeping the position of its first occurrence.
func Object(members ...Member) Value {
	out := make([]Member, 0, len(members))
	index := make(map[string]int, len(members))
	for _, m := range members {
		if i, ok := index[m.Key]; ok {
			out[i].Value = m.Value
			continue
		}
		index[m.Key] = len(out)
		out = append(out, m)
	}
	return Value{kind: KindObject, members: out}
}

// Field is shorthand for constructing a Member.
func Field(key string, v Value) Member { return Member{Key: key, Value: v} }

// Kind reports the shape of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsInteger reports whether v is a Number stored as an exact integer.
func (v Value) IsInteger() bool { return v.kind == KindNumber && v.isInt }

// AsBool returns the boolean payload and whether v is a Bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the integer payload and whether v is an exact integer.
func (v Value) AsInt() (int64, bool) { return v.i, v.IsInteger() }

// AsFloat returns any Number as a float64 and whether v is a Number.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	if v.isInt {
		return float64(v.i), true
	}
	return v.f, true
}

// AsString returns the text payload and whether v is a String.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// Items returns the elements of an Array, or nil for any other kind. The
// returned slice must not be modified.
func (v Value) Items() []Value { return v.items }

// Members returns the members of an Object in order, or nil for any other
// kind. The returned slice must not be modified.
func (v Value) Members() []Member { return v.members }

// Len returns the number of Array elements or Object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	}
	return 0
}

// Get returns the member value for key when v is an Object.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether v is an Object containing key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Equal reports deep structural equality. Numbers must agree on both value
// and representation: Int(1) is not Equal to Float(1).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		if v.isInt != o.isInt {
			return false
		}
		if v.isInt {
			return v.i == o.i
		}
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindArray:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(o.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Key != o.members[i].Key || !v.members[i].Value.Equal(o.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
