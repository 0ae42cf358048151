// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package result

import (
	"github.com/tfctl/diffai/internal/value"
)

// Decode rebuilds a DiffResult from an encoded Object. Only Added, Removed,
// Modified and TypeChanged decode; every other type string, including the
// remaining encodable variants, fails with ErrInvalidDiffType.
func Decode(v value.Value) (DiffResult, error) {
	if v.Kind() != value.KindObject {
		return nil, &CodecError{Kind: ErrNotObject}
	}

	typ, err := stringField(v, "type")
	if err != nil {
		return nil, err
	}
	path, err := stringField(v, "path")
	if err != nil {
		return nil, err
	}

	switch Kind(typ) {
	case KindAdded:
		val, err := field(v, "value")
		if err != nil {
			return nil, err
		}
		return Added{Path: path, Value: val}, nil
	case KindRemoved:
		val, err := field(v, "value")
		if err != nil {
			return nil, err
		}
		return Removed{Path: path, Value: val}, nil
	case KindModified:
		oldV, newV, err := valuePair(v)
		if err != nil {
			return nil, err
		}
		return Modified{Path: path, OldValue: oldV, NewValue: newV}, nil
	case KindTypeChanged:
		oldV, newV, err := valuePair(v)
		if err != nil {
			return nil, err
		}
		return TypeChanged{Path: path, OldValue: oldV, NewValue: newV}, nil
	}

	return nil, invalidDiffType(typ)
}

// FromHost lowers a host value and decodes it.
func FromHost(x any) (DiffResult, error) {
	v, err := value.Lower(x)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

// DecodeAll decodes every element, stopping at the first failure.
func DecodeAll(vs []value.Value) ([]DiffResult, error) {
	out := make([]DiffResult, 0, len(vs))
	for _, v := range vs {
		r, err := Decode(v)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func field(v value.Value, name string) (value.Value, error) {
	f, ok := v.Get(name)
	if !ok {
		return value.Value{}, missingField(name)
	}
	return f, nil
}

func stringField(v value.Value, name string) (string, error) {
	f, err := field(v, name)
	if err != nil {
		return "", err
	}
	s, ok := f.AsString()
	if !ok {
		return "", fieldType(name)
	}
	return s, nil
}

func valuePair(v value.Value) (value.Value, value.Value, error) {
	oldV, err := field(v, "old_value")
	if err != nil {
		return value.Value{}, value.Value{}, err
	}
	newV, err := field(v, "new_value")
	if err != nil {
		return value.Value{}, value.Value{}, err
	}
	return oldV, newV, nil
}
