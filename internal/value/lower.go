// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"encoding/json"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"
)

// Lower converts a host value into its canonical form. The type tests run in
// a fixed order: nil, bool, integer, float, string, sequence, mapping. Bool
// is tested before the numeric kinds so it is never read as 0 or 1.
//
// Cyclic structures are not detected and must not be passed in.
func Lower(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint:
		return lowerUint(uint64(v)), nil
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case uint64:
		return lowerUint(v), nil
	case json.Number:
		return lowerNumber(v)
	case float32:
		return FromFloat(float64(v)), nil
	case float64:
		return FromFloat(v), nil
	case string:
		return String(v), nil
	case []any:
		return lowerSlice(len(v), func(i int) any { return v[i] })
	case *Map:
		if v == nil {
			return Null(), nil
		}
		return lowerMap(v)
	case yaml.MapSlice:
		return lowerMapSlice(v)
	case gjson.Result:
		return lowerGJSON(v)
	case map[string]any:
		return lowerStringMap(len(v), sortedKeys(v), func(k string) any { return v[k] })
	}

	return lowerReflect(reflect.ValueOf(x))
}

func lowerUint(u uint64) Value {
	if u <= math.MaxInt64 {
		return Int(int64(u))
	}
	return FromFloat(float64(u))
}

func lowerNumber(n json.Number) (Value, error) {
	if i, err := n.Int64(); err == nil {
		return Int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		// Out of range is still a number; anything else is not.
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return Value{}, ErrUnsupportedType
		}
	}
	return FromFloat(f), nil
}

func lowerSlice(n int, at func(int) any) (Value, error) {
	items := make([]Value, n)
	for i := 0; i < n; i++ {
		item, err := Lower(at(i))
		if err != nil {
			return Value{}, err
		}
		items[i] = item
	}
	return Array(items...), nil
}

func lowerMap(m *Map) (Value, error) {
	members := make([]Member, 0, m.Len())
	var err error
	m.Range(func(k string, raw any) bool {
		var v Value
		if v, err = Lower(raw); err != nil {
			return false
		}
		members = append(members, Field(k, v))
		return true
	})
	if err != nil {
		return Value{}, err
	}
	return Object(members...), nil
}

func lowerMapSlice(ms yaml.MapSlice) (Value, error) {
	members := make([]Member, 0, len(ms))
	for _, item := range ms {
		key, ok := item.Key.(string)
		if !ok {
			return Value{}, ErrUnsupportedType
		}
		v, err := Lower(item.Value)
		if err != nil {
			return Value{}, err
		}
		members = append(members, Field(key, v))
	}
	return Object(members...), nil
}

func lowerStringMap(n int, keys []string, at func(string) any) (Value, error) {
	members := make([]Member, 0, n)
	for _, k := range keys {
		v, err := Lower(at(k))
		if err != nil {
			return Value{}, err
		}
		members = append(members, Field(k, v))
	}
	return Object(members...), nil
}

// lowerGJSON walks a parsed JSON document in source order.
func lowerGJSON(r gjson.Result) (Value, error) {
	switch r.Type {
	case gjson.Null:
		return Null(), nil
	case gjson.False:
		return Bool(false), nil
	case gjson.True:
		return Bool(true), nil
	case gjson.Number:
		if !strings.ContainsAny(r.Raw, ".eE") {
			if i, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
				return Int(i), nil
			}
		}
		return FromFloat(r.Num), nil
	case gjson.String:
		return String(r.Str), nil
	}

	if r.IsArray() {
		var items []Value
		var err error
		r.ForEach(func(_, item gjson.Result) bool {
			var v Value
			if v, err = lowerGJSON(item); err != nil {
				return false
			}
			items = append(items, v)
			return true
		})
		if err != nil {
			return Value{}, err
		}
		return Array(items...), nil
	}

	if r.IsObject() {
		var members []Member
		var err error
		r.ForEach(func(key, item gjson.Result) bool {
			var v Value
			if v, err = lowerGJSON(item); err != nil {
				return false
			}
			members = append(members, Field(key.Str, v))
			return true
		})
		if err != nil {
			return Value{}, err
		}
		return Object(members...), nil
	}

	return Value{}, ErrUnsupportedType
}

// lowerReflect handles typed slices, arrays and string-keyed maps such as
// []string or map[string]float64.
func lowerReflect(rv reflect.Value) (Value, error) {
	if !rv.IsValid() {
		return Null(), nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return lowerUint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return FromFloat(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice, reflect.Array:
		return lowerSlice(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, ErrUnsupportedType
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return lowerStringMap(len(keys), keys, func(k string) any {
			return rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()
		})
	}

	return Value{}, ErrUnsupportedType
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
