// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package value is the boundary between untyped Go values and the canonical
// tree the diff core works on.
//
// A canonical Value is one of six kinds:
//
//   - Null
//   - Bool
//   - Number (an exact int64 or a float64, and it remembers which)
//   - String
//   - Array (ordered)
//   - Object (ordered, unique keys)
//
// Lower converts host values (nil, bool, Go numbers, json.Number, string,
// slices, string-keyed maps, *Map, yaml.MapSlice, gjson.Result) into a Value.
// Lift converts back into nil, bool, int64, float64, string, []any and *Map.
// For every host value built only from the shapes above,
// Lift(Lower(x)) reproduces x, including the int/float distinction.
//
// Go maps iterate in random order, so plain maps are lowered with sorted
// keys. Callers that care about key order should hand in a *Map,
// a yaml.MapSlice or a gjson.Result.
package value
