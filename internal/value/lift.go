// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package value

// Lift converts a canonical Value back into a host value. It is total:
//
//	Null   -> nil
//	Bool   -> bool
//	Number -> int64 when stored as an exact integer, else float64
//	String -> string
//	Array  -> []any
//	Object -> *Map, in member order
func Lift(v Value) any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		if v.isInt {
			return v.i
		}
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = Lift(item)
		}
		return out
	case KindObject:
		m := NewMap()
		for _, member := range v.members {
			m.Set(member.Key, Lift(member.Value))
		}
		return m
	}
	return nil
}
