// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// MarshalJSON encodes v with object members in order. Floats always carry a
// fraction or exponent so they read back as floats.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalYAML hands gopkg.in/yaml.v2 the lifted host form, whose *Map keeps
// member order.
func (v Value) MarshalYAML() (interface{}, error) {
	return Lift(v), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		if v.isInt {
			buf.WriteString(strconv.FormatInt(v.i, 10))
		} else {
			buf.WriteString(FormatFloat(v.f))
		}
	case KindString:
		s, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.Write(s)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := m.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// FormatFloat renders f the way encoding/json does, but keeps a ".0" on
// integral values. NaN and infinities have no JSON form and render as null.
func FormatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// ParseJSONValue parses a JSON document straight into a canonical Value,
// preserving object key order.
func ParseJSONValue(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Value{}, ErrInvalidJSON
	}
	return lowerGJSON(gjson.ParseBytes(data))
}

// ParseJSON parses a JSON document into host values: objects become *Map so
// key order survives, integers become int64 and other numbers float64.
func ParseJSON(data []byte) (any, error) {
	v, err := ParseJSONValue(data)
	if err != nil {
		return nil, err
	}
	return Lift(v), nil
}
