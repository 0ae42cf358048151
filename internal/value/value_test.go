// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package value

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestObjectDuplicateKeyKeepsFirstPosition(t *testing.T) {
	obj := Object(Field("a", Int(1)), Field("b", Int(2)), Field("a", Int(3)))

	require.Equal(t, 2, obj.Len())
	assert.Equal(t, "a", obj.Members()[0].Key)
	v, ok := obj.Get("a")
	require.True(t, ok)
	assert.True(t, Int(3).Equal(v))
}

func TestEqual(t *testing.T) {
	assert.True(t, Null().Equal(Value{}))
	assert.False(t, Int(1).Equal(Float(1)))
	assert.False(t, Array(Int(1)).Equal(Array(Int(1), Int(2))))
	assert.False(t, Object(Field("a", Null())).Equal(Object(Field("b", Null()))))
	assert.True(t, Object(Field("a", Array(String("x")))).Equal(Object(Field("a", Array(String("x"))))))
}

func TestAccessors(t *testing.T) {
	f, ok := Int(3).AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)

	_, ok = String("x").AsFloat()
	assert.False(t, ok)

	i, ok := Int(7).AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(7), i)

	_, ok = Float(7).AsInt()
	assert.False(t, ok)

	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, 0, String("abc").Len())
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 2, want: "2.0"},
		{in: -0.5, want: "-0.5"},
		{in: 1e21, want: "1e+21"},
		{in: 1e-7, want: "1e-07"},
		{in: 0, want: "0.0"},
		{in: math.NaN(), want: "null"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFloat(tt.in))
	}
}

func TestMarshalJSON(t *testing.T) {
	v := Object(
		Field("type", String("Modified")),
		Field("path", String("a")),
		Field("old_value", Int(1)),
		Field("new_value", Float(2)),
		Field("list", Array(Null(), Bool(true))),
	)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"Modified","path":"a","old_value":1,"new_value":2.0,"list":[null,true]}`, string(out))
}

func TestMapMarshalJSONKeepsOrder(t *testing.T) {
	m := NewMap().Set("z", 1.0).Set("a", []any{int64(1)}).Set("m", NewMap().Set("y", nil))

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1.0,"a":[1],"m":{"y":null}}`, string(out))
}

func TestMapMarshalYAMLKeepsOrder(t *testing.T) {
	m := NewMap().Set("zeta", 1).Set("alpha", "x")

	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "zeta: 1\nalpha: x\n", string(out))
}

func TestParseJSON(t *testing.T) {
	host, err := ParseJSON([]byte(`[{"type": "Added", "path": "b", "value": 2.0}]`))
	require.NoError(t, err)

	list, ok := host.([]any)
	require.True(t, ok)
	require.Len(t, list, 1)

	m, ok := list[0].(*Map)
	require.True(t, ok)
	assert.Equal(t, []string{"type", "path", "value"}, m.Keys())
	v, _ := m.Get("value")
	assert.Equal(t, 2.0, v)

	_, err = ParseJSON([]byte(`{"a":`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestMapSetReplacesInPlace(t *testing.T) {
	m := NewMap().Set("a", 1).Set("b", 2).Set("a", 3)

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	var zero Map
	zero.Set("x", 1)
	assert.Equal(t, 1, zero.Len())
}
