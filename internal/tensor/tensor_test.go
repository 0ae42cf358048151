// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/diffai/internal/result"
	"github.com/tfctl/diffai/internal/value"
)

func TestCompute(t *testing.T) {
	s := Compute([]int64{4}, "float32", []float64{1, 2, 3, 4})

	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, 1.118033988749895, s.Std, 1e-12)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 4.0, s.Max)
	assert.Equal(t, int64(4), s.ElementCount)
	assert.Equal(t, "float32", s.Dtype)

	empty := Compute([]int64{0}, "float32", nil)
	assert.Equal(t, result.TensorStats{Shape: []int64{0}, Dtype: "float32"}, empty)
}

func TestRecognizeData(t *testing.T) {
	v := value.Object(
		value.Field("shape", value.Array(value.Int(2), value.Int(2))),
		value.Field("dtype", value.String("float64")),
		value.Field("data", value.Array(
			value.Array(value.Float(1), value.Float(2)),
			value.Array(value.Int(3), value.Bool(true)),
		)),
	)

	tn, ok := Recognize(v)
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2, 3, 1}, tn.Data)
	assert.Equal(t, []int64{2, 2}, tn.Stats.Shape)
	assert.InDelta(t, 1.75, tn.Stats.Mean, 1e-12)
}

func TestRecognizeSummaryRoundTrip(t *testing.T) {
	want := result.TensorStats{Mean: 0.5, Std: 0.1, Min: 0, Max: 1, Shape: []int64{3, 4}, Dtype: "F32", ElementCount: 12}

	tn, ok := Recognize(Summary(want))
	require.True(t, ok)
	assert.Nil(t, tn.Data)
	assert.Equal(t, want, tn.Stats)
}

func TestRecognizeRejects(t *testing.T) {
	tests := []struct {
		name string
		in   value.Value
	}{
		{name: "not object", in: value.Array()},
		{name: "no shape", in: value.Object(value.Field("dtype", value.String("f32")))},
		{name: "float shape", in: value.Object(value.Field("shape", value.Array(value.Float(2))), value.Field("dtype", value.String("f32")))},
		{name: "no dtype", in: value.Object(value.Field("shape", value.Array()))},
		{
			name: "no data or stats",
			in:   value.Object(value.Field("shape", value.Array()), value.Field("dtype", value.String("f32"))),
		},
		{
			name: "string data",
			in: value.Object(
				value.Field("shape", value.Array(value.Int(1))),
				value.Field("dtype", value.String("f32")),
				value.Field("data", value.Array(value.String("x"))),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Recognize(tt.in)
			assert.False(t, ok)
		})
	}
}

func TestElements(t *testing.T) {
	assert.Equal(t, int64(1), Elements(nil))
	assert.Equal(t, int64(24), Elements([]int64{2, 3, 4}))
	assert.True(t, ShapeEqual([]int64{1, 2}, []int64{1, 2}))
	assert.False(t, ShapeEqual([]int64{1, 2}, []int64{2, 1}))
}
