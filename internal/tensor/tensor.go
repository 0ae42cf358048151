// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tensor

import (
	"math"

	"github.com/tfctl/diffai/internal/result"
	"github.com/tfctl/diffai/internal/value"
)

// Tensor is a recognized tensor object.
type Tensor struct {
	Stats result.TensorStats
	// Data is the flattened payload, or nil when only a summary was present.
	Data []float64
}

// Compute summarizes data. Std is the population standard deviation. An
// empty payload yields zero statistics.
func Compute(shape []int64, dtype string, data []float64) result.TensorStats {
	s := result.TensorStats{
		Shape:        append([]int64{}, shape...),
		Dtype:        dtype,
		ElementCount: int64(len(data)),
	}
	if len(data) == 0 {
		return s
	}

	s.Min, s.Max = math.Inf(1), math.Inf(-1)
	var sum float64
	for _, f := range data {
		sum += f
		s.Min = math.Min(s.Min, f)
		s.Max = math.Max(s.Max, f)
	}
	s.Mean = sum / float64(len(data))

	var sq float64
	for _, f := range data {
		d := f - s.Mean
		sq += d * d
	}
	s.Std = math.Sqrt(sq / float64(len(data)))

	return s
}

// Summary renders stats as a tensor object in summary form.
func Summary(s result.TensorStats) value.Value {
	return value.Object(
		value.Field("dtype", value.String(s.Dtype)),
		value.Field("shape", shapeValue(s.Shape)),
		value.Field("element_count", value.Int(s.ElementCount)),
		value.Field("mean", value.FromFloat(s.Mean)),
		value.Field("std", value.FromFloat(s.Std)),
		value.Field("min", value.FromFloat(s.Min)),
		value.Field("max", value.FromFloat(s.Max)),
	)
}

// Recognize reports whether v is a tensor object and, if so, returns it.
func Recognize(v value.Value) (Tensor, bool) {
	if v.Kind() != value.KindObject {
		return Tensor{}, false
	}

	shapeV, ok := v.Get("shape")
	if !ok {
		return Tensor{}, false
	}
	shape, ok := Shape(shapeV)
	if !ok {
		return Tensor{}, false
	}

	dtypeV, _ := v.Get("dtype")
	dtype, ok := dtypeV.AsString()
	if !ok {
		return Tensor{}, false
	}

	if dataV, ok := v.Get("data"); ok {
		data, ok := Flatten(dataV)
		if !ok {
			return Tensor{}, false
		}
		return Tensor{Stats: Compute(shape, dtype, data), Data: data}, true
	}

	var stats [4]float64
	for i, key := range []string{"mean", "std", "min", "max"} {
		f, ok := number(v, key)
		if !ok {
			return Tensor{}, false
		}
		stats[i] = f
	}

	count := Elements(shape)
	if c, ok := v.Get("element_count"); ok {
		if n, ok := c.AsInt(); ok {
			count = n
		}
	}

	return Tensor{Stats: result.TensorStats{
		Mean: stats[0], Std: stats[1], Min: stats[2], Max: stats[3],
		Shape: shape, Dtype: dtype, ElementCount: count,
	}}, true
}

// Shape reads an array of non-negative integers.
func Shape(v value.Value) ([]int64, bool) {
	if v.Kind() != value.KindArray {
		return nil, false
	}
	dims := make([]int64, 0, v.Len())
	for _, item := range v.Items() {
		d, ok := item.AsInt()
		if !ok || d < 0 {
			return nil, false
		}
		dims = append(dims, d)
	}
	return dims, true
}

// Flatten reads a possibly nested array of numbers in row-major order.
// Booleans count as 0 and 1.
func Flatten(v value.Value) ([]float64, bool) {
	var out []float64
	var walk func(value.Value) bool
	walk = func(v value.Value) bool {
		switch v.Kind() {
		case value.KindArray:
			for _, item := range v.Items() {
				if !walk(item) {
					return false
				}
			}
			return true
		case value.KindNumber:
			f, _ := v.AsFloat()
			out = append(out, f)
			return true
		case value.KindBool:
			b, _ := v.AsBool()
			if b {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
			return true
		}
		return false
	}
	if v.Kind() != value.KindArray || !walk(v) {
		return nil, false
	}
	if out == nil {
		out = []float64{}
	}
	return out, true
}

// Elements is the product of the dimensions. A scalar shape has one element.
func Elements(shape []int64) int64 {
	n := int64(1)
	for _, d := range shape {
		n *= d
	}
	return n
}

// ShapeEqual compares two shapes dimension by dimension.
func ShapeEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func number(v value.Value, key string) (float64, bool) {
	f, ok := v.Get(key)
	if !ok {
		return 0, false
	}
	return f.AsFloat()
}

func shapeValue(dims []int64) value.Value {
	items := make([]value.Value, len(dims))
	for i, d := range dims {
		items[i] = value.Int(d)
	}
	return value.Array(items...)
}
