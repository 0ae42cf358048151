// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package result

import (
	"fmt"

	"github.com/tfctl/diffai/internal/value"
)

// Encode converts r into an Object whose first two members are "type" and
// "path", followed by the variant payload. It never fails.
func Encode(r DiffResult) value.Value {
	head := []value.Member{
		value.Field("type", value.String(string(r.Kind()))),
		value.Field("path", value.String(r.Location())),
	}

	var body []value.Member
	switch r := r.(type) {
	case Added:
		body = []value.Member{value.Field("value", r.Value)}
	case Removed:
		body = []value.Member{value.Field("value", r.Value)}
	case Modified:
		body = pair("old_value", r.OldValue, "new_value", r.NewValue)
	case TypeChanged:
		body = pair("old_value", r.OldValue, "new_value", r.NewValue)
	case TensorShapeChanged:
		body = pair("old_shape", shape(r.OldShape), "new_shape", shape(r.NewShape))
	case TensorStatsChanged:
		body = pair("old_stats", stats(r.OldStats), "new_stats", stats(r.NewStats))
	case TensorDataChanged:
		body = floats("old_mean", r.OldMean, "new_mean", r.NewMean)
	case ModelArchitectureChanged:
		body = strs("old_architecture", r.OldArchitecture, "new_architecture", r.NewArchitecture)
	case WeightSignificantChange:
		body = []value.Member{value.Field("change_magnitude", value.Float(r.ChangeMagnitude))}
	case ActivationFunctionChanged:
		body = strs("old_activation", r.OldActivation, "new_activation", r.NewActivation)
	case LearningRateChanged:
		body = floats("old_learning_rate", r.OldLearningRate, "new_learning_rate", r.NewLearningRate)
	case OptimizerChanged:
		body = strs("old_optimizer", r.OldOptimizer, "new_optimizer", r.NewOptimizer)
	case LossChange:
		body = floats("old_loss", r.OldLoss, "new_loss", r.NewLoss)
	case AccuracyChange:
		body = floats("old_accuracy", r.OldAccuracy, "new_accuracy", r.NewAccuracy)
	case ModelVersionChanged:
		body = strs("old_version", r.OldVersion, "new_version", r.NewVersion)
	default:
		// Unreachable while DiffResult stays sealed.
		panic(fmt.Sprintf("result: unknown variant %T", r))
	}

	return value.Object(append(head, body...)...)
}

// ToHost encodes r and lifts it to a host *value.Map.
func ToHost(r DiffResult) any {
	return value.Lift(Encode(r))
}

// EncodeAll encodes every result in order.
func EncodeAll(rs []DiffResult) []value.Value {
	out := make([]value.Value, len(rs))
	for i, r := range rs {
		out[i] = Encode(r)
	}
	return out
}

func pair(k1 string, v1 value.Value, k2 string, v2 value.Value) []value.Member {
	return []value.Member{value.Field(k1, v1), value.Field(k2, v2)}
}

func floats(k1 string, f1 float64, k2 string, f2 float64) []value.Member {
	return pair(k1, value.Float(f1), k2, value.Float(f2))
}

func strs(k1, s1, k2, s2 string) []value.Member {
	return pair(k1, value.String(s1), k2, value.String(s2))
}

func shape(dims []int64) value.Value {
	items := make([]value.Value, len(dims))
	for i, d := range dims {
		items[i] = value.Int(d)
	}
	return value.Array(items...)
}

func stats(s TensorStats) value.Value {
	return value.Object(
		value.Field("mean", value.Float(s.Mean)),
		value.Field("std", value.Float(s.Std)),
		value.Field("min", value.Float(s.Min)),
		value.Field("max", value.Float(s.Max)),
		value.Field("shape", shape(s.Shape)),
		value.Field("dtype", value.String(s.Dtype)),
		value.Field("element_count", value.Int(s.ElementCount)),
	)
}
