// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"math"
	"strings"

	"github.com/tfctl/diffai/internal/result"
	"github.com/tfctl/diffai/internal/tensor"
	"github.com/tfctl/diffai/internal/value"
)

// scalar reports a changed scalar of matching kind, classified by key.
func (c *comparer) scalar(path, key string, a, b value.Value) {
	k := strings.ToLower(key)

	if af, ok := a.AsFloat(); ok {
		bf, _ := b.AsFloat()
		switch {
		case k == "learning_rate" || k == "lr":
			c.emit(result.LearningRateChanged{Path: path, OldLearningRate: af, NewLearningRate: bf})
			return
		case k == "loss" || strings.HasSuffix(k, "_loss"):
			c.emit(result.LossChange{Path: path, OldLoss: af, NewLoss: bf})
			return
		case k == "accuracy" || k == "acc" || strings.HasSuffix(k, "_accuracy"):
			c.emit(result.AccuracyChange{Path: path, OldAccuracy: af, NewAccuracy: bf})
			return
		}
	}

	if as, ok := a.AsString(); ok {
		bs, _ := b.AsString()
		switch k {
		case "optimizer":
			c.emit(result.OptimizerChanged{Path: path, OldOptimizer: as, NewOptimizer: bs})
			return
		case "activation", "activation_function":
			c.emit(result.ActivationFunctionChanged{Path: path, OldActivation: as, NewActivation: bs})
			return
		case "architecture", "model_type":
			c.emit(result.ModelArchitectureChanged{Path: path, OldArchitecture: as, NewArchitecture: bs})
			return
		case "version", "model_version":
			c.emit(result.ModelVersionChanged{Path: path, OldVersion: as, NewVersion: bs})
			return
		}
	}

	c.emit(result.Modified{Path: path, OldValue: a, NewValue: b})
}

// tensor compares two recognized tensors. A shape change hides any stats
// change since the payloads are no longer comparable element by element.
func (c *comparer) tensor(path string, a, b tensor.Tensor) {
	if !tensor.ShapeEqual(a.Stats.Shape, b.Stats.Shape) {
		c.emit(result.TensorShapeChanged{Path: path, OldShape: a.Stats.Shape, NewShape: b.Stats.Shape})
		return
	}

	if !c.statsEqual(a.Stats, b.Stats) {
		c.emit(result.TensorStatsChanged{Path: path, OldStats: a.Stats, NewStats: b.Stats})
		magnitude := math.Abs(b.Stats.Mean-a.Stats.Mean) + math.Abs(b.Stats.Std-a.Stats.Std)
		if magnitude > SignificantChange {
			c.emit(result.WeightSignificantChange{Path: path, ChangeMagnitude: magnitude})
		}
		return
	}

	if a.Data != nil && b.Data != nil && !c.dataEqual(a.Data, b.Data) {
		c.emit(result.TensorDataChanged{Path: path, OldMean: a.Stats.Mean, NewMean: b.Stats.Mean})
	}
}

func (c *comparer) statsEqual(a, b result.TensorStats) bool {
	return a.Dtype == b.Dtype &&
		a.ElementCount == b.ElementCount &&
		c.floatEqual(a.Mean, b.Mean) &&
		c.floatEqual(a.Std, b.Std) &&
		c.floatEqual(a.Min, b.Min) &&
		c.floatEqual(a.Max, b.Max)
}

func (c *comparer) dataEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !c.floatEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
