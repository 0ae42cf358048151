// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package result

import "github.com/tfctl/diffai/internal/value"

// Kind is the discriminant written to the "type" field of an encoded result.
type Kind string

const (
	KindAdded                     Kind = "Added"
	KindRemoved                   Kind = "Removed"
	KindModified                  Kind = "Modified"
	KindTypeChanged               Kind = "TypeChanged"
	KindTensorShapeChanged        Kind = "TensorShapeChanged"
	KindTensorStatsChanged        Kind = "TensorStatsChanged"
	KindTensorDataChanged         Kind = "TensorDataChanged"
	KindModelArchitectureChanged  Kind = "ModelArchitectureChanged"
	KindWeightSignificantChange   Kind = "WeightSignificantChange"
	KindActivationFunctionChanged Kind = "ActivationFunctionChanged"
	KindLearningRateChanged       Kind = "LearningRateChanged"
	KindOptimizerChanged          Kind = "OptimizerChanged"
	KindLossChange                Kind = "LossChange"
	KindAccuracyChange            Kind = "AccuracyChange"
	KindModelVersionChanged       Kind = "ModelVersionChanged"
)

// Kinds lists every variant in declaration order.
var Kinds = []Kind{
	KindAdded, KindRemoved, KindModified, KindTypeChanged,
	KindTensorShapeChanged, KindTensorStatsChanged, KindTensorDataChanged,
	KindModelArchitectureChanged, KindWeightSignificantChange,
	KindActivationFunctionChanged, KindLearningRateChanged, KindOptimizerChanged,
	KindLossChange, KindAccuracyChange, KindModelVersionChanged,
}

// DiffResult is one change reported by the diff core. The set of
// implementations is closed to this package.
type DiffResult interface {
	Kind() Kind
	// Location is the dotted/bracketed path of the change.
	Location() string
	sealed()
}

// TensorStats is a summary snapshot of one tensor.
type TensorStats struct {
	Mean         float64
	Std          float64
	Min          float64
	Max          float64
	Shape        []int64
	Dtype        string
	ElementCount int64
}

type Added struct {
	Path  string
	Value value.Value
}

type Removed struct {
	Path  string
	Value value.Value
}

type Modified struct {
	Path     string
	OldValue value.Value
	NewValue value.Value
}

type TypeChanged struct {
	Path     string
	OldValue value.Value
	NewValue value.Value
}

type TensorShapeChanged struct {
	Path     string
	OldShape []int64
	NewShape []int64
}

type TensorStatsChanged struct {
	Path     string
	OldStats TensorStats
	NewStats TensorStats
}

type TensorDataChanged struct {
	Path    string
	OldMean float64
	NewMean float64
}

type ModelArchitectureChanged struct {
	Path            string
	OldArchitecture string
	NewArchitecture string
}

type WeightSignificantChange struct {
	Path            string
	ChangeMagnitude float64
}

type ActivationFunctionChanged struct {
	Path          string
	OldActivation string
	NewActivation string
}

type LearningRateChanged struct {
	Path            string
	OldLearningRate float64
	NewLearningRate float64
}

type OptimizerChanged struct {
	Path         string
	OldOptimizer string
	NewOptimizer string
}

type LossChange struct {
	Path    string
	OldLoss float64
	NewLoss float64
}

type AccuracyChange struct {
	Path        string
	OldAccuracy float64
	NewAccuracy float64
}

type ModelVersionChanged struct {
	Path       string
	OldVersion string
	NewVersion string
}

func (Added) Kind() Kind                     { return KindAdded }
func (Removed) Kind() Kind                   { return KindRemoved }
func (Modified) Kind() Kind                  { return KindModified }
func (TypeChanged) Kind() Kind               { return KindTypeChanged }
func (TensorShapeChanged) Kind() Kind        { return KindTensorShapeChanged }
func (TensorStatsChanged) Kind() Kind        { return KindTensorStatsChanged }
func (TensorDataChanged) Kind() Kind         { return KindTensorDataChanged }
func (ModelArchitectureChanged) Kind() Kind  { return KindModelArchitectureChanged }
func (WeightSignificantChange) Kind() Kind   { return KindWeightSignificantChange }
func (ActivationFunctionChanged) Kind() Kind { return KindActivationFunctionChanged }
func (LearningRateChanged) Kind() Kind       { return KindLearningRateChanged }
func (OptimizerChanged) Kind() Kind          { return KindOptimizerChanged }
func (LossChange) Kind() Kind                { return KindLossChange }
func (AccuracyChange) Kind() Kind            { return KindAccuracyChange }
func (ModelVersionChanged) Kind() Kind       { return KindModelVersionChanged }

func (r Added) Location() string                     { return r.Path }
func (r Removed) Location() string                   { return r.Path }
func (r Modified) Location() string                  { return r.Path }
func (r TypeChanged) Location() string               { return r.Path }
func (r TensorShapeChanged) Location() string        { return r.Path }
func (r TensorStatsChanged) Location() string        { return r.Path }
func (r TensorDataChanged) Location() string         { return r.Path }
func (r ModelArchitectureChanged) Location() string  { return r.Path }
func (r WeightSignificantChange) Location() string   { return r.Path }
func (r ActivationFunctionChanged) Location() string { return r.Path }
func (r LearningRateChanged) Location() string       { return r.Path }
func (r OptimizerChanged) Location() string          { return r.Path }
func (r LossChange) Location() string                { return r.Path }
func (r AccuracyChange) Location() string            { return r.Path }
func (r ModelVersionChanged) Location() string       { return r.Path }

func (Added) sealed()                     {}
func (Removed) sealed()                   {}
func (Modified) sealed()                  {}
func (TypeChanged) sealed()               {}
func (TensorShapeChanged) sealed()        {}
func (TensorStatsChanged) sealed()        {}
func (TensorDataChanged) sealed()         {}
func (ModelArchitectureChanged) sealed()  {}
func (WeightSignificantChange) sealed()   {}
func (ActivationFunctionChanged) sealed() {}
func (LearningRateChanged) sealed()       {}
func (OptimizerChanged) sealed()          {}
func (LossChange) sealed()                {}
func (AccuracyChange) sealed()            {}
func (ModelVersionChanged) sealed()       {}
