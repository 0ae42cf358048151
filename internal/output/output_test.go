// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/diffai/internal/config"
	"github.com/tfctl/diffai/internal/options"
	"github.com/tfctl/diffai/internal/result"
	"github.com/tfctl/diffai/internal/value"
)

func sampleResults() []result.DiffResult {
	return []result.DiffResult{
		result.Modified{Path: "b", OldValue: value.Int(1), NewValue: value.Int(2)},
		result.Added{Path: "a", Value: value.String("x")},
		result.LearningRateChanged{Path: "optim.lr", OldLearningRate: 0.01, NewLearningRate: 0.001},
	}
}

func TestRenderJSON(t *testing.T) {
	out, err := Render(sampleResults(), options.FormatJSON)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "Modified", decoded[0]["type"])
	assert.Equal(t, "a", decoded[1]["path"])
	assert.Equal(t, "x", decoded[1]["value"])
	assert.Contains(t, out, `"old_learning_rate": 0.01`)
	assert.True(t, strings.Index(out, `"type"`) < strings.Index(out, `"path"`))
}

func TestRenderJSONEmpty(t *testing.T) {
	out, err := Render(nil, options.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestRenderYAML(t *testing.T) {
	out, err := Render(sampleResults()[:2], options.FormatYAML)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Added", decoded[1]["type"])
	assert.True(t, strings.HasPrefix(out, "- type: Modified\n  path: b\n"))
}

func TestRenderText(t *testing.T) {
	tests := []struct {
		name string
		in   result.DiffResult
		want string
	}{
		{name: "added", in: result.Added{Path: "a", Value: value.Int(1)}, want: "+ a: 1"},
		{name: "removed", in: result.Removed{Path: "[2]", Value: value.Int(3)}, want: "- [2]: 3"},
		{name: "modified", in: result.Modified{Path: "x.y", OldValue: value.Float(1.5), NewValue: value.Float(2)}, want: "~ x.y: 1.5 -> 2.0"},
		{name: "root", in: result.Modified{OldValue: value.Int(1), NewValue: value.Int(2)}, want: "~ (root): 1 -> 2"},
		{name: "type changed", in: result.TypeChanged{Path: "k", OldValue: value.Int(1), NewValue: value.String("1")}, want: `! k: 1 (number) -> "1" (string)`},
		{name: "shape", in: result.TensorShapeChanged{Path: "w", OldShape: []int64{3, 4}, NewShape: []int64{4, 4}}, want: "~ w: shape [3, 4] -> [4, 4]"},
		{
			name: "stats",
			in: result.TensorStatsChanged{
				Path:     "w",
				OldStats: result.TensorStats{Mean: 0.5, Std: 1, ElementCount: 12288},
				NewStats: result.TensorStats{Mean: 0.25, Std: 1, ElementCount: 12288},
			},
			want: "~ w: stats mean 0.5 -> 0.25, std 1.0 -> 1.0 (12,288 elements)",
		},
		{name: "data", in: result.TensorDataChanged{Path: "w", OldMean: 1, NewMean: 1}, want: "~ w: data changed, mean 1.0 -> 1.0"},
		{name: "architecture", in: result.ModelArchitectureChanged{Path: "arch", OldArchitecture: "resnet", NewArchitecture: "vit"}, want: "~ arch: architecture resnet -> vit"},
		{name: "weight", in: result.WeightSignificantChange{Path: "w", ChangeMagnitude: 0.25}, want: "! w: significant weight change, magnitude 0.25"},
		{name: "activation", in: result.ActivationFunctionChanged{Path: "act", OldActivation: "relu", NewActivation: "gelu"}, want: "~ act: activation relu -> gelu"},
		{name: "lr", in: result.LearningRateChanged{Path: "lr", OldLearningRate: 0.01, NewLearningRate: 0.001}, want: "~ lr: learning rate 0.01 -> 0.001"},
		{name: "optimizer", in: result.OptimizerChanged{Path: "opt", OldOptimizer: "adam", NewOptimizer: "sgd"}, want: "~ opt: optimizer adam -> sgd"},
		{name: "loss", in: result.LossChange{Path: "loss", OldLoss: 0.5, NewLoss: 0.4}, want: "~ loss: loss 0.5 -> 0.4"},
		{name: "accuracy", in: result.AccuracyChange{Path: "acc", OldAccuracy: 0.9, NewAccuracy: 0.95}, want: "~ acc: accuracy 0.9 -> 0.95"},
		{name: "version", in: result.ModelVersionChanged{Path: "version", OldVersion: "1.0", NewVersion: "1.1"}, want: "~ version: version 1.0 -> 1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render([]result.DiffResult{tt.in}, options.FormatDiffai)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRenderTextEmptyAndMultiLine(t *testing.T) {
	out, err := Render(nil, options.FormatDiffai)
	require.NoError(t, err)
	assert.Equal(t, NoDifferences, out)

	out, err = Render(sampleResults(), options.FormatDiffai)
	require.NoError(t, err)
	assert.Equal(t, []string{"~ b: 1 -> 2", `+ a: "x"`, "~ optim.lr: learning rate 0.01 -> 0.001"}, strings.Split(out, "\n"))
}

func TestRenderColor(t *testing.T) {
	p := DefaultPalette(true)
	out, err := Render(sampleResults(), options.FormatDiffai, WithColor(true), WithPalette(p))
	require.NoError(t, err)
	assert.Contains(t, out, "b: 1 -> 2")
	assert.Len(t, strings.Split(out, "\n"), 3)
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(sampleResults(), options.OutputFormat(42))
	assert.ErrorIs(t, err, options.ErrInvalidOutputFormat)
	assert.EqualError(t, err, "invalid output format: unknown")
}

func TestSortResults(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []string
	}{
		{name: "empty keeps order", spec: "", want: []string{"b", "a", "optim.lr"}},
		{name: "path", spec: "path", want: []string{"a", "b", "optim.lr"}},
		{name: "path descending", spec: "-path", want: []string{"optim.lr", "b", "a"}},
		{name: "type then path", spec: "type,path", want: []string{"a", "optim.lr", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := sampleResults()
			SortResults(rs, tt.spec)
			var got []string
			for _, r := range rs {
				got = append(got, r.Location())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortResultsNumeric(t *testing.T) {
	rs := []result.DiffResult{
		result.Modified{Path: "x", OldValue: value.Int(10), NewValue: value.Int(1)},
		result.Modified{Path: "y", OldValue: value.Int(9), NewValue: value.Int(2)},
	}
	SortResults(rs, "old_value")
	assert.Equal(t, "y", rs[0].Location())
}

func TestSummary(t *testing.T) {
	rs := append(sampleResults(), result.Added{Path: "c", Value: value.Null()})
	out := Summary(rs, false, Palette{})

	assert.Contains(t, out, "KIND")
	assert.Regexp(t, `Added\s+2`, out)
	assert.Regexp(t, `Modified\s+1`, out)
	assert.Regexp(t, `LearningRateChanged\s+1`, out)
	assert.Regexp(t, `Total\s+4`, out)
	assert.NotContains(t, out, "Removed")
	assert.True(t, strings.Index(out, "Added") < strings.Index(out, "Modified"))
}

func TestResolvePalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diffai.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colors:\n  added: \"#123456\"\n"), 0o600))
	_, err := config.Load(path)
	require.NoError(t, err)
	defer func() { config.Config = config.Type{} }()

	defaults := DefaultPalette(false)
	p := resolvePalette("colors", defaults)
	assert.Equal(t, lipgloss.Color("#123456"), p.Added)
	assert.Equal(t, defaults.Removed, p.Removed)
}
