// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/diffai/internal/options"
	"github.com/tfctl/diffai/internal/result"
	"github.com/tfctl/diffai/internal/value"
)

// NoDifferences is the diffai text for an empty result set.
const NoDifferences = "No differences found."

// Line markers used by the diffai text format.
const (
	MarkAdded   = "+"
	MarkRemoved = "-"
	MarkChanged = "~"
	MarkWarning = "!"
)

type settings struct {
	color   bool
	palette *Palette
}

// Option tunes Render.
type Option func(*settings)

// WithColor enables lipgloss styling of diffai text lines.
func WithColor(on bool) Option {
	return func(s *settings) { s.color = on }
}

// WithPalette overrides the colors used when color is enabled.
func WithPalette(p Palette) Option {
	return func(s *settings) { s.palette = &p }
}

// Render formats results in the given format. JSON and YAML emit the encoded
// records; diffai emits one line per result.
func Render(results []result.DiffResult, format options.OutputFormat, opts ...Option) (string, error) {
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}

	switch format {
	case options.FormatJSON:
		out, err := json.MarshalIndent(result.EncodeAll(results), "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to render json: %w", err)
		}
		return string(out), nil
	case options.FormatYAML:
		hosts := make([]any, len(results))
		for i, r := range results {
			hosts[i] = result.ToHost(r)
		}
		out, err := yaml.Marshal(hosts)
		if err != nil {
			return "", fmt.Errorf("failed to render yaml: %w", err)
		}
		return strings.TrimSuffix(string(out), "\n"), nil
	case options.FormatDiffai:
		return renderText(results, s), nil
	}

	return "", &options.OptionError{Kind: options.ErrInvalidOutputFormat, Value: format.String()}
}

func renderText(results []result.DiffResult, s settings) string {
	if len(results) == 0 {
		return NoDifferences
	}

	var styles map[string]lipgloss.Style
	if s.color {
		p := s.palette
		if p == nil {
			loaded := LoadPalette()
			p = &loaded
		}
		styles = p.styles()
	}

	lines := make([]string, len(results))
	for i, r := range results {
		mark, body := Describe(r)
		line := fmt.Sprintf("%s %s: %s", mark, displayPath(r.Location()), body)
		if style, ok := styles[mark]; ok {
			line = style.Render(line)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// Describe returns the marker and the text following the path for one result.
func Describe(r result.DiffResult) (string, string) {
	switch r := r.(type) {
	case result.Added:
		return MarkAdded, compact(r.Value)
	case result.Removed:
		return MarkRemoved, compact(r.Value)
	case result.Modified:
		return MarkChanged, compact(r.OldValue) + " -> " + compact(r.NewValue)
	case result.TypeChanged:
		return MarkWarning, fmt.Sprintf("%s (%s) -> %s (%s)",
			compact(r.OldValue), r.OldValue.Kind(), compact(r.NewValue), r.NewValue.Kind())
	case result.TensorShapeChanged:
		return MarkChanged, "shape " + shape(r.OldShape) + " -> " + shape(r.NewShape)
	case result.TensorStatsChanged:
		return MarkChanged, fmt.Sprintf("stats mean %s -> %s, std %s -> %s (%s elements)",
			num(r.OldStats.Mean), num(r.NewStats.Mean),
			num(r.OldStats.Std), num(r.NewStats.Std),
			humanize.Comma(r.NewStats.ElementCount))
	case result.TensorDataChanged:
		return MarkChanged, "data changed, mean " + num(r.OldMean) + " -> " + num(r.NewMean)
	case result.ModelArchitectureChanged:
		return MarkChanged, "architecture " + r.OldArchitecture + " -> " + r.NewArchitecture
	case result.WeightSignificantChange:
		return MarkWarning, "significant weight change, magnitude " + num(r.ChangeMagnitude)
	case result.ActivationFunctionChanged:
		return MarkChanged, "activation " + r.OldActivation + " -> " + r.NewActivation
	case result.LearningRateChanged:
		return MarkChanged, "learning rate " + num(r.OldLearningRate) + " -> " + num(r.NewLearningRate)
	case result.OptimizerChanged:
		return MarkChanged, "optimizer " + r.OldOptimizer + " -> " + r.NewOptimizer
	case result.LossChange:
		return MarkChanged, "loss " + num(r.OldLoss) + " -> " + num(r.NewLoss)
	case result.AccuracyChange:
		return MarkChanged, "accuracy " + num(r.OldAccuracy) + " -> " + num(r.NewAccuracy)
	case result.ModelVersionChanged:
		return MarkChanged, "version " + r.OldVersion + " -> " + r.NewVersion
	}
	return MarkChanged, string(r.Kind())
}

func displayPath(p string) string {
	if p == "" {
		return "(root)"
	}
	return p
}

func compact(v value.Value) string {
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", value.Lift(v))
	}
	return string(out)
}

func num(f float64) string {
	return value.FormatFloat(f)
}

func shape(dims []int64) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = fmt.Sprint(d)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
