// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"context"
	"errors"
	"fmt"

	"github.com/tfctl/diffai/internal/differ"
	"github.com/tfctl/diffai/internal/loader"
	"github.com/tfctl/diffai/internal/log"
	"github.com/tfctl/diffai/internal/options"
	"github.com/tfctl/diffai/internal/output"
	"github.com/tfctl/diffai/internal/result"
	"github.com/tfctl/diffai/internal/value"
	"github.com/tfctl/diffai/internal/version"
)

// Version identifies the boundary API release.
const Version = version.Number

// ErrDiffai matches, via errors.Is, every error returned by this package.
var ErrDiffai = errors.New("diffai error")

// Error wraps a failure from an entry point. Its message and chain are those
// of the wrapped error, so the specific kinds still match with errors.Is.
type Error struct {
	Err error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrDiffai }

func wrap(err error) error {
	var de *Error
	if err == nil || errors.As(err, &de) {
		return err
	}
	return &Error{Err: err}
}

// Diff compares two host values. cfg may be nil. The returned records are
// *value.Map values in diff order.
func Diff(oldValue, newValue any, cfg map[string]any) ([]any, error) {
	opts, err := options.Build(cfg)
	if err != nil {
		return nil, wrap(err)
	}

	results, err := Compare(oldValue, newValue, opts)
	if err != nil {
		return nil, err
	}
	return toHost(results), nil
}

// DiffPaths compares two files, directories or s3:// URIs. File contents are
// parsed by the loader and never pass through Lower.
func DiffPaths(ctx context.Context, oldPath, newPath string, cfg map[string]any, lopts ...loader.Option) ([]any, error) {
	opts, err := options.Build(cfg)
	if err != nil {
		return nil, wrap(err)
	}

	results, err := ComparePaths(ctx, oldPath, newPath, opts, lopts...)
	if err != nil {
		return nil, err
	}
	return toHost(results), nil
}

// DiffFromFiles is DiffPaths.
func DiffFromFiles(ctx context.Context, oldPath, newPath string, cfg map[string]any, lopts ...loader.Option) ([]any, error) {
	return DiffPaths(ctx, oldPath, newPath, cfg, lopts...)
}

// FormatOutput decodes host records and renders them in format.
func FormatOutput(records []any, format string) (string, error) {
	results := make([]result.DiffResult, 0, len(records))
	for i, rec := range records {
		r, err := result.FromHost(rec)
		if err != nil {
			log.Debugf("decode record %d: %v", i, err)
			return "", wrap(err)
		}
		results = append(results, r)
	}

	f, err := options.ParseFormat(format)
	if err != nil {
		return "", wrap(err)
	}

	out, err := output.Render(results, f)
	if err != nil {
		return "", wrap(fmt.Errorf("format error: %w", err))
	}
	return out, nil
}

// Compare is Diff without the host encoding of the results.
func Compare(oldValue, newValue any, opts options.DiffOptions) ([]result.DiffResult, error) {
	oldV, err := value.Lower(oldValue)
	if err != nil {
		return nil, wrap(err)
	}
	newV, err := value.Lower(newValue)
	if err != nil {
		return nil, wrap(err)
	}

	results, err := differ.Compare(oldV, newV, opts)
	if err != nil {
		return nil, wrap(fmt.Errorf("diff error: %w", err))
	}
	log.Debugf("compare: %d results", len(results))
	return results, nil
}

// ComparePaths is DiffPaths without the host encoding of the results.
func ComparePaths(ctx context.Context, oldPath, newPath string, opts options.DiffOptions, lopts ...loader.Option) ([]result.DiffResult, error) {
	oldV, newV, err := LoadPair(ctx, oldPath, newPath, lopts...)
	if err != nil {
		return nil, wrap(err)
	}

	results, err := differ.Compare(oldV, newV, opts)
	if err != nil {
		return nil, wrap(fmt.Errorf("diff error: %w", err))
	}
	log.Debugf("compare paths %s %s: %d results", oldPath, newPath, len(results))
	return results, nil
}

// LoadPair loads both sides with one loader so an S3 client is shared.
func LoadPair(ctx context.Context, oldPath, newPath string, lopts ...loader.Option) (value.Value, value.Value, error) {
	l := loader.New(lopts...)

	oldV, err := l.Load(ctx, oldPath)
	if err != nil {
		return value.Value{}, value.Value{}, wrap(fmt.Errorf("diff error: %w", err))
	}
	newV, err := l.Load(ctx, newPath)
	if err != nil {
		return value.Value{}, value.Value{}, wrap(fmt.Errorf("diff error: %w", err))
	}
	return oldV, newV, nil
}

func toHost(results []result.DiffResult) []any {
	out := make([]any, len(results))
	for i, r := range results {
		out[i] = result.ToHost(r)
	}
	return out
}
