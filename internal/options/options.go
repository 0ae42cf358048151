// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package options

import (
	"regexp"

	"github.com/go-viper/mapstructure/v2"
)

// Recognized configuration keys, in processing order.
const (
	KeyEpsilon         = "epsilon"
	KeyArrayIDKey      = "array_id_key"
	KeyIgnoreKeysRegex = "ignore_keys_regex"
	KeyPathFilter      = "path_filter"
	KeyOutputFormat    = "output_format"
)

// DiffOptions tunes a comparison. A nil field means "not set". Values are
// built per call and never mutated afterwards.
type DiffOptions struct {
	Epsilon         *float64
	ArrayIDKey      *string
	IgnoreKeysRegex *regexp.Regexp
	PathFilter      *string
	OutputFormat    *OutputFormat
}

// Build reads the recognized keys out of cfg. A nil or empty cfg yields
// DiffOptions with every field unset.
func Build(cfg map[string]any) (DiffOptions, error) {
	var opts DiffOptions
	if len(cfg) == 0 {
		return opts, nil
	}

	if raw, ok := cfg[KeyEpsilon]; ok {
		var f float64
		if err := extract(KeyEpsilon, "float", raw, &f); err != nil {
			return DiffOptions{}, err
		}
		opts.Epsilon = &f
	}

	if raw, ok := cfg[KeyArrayIDKey]; ok {
		var s string
		if err := extract(KeyArrayIDKey, "string", raw, &s); err != nil {
			return DiffOptions{}, err
		}
		opts.ArrayIDKey = &s
	}

	if raw, ok := cfg[KeyIgnoreKeysRegex]; ok {
		var pattern string
		if err := extract(KeyIgnoreKeysRegex, "string", raw, &pattern); err != nil {
			return DiffOptions{}, err
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return DiffOptions{}, &OptionError{Kind: ErrInvalidRegex, Key: KeyIgnoreKeysRegex, Value: pattern, Cause: err}
		}
		opts.IgnoreKeysRegex = re
	}

	if raw, ok := cfg[KeyPathFilter]; ok {
		var s string
		if err := extract(KeyPathFilter, "string", raw, &s); err != nil {
			return DiffOptions{}, err
		}
		opts.PathFilter = &s
	}

	if raw, ok := cfg[KeyOutputFormat]; ok {
		var s string
		if err := extract(KeyOutputFormat, "string", raw, &s); err != nil {
			return DiffOptions{}, err
		}
		f, err := ParseFormat(s)
		if err != nil {
			return DiffOptions{}, err
		}
		opts.OutputFormat = &f
	}

	return opts, nil
}

// Format returns the configured output format, or FormatDiffai.
func (o DiffOptions) Format() OutputFormat {
	if o.OutputFormat == nil {
		return FormatDiffai
	}
	return *o.OutputFormat
}

// Ignored reports whether key matches IgnoreKeysRegex.
func (o DiffOptions) Ignored(key string) bool {
	return o.IgnoreKeysRegex != nil && o.IgnoreKeysRegex.MatchString(key)
}

// extract decodes one primitive without weak typing. Integers widen to float
// but strings never coerce to numbers and numbers never coerce to strings.
func extract(key, want string, raw any, out any) error {
	if raw == nil {
		return &OptionError{Kind: ErrOptionType, Key: key, Value: want}
	}
	if err := mapstructure.Decode(raw, out); err != nil {
		return &OptionError{Kind: ErrOptionType, Key: key, Value: want, Cause: err}
	}
	return nil
}
