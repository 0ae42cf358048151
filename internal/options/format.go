// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package options

import (
	"strings"
)

// OutputFormat selects the renderer.
type OutputFormat int

const (
	FormatDiffai OutputFormat = iota
	FormatJSON
	FormatYAML
)

// FormatNames lists the accepted format spellings, in enum order.
var FormatNames = []string{"diffai", "json", "yaml"}

func (f OutputFormat) String() string {
	if f < 0 || int(f) >= len(FormatNames) {
		return "unknown"
	}
	return FormatNames[f]
}

// ParseFormat maps a format name to its OutputFormat, ignoring case.
func ParseFormat(s string) (OutputFormat, error) {
	for i, name := range FormatNames {
		if strings.EqualFold(s, name) {
			return OutputFormat(i), nil
		}
	}
	return FormatDiffai, &OptionError{Kind: ErrInvalidOutputFormat, Key: "output_format", Value: s}
}
