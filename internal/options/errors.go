// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package options

import (
	"errors"
	"fmt"
)

var (
	ErrOptionType          = errors.New("invalid option type")
	ErrInvalidRegex        = errors.New("invalid regex")
	ErrInvalidOutputFormat = errors.New("invalid output format")
)

// OptionError reports a configuration value that could not be used. Kind is
// one of the sentinels above.
type OptionError struct {
	Kind  error
	Key   string
	Value string
	Cause error
}

func (e *OptionError) Error() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case ErrInvalidRegex:
		return fmt.Sprintf("invalid regex '%s': %v", e.Value, e.Cause)
	case ErrInvalidOutputFormat:
		return fmt.Sprintf("invalid output format: %s", e.Value)
	case ErrOptionType:
		if e.Cause != nil {
			return fmt.Sprintf("option '%s' must be a %s: %v", e.Key, e.Value, e.Cause)
		}
		return fmt.Sprintf("option '%s' must be a %s", e.Key, e.Value)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Key)
}

func (e *OptionError) Unwrap() error { return e.Kind }
