// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package result

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField    = errors.New("missing field")
	ErrFieldType       = errors.New("invalid field type")
	ErrInvalidDiffType = errors.New("invalid diff type")
	ErrNotObject       = errors.New("diff result is not an object")
)

// CodecError describes a failed Decode. Kind is one of the sentinel errors
// above and is what errors.Is matches against.
type CodecError struct {
	Kind error
	Name string
}

func (e *CodecError) Error() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case ErrMissingField:
		return fmt.Sprintf("missing '%s' field", e.Name)
	case ErrFieldType:
		return fmt.Sprintf("'%s' field must be a string", e.Name)
	case ErrInvalidDiffType:
		return fmt.Sprintf("invalid diff type: %s", e.Name)
	}
	if e.Name == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Name)
}

func (e *CodecError) Unwrap() error { return e.Kind }

func missingField(name string) error {
	return &CodecError{Kind: ErrMissingField, Name: name}
}

func fieldType(name string) error {
	return &CodecError{Kind: ErrFieldType, Name: name}
}

func invalidDiffType(name string) error {
	return &CodecError{Kind: ErrInvalidDiffType, Name: name}
}
