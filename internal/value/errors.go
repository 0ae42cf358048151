// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package value

import "errors"

var (
	// ErrUnsupportedType is returned by Lower for any host value outside the
	// six supported shapes.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidJSON is returned by ParseJSON for malformed input.
	ErrInvalidJSON = errors.New("invalid JSON")
)
