// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package result defines the closed set of change kinds the diff core emits
// and the codec between those typed results and tagged records.
//
// Every record carries a "type" discriminant naming its variant and a "path"
// locating the change. Modified and TypeChanged share a payload shape, so
// the discriminant is the only way to tell them apart once a result has left
// the typed world.
//
// Encode handles all fifteen variants. Decode only rebuilds Added, Removed,
// Modified and TypeChanged; every other type name is rejected with
// ErrInvalidDiffType. Callers that round-trip rendered results back into
// typed form must expect that limitation.
package result
