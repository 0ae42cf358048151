// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ is the diff core. It walks two canonical values in step and
// reports every structural change as a result.DiffResult, upgrading plain
// modifications to ML-aware kinds where the key name or tensor shape says
// what the value means.
//
// Paths read like accessors: "a.b" for object members, "a[2]" for array
// elements by index and "a[id=7]" for elements matched by an id key.
package differ
