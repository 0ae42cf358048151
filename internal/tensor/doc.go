// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package tensor recognizes tensor-shaped objects in canonical values and
// computes their summary statistics.
//
// A tensor object carries an integer "shape" array and a "dtype" string, plus
// either a "data" array (possibly nested) or precomputed "mean", "std", "min"
// and "max" numbers. Loaders emit the summary form for binary weight files so
// that large payloads never reach the diff core.
package tensor
