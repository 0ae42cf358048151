// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package diffai is the boundary layer between untyped Go values and the diff
// core.
//
// Diff lowers two host values, builds options from a configuration map, runs
// the comparison and lifts every result back into a host record whose "type"
// and "path" members come first. DiffPaths does the same for two paths, which
// the loader reads and parses itself. FormatOutput reverses the trip: it
// decodes host records and renders them as diffai text, JSON or YAML. Only
// Added, Removed, Modified and TypeChanged records can be decoded; the other
// kinds fail with result.ErrInvalidDiffType.
//
// Compare and ComparePaths are the typed variants used by the command line.
package diffai
