// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders diff results as diffai text, JSON or YAML, and
// provides sorting and a per-kind summary table used by the commands.
package output
