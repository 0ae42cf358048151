// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller navigates encoded diff records with dotted field paths such
// as "new_stats.shape[0]" so filters can reach nested payload values.
package driller
