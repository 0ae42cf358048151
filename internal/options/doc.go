// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package options builds typed DiffOptions from a loosely keyed configuration
// map.
//
// Recognized keys are epsilon, array_id_key, ignore_keys_regex, path_filter
// and output_format. Anything else is ignored so newer callers can pass keys
// older builds do not know about. A recognized key holding the wrong type is
// an error naming that key.
package options
