// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package loader reads files, directories and s3:// objects into canonical
// values for comparison.
//
// Structured formats (JSON, YAML, HCL) keep their document order. Binary
// weight formats (NumPy .npy, safetensors) become tensor summary objects, so
// the diff core sees shapes, dtypes and statistics rather than raw payloads.
// A directory becomes an object keyed by the slash-separated relative path of
// every loadable file beneath it.
package loader
