// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for diffai's user
// configuration. The configuration is a YAML document named by DIFFAI_CFG_FILE
// or located in the user's configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/diffai.yaml or $HOME/.config/diffai.yaml
//   - Windows: %APPDATA%/diffai.yaml
//
// A typical file sets comparison defaults, terminal colors and named
// argument sets:
//
//	options:
//	  epsilon: 0.0001
//	  ignore_keys_regex: "^_"
//	colors:
//	  added: "#00c800"
//	diff:
//	  ckpt: ["--epsilon", "1e-6", "--output", "json"]
package config
