// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other diffai packages to avoid import cycles.

package version

import "runtime/debug"

// Number is the release of the diffai boundary API.
const Number = "0.4.0"

// Version is the module version stamped by the Go toolchain, or Number for
// development builds.
var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Number
}()
