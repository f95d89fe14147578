// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import "github.com/decred/slog"

// log is the package-level logger, disabled by default following the
// decred/slog convention used throughout the dcrd stack: a library package
// never decides where its logs go, only that it has something to say.
var log = slog.Disabled

// UseLogger sets the logger used by package pow. Callers that embed this
// package into a larger application (such as package miner) should call
// this once during initialization.
func UseLogger(logger slog.Logger) {
	log = logger
}
