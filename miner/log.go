// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miner

import "github.com/decred/slog"

var log = slog.Disabled

// UseLogger sets the logger used by package miner.
func UseLogger(logger slog.Logger) {
	log = logger
}
