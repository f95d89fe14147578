// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pow implements the AdaptivePow hash kernel: the Keccak-f[800]/
// FNV1a/KISS99 primitives, epoch and seed derivation, cache and DAG
// construction, the per-nonce mix-search kernel, and the CPU verifier that
// must agree bit-exactly with any GPU implementation of the same algorithm.
package pow
