// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

// Verify deterministically recomputes the mix-search kernel on the CPU and
// reports whether the nonce's hash passes the target (spec §4.7). It is the
// required coequal implementation of the GPU search kernel: nothing may be
// accepted on a GPU's say-so alone. dag may be a fully materialized *Dag or
// a cache-backed DagSource (see NewCacheDagSource) — both reproduce
// bit-identical results.
func Verify(header *Header, nonce, target uint64, dag DagSource) bool {
	return Passes(header, nonce, dag, target)
}

// VerifyWithCache verifies a nonce by reconstructing DAG items on demand
// from the cache, rather than requiring the full DAG to be resident (spec
// §4.7). nDagItems must match the DAG size of the epoch the cache belongs
// to (see DagItemCount). Each touched item costs 256 cache-indexed FNV1a
// passes, so this path trades CPU time for memory.
func VerifyWithCache(header *Header, nonce, target uint64, cache *Cache, nDagItems uint64) bool {
	dag := NewCacheDagSource(cache, nDagItems)
	return Verify(header, nonce, target, dag)
}
