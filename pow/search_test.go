// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// smallDag builds a cache/DAG pair far smaller than any real epoch's, for
// fast tests. The mix-search kernel's correctness doesn't depend on dataset
// size, only on nDag being consistent between the cache source and the
// materialized DAG being compared against.
func smallDag(t *testing.T) (*Cache, *Dag) {
	t.Helper()
	cache := GenerateCache(Seed(0), 32)
	dag := GenerateDag(cache, 64)
	return cache, dag
}

func zeroHeader() *Header {
	var prev, merkle [32]byte
	return NewHeader(prev, merkle, 0, 0)
}

func TestMixHashDeterministic(t *testing.T) {
	_, dag := smallDag(t)
	h := zeroHeader()

	a := MixHash(h, 42, dag)
	b := MixHash(h, 42, dag)
	require.Equal(t, a, b)
}

func TestMixHashNonceSensitive(t *testing.T) {
	_, dag := smallDag(t)
	h := zeroHeader()

	require.NotEqual(t, MixHash(h, 0, dag), MixHash(h, 1, dag))
}

func TestMaxTargetAlwaysAccepted(t *testing.T) {
	// Scenario 1: epoch 0, all-zero header, max target, nonce 0 must be
	// accepted (spec §8).
	_, dag := smallDag(t)
	h := zeroHeader()
	require.True(t, Passes(h, 0, dag, ^uint64(0)))
}

func TestZeroTargetNeverAccepted(t *testing.T) {
	// Scenario 2: epoch 0, all-zero header, zero target, nonces 0..999
	// must yield zero acceptances (spec §8).
	_, dag := smallDag(t)
	h := zeroHeader()
	for nonce := uint64(0); nonce < 1000; nonce++ {
		require.False(t, Passes(h, nonce, dag, 0))
	}
}

func TestCacheBackedSourceMatchesMaterializedDag(t *testing.T) {
	cache, dag := smallDag(t)
	h := zeroHeader()
	src := NewCacheDagSource(cache, dag.Len())

	for nonce := uint64(0); nonce < 64; nonce++ {
		require.Equal(t, MixHash(h, nonce, dag), MixHash(h, nonce, src),
			"nonce %d", nonce)
	}
}

func TestAcceptedSetMatchesBetweenMaterializedAndCacheBacked(t *testing.T) {
	// Scenario 3 (narrowed to a small dataset and range for test speed):
	// the set of accepted nonces must match exactly between the two
	// execution paths, for any fixed target.
	cache, dag := smallDag(t)
	src := NewCacheDagSource(cache, dag.Len())

	var prev, merkle [32]byte
	for i := range prev {
		prev[i] = 0x01
		merkle[i] = 0x02
	}
	h := NewHeader(prev, merkle, 0x12345678, 0x1d00ffff)

	const target = uint64(0x0000ffffffffffff)
	for nonce := uint64(0); nonce < 2000; nonce++ {
		require.Equal(t,
			Passes(h, nonce, dag, target),
			Passes(h, nonce, src, target),
			"nonce %d", nonce)
	}
}
