// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

// DagLoads is the number of DAG reads performed per mix search (spec §4.5).
const DagLoads = 64

// MathOps is the number of random math operations applied per DAG load
// (spec §4.5).
const MathOps = 16

// DagSource abstracts read access to DAG items. Both a fully materialized
// *Dag and the verifier's on-demand, cache-reconstructing accessor satisfy
// it, so the mix-search kernel below is the single implementation both the
// CPU-reference search backend and the verifier run (spec §1, §4.7).
type DagSource interface {
	Len() uint64
	Item(i uint64) []uint32
}

// cacheDagSource reconstructs DAG items on demand from a cache instead of
// requiring the full dataset to be materialized (spec §4.7: "the verifier
// MAY reconstruct DAG items on demand from the cache").
type cacheDagSource struct {
	cache *Cache
	n     uint64
}

// NewCacheDagSource wraps a cache so it can stand in for a DAG of the given
// item count, recomputing an item from the cache on every Item call; results
// are not memoized.
func NewCacheDagSource(cache *Cache, nDagItems uint64) DagSource {
	return &cacheDagSource{cache: cache, n: nDagItems}
}

func (c *cacheDagSource) Len() uint64 { return c.n }

func (c *cacheDagSource) Item(i uint64) []uint32 {
	item := computeDagItem(c.cache, i)
	out := make([]uint32, 16)
	copy(out, item[:])
	return out
}

// MixHash runs the full per-nonce mix-search kernel (spec §4.5) and returns
// the high 64 bits of the finalized hash. Identical (header, nonce, dag)
// inputs always yield identical output — the kernel is pure.
func MixHash(header *Header, nonce uint64, dag DagSource) uint64 {
	// Seed state: the header's 20 words plus the nonce injected directly
	// into state[19]/state[20], deliberately overwriting whatever the
	// header carried in word 19 (spec §4.5 step 1, §9).
	var state [25]uint32
	copy(state[:HeaderWords], header.Words[:])
	state[19] = uint32(nonce)
	state[20] = uint32(nonce >> 32)
	for i := 21; i < 25; i++ {
		state[i] = 0
	}
	keccakF800(&state)

	// Mix init: broadcast the 25-word state across a 64-word mix buffer.
	var mix [64]uint32
	for k := range mix {
		mix[k] = state[k%25]
	}

	// Seed the KISS99 generator from the first four state words.
	rng := Kiss99{
		Z: Fnv1a(FNVOffset, state[0]),
	}
	rng.W = Fnv1a(rng.Z, state[1])
	rng.Jsr = Fnv1a(rng.W, state[2])
	rng.Jcong = Fnv1a(rng.Jsr, state[3])

	nDag := dag.Len()
	for round := uint32(0); round < DagLoads; round++ {
		dagIdx := uint64(Fnv1a(round^mix[round%64], mix[(round+1)%64])) % nDag
		dagData := dag.Item(dagIdx)
		for k := 0; k < 16; k++ {
			mix[k] = Fnv1a(mix[k], dagData[k])
		}

		for op := 0; op < MathOps; op++ {
			s1 := rng.Next() % 64
			s2 := rng.Next() % 64
			d := rng.Next() % 64
			opType := rng.Next()
			mix[d] = RandomOp(mix[s1], mix[s2], opType)
		}
	}

	// Compress the 64-word mix down to 8 words.
	for i := 0; i < 8; i++ {
		state[i] = mix[i*8]
		for j := 1; j < 8; j++ {
			state[i] = Fnv1a(state[i], mix[i*8+j])
		}
	}
	for i := 8; i < 25; i++ {
		state[i] = 0
	}
	keccakF800(&state)

	return HashHigh(state[0], state[1])
}

// Passes reports whether the mix-search kernel's output for (header, nonce,
// dag) is at or below target (spec §3, §4.5 step 7).
func Passes(header *Header, nonce uint64, dag DagSource, target uint64) bool {
	return TargetCheck(MixHash(header, nonce, dag), target)
}
