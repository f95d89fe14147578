// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import "encoding/binary"

// Cache is the small, seed-derived dataset the DAG is built from. It is an
// ordered sequence of n_cache items, each a 64-byte block viewed as 16
// little-endian 32-bit words (spec §3). Cache is owned exclusively by
// whichever goroutine is building the DAG for its epoch and is read-only
// once handed to DAG generation.
type Cache struct {
	words []uint32 // len == nItems*16
	n     uint64
}

// Item returns the 16 words of cache item i.
func (c *Cache) Item(i uint64) []uint32 {
	return c.words[i*16 : i*16+16]
}

// Len returns the number of 64-byte items in the cache.
func (c *Cache) Len() uint64 {
	return c.n
}

// GenerateCache deterministically builds the cache for an epoch from its
// seed (spec §4.3). Item 0 is derived directly from the seed; every
// subsequent item is produced by running Keccak-f[800] over the previous
// item, so construction is strictly sequential.
func GenerateCache(seed [SeedSize]byte, nItems uint64) *Cache {
	c := &Cache{words: make([]uint32, nItems*16), n: nItems}
	if nItems == 0 {
		return c
	}

	var seedWords [8]uint32
	for i := range seedWords {
		seedWords[i] = binary.LittleEndian.Uint32(seed[i*4 : i*4+4])
	}

	item0 := c.words[0:16]
	copy(item0[0:8], seedWords[:])
	for i := 0; i < 8; i++ {
		item0[8+i] = seedWords[i] ^ 0xFFFFFFFF
	}

	for i := uint64(1); i < nItems; i++ {
		prev := c.words[(i-1)*16 : (i-1)*16+16]

		var state [25]uint32
		copy(state[0:16], prev)
		keccakF800(&state)

		copy(c.words[i*16:i*16+16], state[0:16])
	}

	return c
}
