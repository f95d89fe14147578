// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import (
	"context"
	"runtime"
	"sync"
)

// Dag is the large, read-only dataset searched by every nonce within an
// epoch (spec §3). It is an ordered sequence of n_dag items, each a 64-byte
// block viewed as 16 little-endian 32-bit words.
type Dag struct {
	words []uint32 // len == nItems*16
	n     uint64
}

// Item returns the 16 words of DAG item i.
func (d *Dag) Item(i uint64) []uint32 {
	return d.words[i*16 : i*16+16]
}

// Len returns the number of 64-byte items in the DAG.
func (d *Dag) Len() uint64 {
	return d.n
}

// computeDagItem derives DAG item i from the cache (spec §4.4). The
// function is pure: identical (cache, i) inputs always produce identical
// output, which is what makes DAG generation safe to parallelize and to
// recompute on demand (the verifier reconstructs individual items from the
// cache rather than requiring the full DAG).
func computeDagItem(cache *Cache, i uint64) [16]uint32 {
	nCache := cache.Len()

	var mix [16]uint32
	base := (i % nCache) * 16
	copy(mix[:], cache.words[base:base+16])
	mix[0] ^= uint32(i)

	for round := uint32(0); round < 256; round++ {
		parent := uint64(Fnv1a(uint32(i)^round, mix[0])) % nCache
		item := cache.Item(parent)
		for k := 0; k < 16; k++ {
			mix[k] = Fnv1a(mix[k], item[k])
		}
	}

	return mix
}

// GenerateDag builds the full DAG for an epoch sequentially from its cache.
// Prefer GenerateDagParallel for production-sized DAGs; this variant exists
// for small caches (tests) and as the reference the parallel path must
// match bit-for-bit.
func GenerateDag(cache *Cache, nItems uint64) *Dag {
	d := &Dag{words: make([]uint32, nItems*16), n: nItems}
	for i := uint64(0); i < nItems; i++ {
		item := computeDagItem(cache, i)
		copy(d.words[i*16:i*16+16], item[:])
	}
	return d
}

// GenerateDagParallel builds the DAG in fixed-size chunks spread across a
// bounded worker pool, matching spec §5's requirement that DAG generation be
// chunked to avoid device watchdog kills and data-parallel across items. It
// is idempotent with GenerateDag: given the same cache, both produce
// byte-identical datasets.
//
// chunkItems bounds how much work a single goroutine claims at a time;
// workers bounds how many chunks run concurrently. A workers value <= 0
// defaults to GOMAXPROCS. The context may be used to cancel generation
// between chunks; partially-built DAGs from a cancelled run must be
// discarded by the caller.
func GenerateDagParallel(ctx context.Context, cache *Cache, nItems uint64, chunkItems uint64, workers int) (*Dag, error) {
	if chunkItems == 0 {
		chunkItems = nItems
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	d := &Dag{words: make([]uint32, nItems*16), n: nItems}
	log.Debugf("generating DAG: %d items, %d per chunk, %d workers", nItems, chunkItems, workers)

	type chunk struct{ start, end uint64 }
	chunks := make(chan chunk, (nItems/chunkItems)+1)
	for start := uint64(0); start < nItems; start += chunkItems {
		end := start + chunkItems
		if end > nItems {
			end = nItems
		}
		chunks <- chunk{start, end}
	}
	close(chunks)

	var wg sync.WaitGroup
	errCh := make(chan error, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range chunks {
				if err := ctx.Err(); err != nil {
					errCh <- err
					return
				}
				for i := c.start; i < c.end; i++ {
					item := computeDagItem(cache, i)
					copy(d.words[i*16:i*16+16], item[:])
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}
