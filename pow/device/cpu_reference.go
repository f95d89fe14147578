// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package device

import (
	"context"
	"runtime"
	"sync"

	"github.com/vigilnetwork/adaptivepow/pow"
)

// DefaultMaxResults is the default cap on how many found nonces a single
// Search call will collect (spec §4.6: "a small fixed cap, reference: 16").
const DefaultMaxResults = 16

// DefaultDagChunkItems is the default number of DAG items generated per
// sub-dispatch (spec §5: "reference: 1M items per sub-dispatch").
const DefaultDagChunkItems = 1_000_000

// CPUReference is the CPUReference Backend variant: a data-parallel, pure-Go
// execution of the same kernels a GPU backend would run, fanned out across
// a worker pool instead of device threads. It is also what package pow's
// verifier equivalent runs on, satisfying spec §1's requirement that the
// CPU path be a coequal implementation, not a stub.
type CPUReference struct {
	dagChunkItems uint64
	workers       int
	maxResults    int

	mu        sync.RWMutex
	cache     *pow.Cache
	dag       *pow.Dag
	epoch     uint32
	nDagItems uint64
}

// NewCPUReference builds a CPUReference backend. A workers value <= 0
// defaults to GOMAXPROCS; a dagChunkItems or maxResults value of 0 takes
// the package defaults.
func NewCPUReference(dagChunkItems uint64, workers, maxResults int) *CPUReference {
	if dagChunkItems == 0 {
		dagChunkItems = DefaultDagChunkItems
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if maxResults == 0 {
		maxResults = DefaultMaxResults
	}
	return &CPUReference{dagChunkItems: dagChunkItems, workers: workers, maxResults: maxResults}
}

// Init builds the cache for the given epoch and seed. The DAG itself is
// left unbuilt until GenerateDAG is called, so its cost is tracked and
// chunked separately (spec §4.6's Uninit -> DagGenerating -> Ready states).
func (c *CPUReference) Init(_ context.Context, epoch uint32, seed [pow.SeedSize]byte) error {
	nCache := pow.CacheItemCount(epoch)
	cache := pow.GenerateCache(seed, nCache)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = cache
	c.dag = nil
	c.epoch = epoch
	c.nDagItems = pow.DagItemCount(epoch)
	log.Debugf("cpu-reference: cache built for epoch %d (%d items)", epoch, nCache)
	return nil
}

// GenerateDAG builds the DAG for the epoch passed to the most recent Init
// call, chunked across the configured worker pool.
func (c *CPUReference) GenerateDAG(ctx context.Context) error {
	c.mu.RLock()
	cache := c.cache
	nDagItems := c.nDagItems
	c.mu.RUnlock()

	if cache == nil {
		return pow.NewDatasetNotReady()
	}

	dag, err := pow.GenerateDagParallel(ctx, cache, nDagItems, c.dagChunkItems, c.workers)
	if err != nil {
		return pow.NewDispatchFailed("generate_dag", err)
	}

	c.mu.Lock()
	c.dag = dag
	c.mu.Unlock()
	log.Infof("cpu-reference: DAG ready (%d items)", nDagItems)
	return nil
}

// Search dispatches a batch of BatchSize nonces starting at StartNonce
// against the resident DAG, data-parallel across the worker pool (spec
// §4.5, §5). Hits are collected into a bounded sampler; HashesAttempted
// always equals job.BatchSize.
func (c *CPUReference) Search(_ context.Context, job SearchJob) (BatchResult, error) {
	c.mu.RLock()
	dag := c.dag
	c.mu.RUnlock()

	if dag == nil {
		return BatchResult{}, pow.NewDatasetNotReady()
	}

	sampler := newResultSampler(c.maxResults)

	var wg sync.WaitGroup
	workers := c.workers
	if uint64(workers) > job.BatchSize && job.BatchSize > 0 {
		workers = int(job.BatchSize)
	}
	if workers < 1 {
		workers = 1
	}
	chunk := job.BatchSize / uint64(workers)
	if chunk == 0 {
		chunk = 1
	}

	for start := uint64(0); start < job.BatchSize; start += chunk {
		end := start + chunk
		if end > job.BatchSize {
			end = job.BatchSize
		}
		wg.Add(1)
		go func(start, end uint64) {
			defer wg.Done()
			for offset := start; offset < end; offset++ {
				nonce := job.StartNonce + offset
				if pow.Passes(job.Header, nonce, dag, job.Target) {
					sampler.tryAdd(nonce)
				}
			}
		}(start, end)
	}
	wg.Wait()

	return BatchResult{
		HashesAttempted: job.BatchSize,
		Found:           sampler.snapshot(),
	}, nil
}

// DagSource returns a pow.DagSource over the resident DAG, or nil if
// GenerateDAG hasn't completed yet.
func (c *CPUReference) DagSource() pow.DagSource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.dag == nil {
		return nil
	}
	return c.dag
}

// Cleanup releases the backend's cache and DAG. The backend requires a
// fresh Init before it can be used again.
func (c *CPUReference) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = nil
	c.dag = nil
}
