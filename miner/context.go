// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package miner drives one device's search loop: it owns the
// Uninit -> DagGenerating -> Ready -> Searching -> Ready state machine, the
// nonce-range batch driver, and the hash-rate/share counters for a single
// device.Backend (spec §4.6, §5, §9). The JSON-RPC/stratum framing that
// would submit jobs and report shares over a network is explicitly out of
// scope; Context exposes a plain Go API a caller wires into whatever
// transport it wants.
package miner

import (
	"context"
	"sync"

	"github.com/vigilnetwork/adaptivepow/pow"
	"github.com/vigilnetwork/adaptivepow/pow/device"
)

// State is one stage of a device Context's lifecycle (spec §4.6).
type State int

const (
	// Uninit is a Context with no dataset built.
	Uninit State = iota
	// DagGenerating is building the cache and DAG for an epoch.
	DagGenerating
	// Ready has a resident dataset and is idle between batches.
	Ready
	// Searching is executing a single batch dispatch.
	Searching
	// Shutdown has released its backend and must not be used again.
	Shutdown
)

func (s State) String() string {
	switch s {
	case Uninit:
		return "uninit"
	case DagGenerating:
		return "dag-generating"
	case Ready:
		return "ready"
	case Searching:
		return "searching"
	case Shutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Context drives one device.Backend through its lifecycle and batch loop.
// A Context is safe for concurrent use: UpdateEpoch, SubmitJob and RunBatch
// may be called from separate goroutines, though in practice a single
// driver loop calls RunBatch repeatedly while another goroutine calls
// SubmitJob/UpdateEpoch as new work arrives.
type Context struct {
	deviceID int
	backend  device.Backend
	cfg      Config
	stats    *pow.StatsCounter

	mu         sync.Mutex
	state      State
	epoch      uint32
	job        *pow.MiningJob
	nextNonce  uint64
}

// New builds a Context driving the given backend. The Context starts in
// Uninit; UpdateEpoch must succeed before SubmitJob or RunBatch will do
// anything but return DatasetNotReady.
func New(deviceID int, backend device.Backend, cfg Config) *Context {
	return &Context{
		deviceID: deviceID,
		backend:  backend,
		cfg:      cfg,
		stats:    pow.NewStatsCounter(),
	}
}

// State returns the Context's current lifecycle state.
func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Stats returns a snapshot of this Context's hash-rate and share counters.
func (c *Context) Stats() pow.MinerStats {
	return c.stats.Snapshot()
}

// UpdateEpoch rebuilds the backend's dataset for a new epoch (spec §4.6:
// the DagGenerating state). It may be called again later to regenerate for
// a subsequent epoch. The lock is released for the duration of the
// (potentially multi-minute) backend calls, so a concurrent SubmitJob or
// RunBatch observes the DagGenerating state and returns DatasetNotReady
// promptly instead of blocking until the rebuild finishes (spec §4.6/§8
// scenario 5).
func (c *Context) UpdateEpoch(ctx context.Context, epoch uint32) error {
	c.mu.Lock()
	if c.state == Shutdown {
		c.mu.Unlock()
		return pow.NewDatasetNotReady()
	}
	if c.state == DagGenerating {
		c.mu.Unlock()
		return pow.NewDatasetNotReady()
	}
	c.state = DagGenerating
	c.mu.Unlock()

	seed := pow.Seed(epoch)

	if err := c.backend.Init(ctx, epoch, seed); err != nil {
		c.mu.Lock()
		c.state = Uninit
		c.mu.Unlock()
		return pow.NewDeviceInitFailed(err)
	}
	if err := c.backend.GenerateDAG(ctx); err != nil {
		c.mu.Lock()
		c.state = Uninit
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.epoch = epoch
	c.job = nil
	c.nextNonce = 0
	c.state = Ready
	c.mu.Unlock()

	c.stats.SetDataset(epoch, pow.DagSize(epoch))
	log.Infof("device %d: dataset ready for epoch %d", c.deviceID, epoch)
	return nil
}

// SubmitJob installs a new job to search against. It resets the nonce
// cursor, so the batch driver starts that job's search from nonce zero
// (spec §5's "current_nonce" per-job cursor). A job with a different JobID
// than the one currently in flight supersedes it: any batch already
// dispatched for the old job has its results discarded by RunBatch.
func (c *Context) SubmitJob(job *pow.MiningJob) error {
	if err := job.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Ready && c.state != Searching {
		return pow.NewDatasetNotReady()
	}

	jobCopy := *job
	c.job = &jobCopy
	c.nextNonce = 0
	return nil
}

// RunBatch dispatches one batch of BatchSize nonces against the current
// job, starting at the Context's nonce cursor, and advances the cursor past
// them so the next call continues where this one left off (spec §8's
// non-overlapping nonce-range requirement). Every nonce the backend reports
// as found is independently re-verified on the CPU before being accepted
// (spec §1/§4.7/§4.8: nothing may be accepted on a backend's say-so alone);
// a reported nonce that fails verification is counted as a rejected share
// and dropped rather than propagated upstream. RunBatch returns an empty
// result with no error if the job was superseded while the batch was in
// flight, or if no job has been submitted yet.
func (c *Context) RunBatch(ctx context.Context) ([]pow.MiningResult, error) {
	c.mu.Lock()
	if c.state == Shutdown {
		c.mu.Unlock()
		return nil, pow.NewDatasetNotReady()
	}
	if c.state != Ready {
		c.mu.Unlock()
		return nil, pow.NewDatasetNotReady()
	}
	job := c.job
	if job == nil {
		c.mu.Unlock()
		return nil, nil
	}

	startNonce := c.nextNonce
	c.nextNonce += c.cfg.BatchSize
	c.state = Searching
	jobID := job.JobID
	header := job.Header()
	target := job.Target
	c.mu.Unlock()

	result, err := c.backend.Search(ctx, device.SearchJob{
		Header:     header,
		StartNonce: startNonce,
		BatchSize:  c.cfg.BatchSize,
		Target:     target,
	})

	c.mu.Lock()
	if c.state == Searching {
		c.state = Ready
	}
	superseded := c.job == nil || c.job.JobID != jobID
	c.mu.Unlock()

	if err != nil {
		return nil, err
	}
	c.stats.AddHashes(result.HashesAttempted)

	if superseded {
		log.Debugf("device %d: discarding batch for superseded job %s", c.deviceID, jobID)
		return nil, nil
	}

	dagSource := c.backend.DagSource()
	if dagSource == nil {
		return nil, pow.NewDatasetNotReady()
	}

	results := make([]pow.MiningResult, 0, len(result.Found))
	for _, nonce := range result.Found {
		if !pow.Verify(header, nonce, target, dagSource) {
			log.Debugf("device %d: rejecting nonce %d for job %s (failed CPU verification)", c.deviceID, nonce, jobID)
			c.stats.AddRejected()
			continue
		}
		c.stats.AddAccepted()
		results = append(results, pow.MiningResult{JobID: jobID, Nonce: nonce, Found: true})
	}
	return results, nil
}

// Shutdown tears the Context down and releases its backend. The Context
// must not be used again afterward.
func (c *Context) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backend.Cleanup()
	c.state = Shutdown
	c.job = nil
}
