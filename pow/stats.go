// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import (
	"sync/atomic"
	"time"
)

// MinerStats is a point-in-time snapshot of a device context's hash-rate
// and share counters (spec §3).
type MinerStats struct {
	TotalHashes   uint64
	Accepted      uint64
	Rejected      uint64
	CurrentEpoch  uint32
	DagSize       uint64
	UptimeSeconds uint64
	Hashrate      float64
}

// StatsCounter accumulates the counters behind MinerStats. All mutators are
// safe for concurrent use, since a batch driver may update hash counts from
// one goroutine while stats are read from another.
type StatsCounter struct {
	totalHashes atomic.Uint64
	accepted    atomic.Uint64
	rejected    atomic.Uint64
	epoch       atomic.Uint32
	dagSize     atomic.Uint64
	started     time.Time
}

// NewStatsCounter returns a counter with its uptime clock started now.
func NewStatsCounter() *StatsCounter {
	return &StatsCounter{started: time.Now()}
}

// AddHashes records that a batch of n hashes was attempted. Per spec §4.8,
// callers must not call this for a batch whose kernel launch failed.
func (s *StatsCounter) AddHashes(n uint64) {
	s.totalHashes.Add(n)
}

// AddAccepted records one accepted share.
func (s *StatsCounter) AddAccepted() {
	s.accepted.Add(1)
}

// AddRejected records one share that failed CPU verification (spec §4.8: a
// statistical outcome, not an error).
func (s *StatsCounter) AddRejected() {
	s.rejected.Add(1)
}

// SetDataset records the dataset epoch and size currently resident.
func (s *StatsCounter) SetDataset(epoch uint32, dagSize uint64) {
	s.epoch.Store(epoch)
	s.dagSize.Store(dagSize)
}

// Snapshot returns the current counters as a MinerStats value, computing
// hashrate as total hashes over elapsed uptime.
func (s *StatsCounter) Snapshot() MinerStats {
	uptime := time.Since(s.started)
	total := s.totalHashes.Load()

	var hashrate float64
	if uptime > 0 {
		hashrate = float64(total) / uptime.Seconds()
	}

	return MinerStats{
		TotalHashes:   total,
		Accepted:      s.accepted.Load(),
		Rejected:      s.rejected.Load(),
		CurrentEpoch:  s.epoch.Load(),
		DagSize:       s.dagSize.Load(),
		UptimeSeconds: uint64(uptime.Seconds()),
		Hashrate:      hashrate,
	}
}
