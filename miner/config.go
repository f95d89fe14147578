// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miner

import "github.com/vigilnetwork/adaptivepow/pow/device"

// Config holds the tunables for a device Context's batch driver (spec §5,
// §9's reference values). Context itself reads only BatchSize; the other
// fields are not applied by Context and take effect only where they are
// passed to device.NewCPUReference (DagChunkItems, Workers, MaxResults) or
// pow.EpochFromTimestamp (GenesisTime).
type Config struct {
	// BatchSize is the number of nonces dispatched to the backend per
	// search call. Reference: 2^21.
	BatchSize uint64

	// MaxResults caps how many found nonces a single batch reports.
	// Reference: 16.
	MaxResults int

	// DagChunkItems is the number of DAG items generated per sub-dispatch
	// during DAG regeneration. Reference: 1,000,000.
	DagChunkItems uint64

	// Workers bounds the CPU-reference backend's worker pool. Zero selects
	// GOMAXPROCS.
	Workers int

	// GenesisTime anchors epoch derivation from block timestamps.
	GenesisTime uint64
}

// DefaultBatchSize is the reference per-dispatch nonce count (spec §5).
const DefaultBatchSize = 1 << 21

// DefaultConfig returns the reference tunables named throughout spec §9.
func DefaultConfig() Config {
	return Config{
		BatchSize:     DefaultBatchSize,
		MaxResults:    device.DefaultMaxResults,
		DagChunkItems: device.DefaultDagChunkItems,
	}
}
