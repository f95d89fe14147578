// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package device models the minimal contract an opaque GPU dispatch layer
// must satisfy (spec §6, §9): a capability set of {Init, GenerateDAG,
// Search, Cleanup}, with the CPU-reference variant implemented concretely
// here and CUDA/OpenCL represented only as named, unimplemented variants the
// device-selection layer can switch on. The core depends only on the
// Backend interface, never on a concrete variant.
package device

import (
	"context"

	"github.com/vigilnetwork/adaptivepow/pow"
)

// Variant names a kernel dispatch implementation.
type Variant int

const (
	// CPUReference is the only variant with a concrete implementation in
	// this module; it is also the verifier's execution path.
	CPUReference Variant = iota
	// Cuda names the CUDA dispatch backend. Its kernel bodies are the
	// explicitly out-of-scope opaque executor (spec §1); only the variant
	// tag lives here.
	Cuda
	// OpenCL names the OpenCL dispatch backend, likewise opaque.
	OpenCL
)

func (v Variant) String() string {
	switch v {
	case CPUReference:
		return "cpu-reference"
	case Cuda:
		return "cuda"
	case OpenCL:
		return "opencl"
	default:
		return "unknown"
	}
}

// Info describes one enumerated device (spec §6, "consumed" from an
// external GPU layer — this struct is the shape of that record, not the
// enumeration call itself).
type Info struct {
	ID           int
	Name         string
	MemoryBytes  uint64
	FreeBytes    uint64
	ComputeUnits int
	Available    bool
}

// SearchJob is the input to the search kernel entry point (spec §6):
// one header, one nonce range, one target, to be evaluated against the
// resident DAG.
type SearchJob struct {
	Header     *pow.Header
	StartNonce uint64
	BatchSize  uint64
	Target     uint64
}

// BatchResult is the output of one search dispatch: the number of hashes
// attempted (always BatchSize, even if zero nonces passed) and the sampled
// set of nonces that passed the target check (spec §4.6, §5 — a bounded
// sampler, not a guarantee of capturing every hit).
type BatchResult struct {
	HashesAttempted uint64
	Found           []uint64
}

// Backend is the capability set a dispatch implementation must provide
// (spec §9's "capability set the core depends on, not the variant").
type Backend interface {
	// Init prepares the backend for the given epoch: allocating and
	// building the cache is enough to return from Init; the DAG is built
	// separately by GenerateDAG so its cost can be tracked and chunked on
	// its own (spec §4.6's DagGenerating state).
	Init(ctx context.Context, epoch uint32, seed [pow.SeedSize]byte) error

	// GenerateDAG builds the DAG for the epoch passed to Init. It may be
	// called again after a later Init to regenerate for a new epoch.
	GenerateDAG(ctx context.Context) error

	// Search dispatches one batch of candidate nonces against the
	// resident DAG. Returns DatasetNotReady if no DAG has been built yet.
	Search(ctx context.Context, job SearchJob) (BatchResult, error)

	// DagSource returns a pow.DagSource backed by whatever dataset is
	// currently resident, so a caller can independently re-verify nonces
	// this backend reports as found rather than accepting them on the
	// backend's say-so alone (spec §1, §4.7). It returns nil if no DAG has
	// been built yet.
	DagSource() pow.DagSource

	// Cleanup releases the backend's dataset memory. The backend must not
	// be used after Cleanup without a fresh Init.
	Cleanup()
}
