// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

const (
	// HashBytes is the size in bytes of one cache or DAG item (16 little-
	// endian 32-bit words).
	HashBytes = 64

	// EpochLength is the number of seconds a single epoch's dataset
	// remains valid before the dataset is regenerated (180 days).
	EpochLength = 180 * 24 * 60 * 60

	// dagBaseSize is the DAG size at epoch 0.
	dagBaseSize uint64 = 1 << 30

	// growthRate controls how quickly the DAG doubles in size with epoch.
	growthRate = 4

	// maxGrowthSteps caps the number of doublings applied to dagBaseSize.
	maxGrowthSteps = 10

	// SeedSize is the width in bytes of an epoch seed.
	SeedSize = 32
)

// EpochFromTimestamp derives the epoch index from a block timestamp and the
// network's genesis time (spec §3). Timestamps at or before genesis are
// epoch 0.
func EpochFromTimestamp(timestamp, genesisTime uint64) uint32 {
	if timestamp <= genesisTime {
		return 0
	}
	return uint32((timestamp - genesisTime) / EpochLength)
}

// DagSize returns the DAG size in bytes for the given epoch. It is always a
// multiple of HashBytes.
func DagSize(epoch uint32) uint64 {
	growth := uint(epoch) / growthRate
	if growth > maxGrowthSteps {
		growth = maxGrowthSteps
	}
	return dagBaseSize << growth
}

// CacheSize returns the cache size in bytes for the given epoch. It is
// always a multiple of HashBytes.
func CacheSize(epoch uint32) uint64 {
	return DagSize(epoch) / HashBytes
}

// DagItemCount returns the number of HashBytes-sized items in the DAG for
// the given epoch.
func DagItemCount(epoch uint32) uint64 {
	return DagSize(epoch) / HashBytes
}

// CacheItemCount returns the number of HashBytes-sized items in the cache
// for the given epoch.
func CacheItemCount(epoch uint32) uint64 {
	return CacheSize(epoch) / HashBytes
}

// Seed derives the 32-byte dataset seed for an epoch. Per spec §4.2 and the
// open-question resolution in §9, this is the Keccak-256 digest of the
// epoch's little-endian 32-bit representation, zero-padded to 32 bytes —
// not the simplified placeholder some reference implementations use. Using
// the real Keccak-256 primitive (rather than a bespoke fold) is what lets an
// independent GPU implementation agree with this CPU code on the seed for a
// given epoch.
func Seed(epoch uint32) [SeedSize]byte {
	var input [SeedSize]byte
	binary.LittleEndian.PutUint32(input[:4], epoch)

	h := sha3.NewLegacyKeccak256()
	h.Write(input[:])

	var out [SeedSize]byte
	copy(out[:], h.Sum(nil))
	return out
}
