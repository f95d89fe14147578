// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import (
	"errors"

	"github.com/decred/dcrd/chaincfg/chainhash"
)

// MaxJobIDLen is the maximum length of a MiningJob's JobID (spec §3).
const MaxJobIDLen = 32

// MiningJob is the work unit a device context searches against (spec §3).
// PrevHash and MerkleRoot use chainhash.Hash rather than a bare [32]byte so
// job construction gets the same hex-string/stringer conveniences the rest
// of the dcrd-derived stack uses for block hashes.
type MiningJob struct {
	JobID      string
	PrevHash   chainhash.Hash
	MerkleRoot chainhash.Hash
	NTime      uint32
	NBits      uint32
	Target     uint64
}

// MiningResult reports the outcome of a single nonce found while searching
// a job (spec §3).
type MiningResult struct {
	JobID string
	Nonce uint64
	Found bool
}

// Validate checks the basic shape of a job before it's accepted by a device
// context (spec §7's InvalidJob kind).
func (j *MiningJob) Validate() error {
	if j.JobID == "" {
		return NewInvalidJob(errors.New("job id must not be empty"))
	}
	if len(j.JobID) > MaxJobIDLen {
		return NewInvalidJob(errors.New("job id exceeds 32 bytes"))
	}
	return nil
}

// Header builds the 80-byte header this job hashes against, with the
// nonce words left zero (the search kernel fills the nonce in directly,
// spec §4.5/§9).
func (j *MiningJob) Header() *Header {
	return NewHeader([32]byte(j.PrevHash), [32]byte(j.MerkleRoot), j.NTime, j.NBits)
}
