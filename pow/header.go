// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import "encoding/binary"

// HeaderWords is the width of a header in 32-bit words (spec §3): 8 words of
// previous-block hash, 8 of merkle root, 1 of time, 1 of bits, and 2 of
// nonce (low, high).
const HeaderWords = 20

// HeaderBytes is the serialized width of a header in bytes.
const HeaderBytes = HeaderWords * 4

// Header is the 80-byte block header the mix-search kernel hashes. Word
// indices follow spec §3 exactly: [0,8) previous-block hash, [8,16) merkle
// root, [16] time, [17] bits, [18,20) nonce low/high. The kernel copies all
// 20 words into its Keccak state and then overwrites state word 19 with the
// search nonce's low 32 bits (and word 20 with its high 32 bits), so header
// word 18 is hashed as given while header word 19 is ignored (spec §4.5, §9).
type Header struct {
	Words [HeaderWords]uint32
}

// NewHeader builds a header from a previous-block hash and merkle root
// (each 32 bytes, little-endian word order) plus the time and bits fields.
// The nonce words are left zero; SetNonce records a nonce in the header
// itself.
func NewHeader(prevHash, merkleRoot [32]byte, ntime, nbits uint32) *Header {
	h := &Header{}
	for i := 0; i < 8; i++ {
		h.Words[i] = binary.LittleEndian.Uint32(prevHash[i*4 : i*4+4])
		h.Words[8+i] = binary.LittleEndian.Uint32(merkleRoot[i*4 : i*4+4])
	}
	h.Words[16] = ntime
	h.Words[17] = nbits
	return h
}

// SetNonce records a nonce in the header's own nonce words. The mix-search
// kernel ignores word 19 (it substitutes the search nonce there) but hashes
// word 18 as given, so a nonce recorded here changes MixHash's result.
func (h *Header) SetNonce(nonce uint64) {
	h.Words[18] = uint32(nonce)
	h.Words[19] = uint32(nonce >> 32)
}

// Bytes serializes the header to its 80-byte little-endian wire form.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderBytes)
	for i, w := range h.Words {
		binary.LittleEndian.PutUint32(b[i*4:i*4+4], w)
	}
	return b
}

// HeaderFromBytes deserializes an 80-byte header.
func HeaderFromBytes(b []byte) *Header {
	h := &Header{}
	for i := range h.Words {
		h.Words[i] = binary.LittleEndian.Uint32(b[i*4 : i*4+4])
	}
	return h
}

// BitsToTarget derives a 64-bit difficulty target from a compact n_bits
// encoding (spec §6). size is the exponent byte and word the 23-bit
// mantissa; for size <= 3 the mantissa is shifted right to fit, otherwise
// the maximum 64-bit value is shifted right by the excess byte count.
func BitsToTarget(nbits uint32) uint64 {
	size := nbits >> 24
	word := nbits & 0x007fffff

	if size <= 3 {
		return uint64(word) >> (8 * (3 - size))
	}
	return ^uint64(0) >> ((size - 3) * 8)
}

// HashHigh assembles the top 64 bits of a finalized Keccak-f[800] state from
// its first two 32-bit words (spec §4.5/§8, big-endian composition of
// state[0]:state[1]).
func HashHigh(state0, state1 uint32) uint64 {
	return uint64(state0)<<32 | uint64(state1)
}

// TargetCheck reports whether a candidate hash passes the target (spec §3):
// the candidate's high 64 bits must be less than or equal to target.
func TargetCheck(hashHigh, target uint64) bool {
	return hashHigh <= target
}
