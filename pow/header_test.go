// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	var prev, merkle [32]byte
	for i := range prev {
		prev[i] = byte(i)
		merkle[i] = byte(0xff - i)
	}
	h := NewHeader(prev, merkle, 0x12345678, 0x1d00ffff)
	h.SetNonce(0x0102030405060708)

	b := h.Bytes()
	require.Len(t, b, HeaderBytes)

	h2 := HeaderFromBytes(b)
	require.Equal(t, h.Words, h2.Words)
}

func TestBitsToTargetSmallExponent(t *testing.T) {
	// size <= 3: straightforward right shift of the mantissa.
	nbits := uint32(0x03_00ffff) // size=3, word=0x00ffff
	require.Equal(t, uint64(0x00ffff), BitsToTarget(nbits))

	nbits2 := uint32(0x01_00ffff) // size=1, word=0x00ffff, shift 16
	require.Equal(t, uint64(0x00ffff)>>16, BitsToTarget(nbits2))
}

func TestBitsToTargetLargeExponent(t *testing.T) {
	nbits := uint32(0x04_00ffff) // size=4: shift maxUint64 right by 8 bits
	require.Equal(t, ^uint64(0)>>8, BitsToTarget(nbits))
}

func TestBitsToTargetSaturatesToZeroBeyondWordWidth(t *testing.T) {
	// A size large enough that (size-3)*8 >= 64 collapses the target to
	// zero under the spec's literal formula (spec §6).
	nbits := uint32(0x1d_00ffff)
	require.Equal(t, uint64(0), BitsToTarget(nbits))
}

func TestHashHighAndTargetCheck(t *testing.T) {
	high := HashHigh(0x00000000, 0xffff0000)
	require.Equal(t, uint64(0xffff0000), high)

	require.True(t, TargetCheck(0, ^uint64(0)))
	require.False(t, TargetCheck(^uint64(0), 0))
	require.True(t, TargetCheck(5, 5))
}
