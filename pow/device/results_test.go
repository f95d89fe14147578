// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package device

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResultSamplerCapsAtCapacity(t *testing.T) {
	s := newResultSampler(3)
	for i := uint64(0); i < 10; i++ {
		s.tryAdd(i)
	}
	require.Len(t, s.snapshot(), 3)
}

func TestResultSamplerConcurrentAddsStayWithinCapacity(t *testing.T) {
	s := newResultSampler(4)
	var wg sync.WaitGroup
	for i := uint64(0); i < 100; i++ {
		wg.Add(1)
		go func(n uint64) {
			defer wg.Done()
			s.tryAdd(n)
		}(i)
	}
	wg.Wait()
	require.LessOrEqual(t, len(s.snapshot()), 4)
}
