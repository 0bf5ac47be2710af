// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/supplychaind/counter"
)

func TestAcquireRelease(t *testing.T) {
	var c counter.Counter

	assert.Equal(t, uint64(0), c.Uint64(), "not zero at start")

	for i := 0; i < 3; i += 1 {
		assert.True(t, c.Acquire(3), "slot %d refused", i)
	}
	assert.False(t, c.Acquire(3), "limit exceeded")
	assert.Equal(t, uint64(3), c.Uint64(), "refused acquire counted")

	c.Release()
	assert.True(t, c.Acquire(3), "released slot refused")

	c.Release()
	c.Release()
	c.Release()
	assert.Equal(t, uint64(0), c.Uint64(), "did not return to zero")
}

func TestZeroLimit(t *testing.T) {
	var c counter.Counter
	assert.False(t, c.Acquire(0), "zero limit allowed a slot")
	assert.Equal(t, uint64(0), c.Uint64(), "refused acquire counted")
}

func TestConcurrentAcquire(t *testing.T) {
	var c counter.Counter
	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0

	for i := 0; i < 50; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Acquire(10) {
				mu.Lock()
				granted += 1
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, granted, "wrong number of slots granted")
	assert.Equal(t, uint64(10), c.Uint64(), "wrong count")
}
