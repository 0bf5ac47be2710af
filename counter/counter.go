// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - connection gauges shared between listeners
package counter

import (
	"sync/atomic"
)

// Counter - number of connections currently being served
type Counter struct {
	n atomic.Uint64
}

// Acquire - take a slot if fewer than limit are in use
//
// every successful Acquire must be paired with a Release
func (c *Counter) Acquire(limit uint64) bool {
	if c.n.Add(1) <= limit {
		return true
	}
	c.n.Add(^uint64(0))
	return false
}

// Release - give back a slot
func (c *Counter) Release() {
	c.n.Add(^uint64(0))
}

// Uint64 - current value
func (c *Counter) Uint64() uint64 {
	return c.n.Load()
}
