// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Cache - pending writes of the open transaction
//
// values are copied on Set so a caller may reuse its buffer, the same
// as the leveldb batch does
type Cache interface {
	Get(key []byte) ([]byte, bool)
	Set(key []byte, value []byte)
	Clear()
}

// entries live only for the duration of one transaction, these only
// stop a leaked transaction from holding memory forever
const (
	pendingExpiry  = 2 * time.Minute
	pendingCleanup = 1 * time.Minute
)

type pendingCache struct {
	c *cache.Cache
}

func newCache() Cache {
	return &pendingCache{
		c: cache.New(pendingExpiry, pendingCleanup),
	}
}

func (p *pendingCache) Get(key []byte) ([]byte, bool) {
	obj, found := p.c.Get(string(key))
	if !found {
		return nil, false
	}
	return obj.([]byte), true
}

func (p *pendingCache) Set(key []byte, value []byte) {
	p.c.SetDefault(string(key), append([]byte(nil), value...))
}

func (p *pendingCache) Clear() {
	p.c.Flush()
}
