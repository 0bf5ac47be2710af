// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/supplychaind/fault"
)

// Store - source of exclusive transactions
type Store interface {
	Begin() (Transaction, error)
}

// Transaction - all reads and writes of one operation
//
// nothing is visible to other transactions until Commit; Abort, or a
// failed Commit, leaves storage unchanged
type Transaction interface {
	Exists(key []byte) (bool, error)
	Allocate(key []byte, size int) error
	ReadRange(key []byte, offset int, length int) ([]byte, error)
	WriteRange(key []byte, offset int, data []byte) error
	Commit() error
	Abort()
}

// PoolStore - a Store over one pool
type PoolStore struct {
	pool *PoolHandle
}

// NewStore - create a Store for a pool
func NewStore(pool *PoolHandle) *PoolStore {
	return &PoolStore{
		pool: pool,
	}
}

// Begin - start a transaction, waiting for any open one to finish
func (s *PoolStore) Begin() (Transaction, error) {
	if nil == s.pool {
		return nil, fault.DatabaseIsNotSet
	}

	poolData.RLock()
	access := s.pool.access
	poolData.RUnlock()

	if nil == access {
		return nil, fault.DatabaseIsNotSet
	}

	access.Begin()

	return &poolTransaction{
		pool:   s.pool,
		access: access,
	}, nil
}

type poolTransaction struct {
	pool   *PoolHandle
	access Access
	done   bool
}

func (t *poolTransaction) Exists(key []byte) (bool, error) {
	if t.done {
		return false, fault.TransactionNotInUse
	}
	return t.pool.hasIn(t.access, key)
}

// Allocate - create a zero filled value
func (t *poolTransaction) Allocate(key []byte, size int) error {
	if t.done {
		return fault.TransactionNotInUse
	}
	if t.access.ReadOnly() {
		return fault.NotAvailableInReadOnlyMode
	}
	if size <= 0 {
		return fault.AllocationFailed
	}
	found, err := t.pool.hasIn(t.access, key)
	if nil != err {
		return err
	}
	if found {
		return fault.AllocationFailed
	}
	t.pool.putIn(t.access, key, make([]byte, size))
	return nil
}

func (t *poolTransaction) ReadRange(key []byte, offset int, length int) ([]byte, error) {
	if t.done {
		return nil, fault.TransactionNotInUse
	}

	value, err := t.pool.getFrom(t.access, key)
	if nil != err {
		return nil, err
	}
	if nil == value {
		return nil, fault.RecordNotFound
	}
	if !inBounds(len(value), offset, length) {
		return nil, fault.BoundsExceeded
	}

	buffer := make([]byte, length)
	copy(buffer, value[offset:])
	return buffer, nil
}

// WriteRange - overwrite part of an allocated value
//
// the size of the value never changes
func (t *poolTransaction) WriteRange(key []byte, offset int, data []byte) error {
	if t.done {
		return fault.TransactionNotInUse
	}
	if t.access.ReadOnly() {
		return fault.NotAvailableInReadOnlyMode
	}

	value, err := t.pool.getFrom(t.access, key)
	if nil != err {
		return err
	}
	if nil == value {
		return fault.RecordNotFound
	}
	if !inBounds(len(value), offset, len(data)) {
		return fault.BoundsExceeded
	}

	// the current value may be shared with the cache or the database
	updated := make([]byte, len(value))
	copy(updated, value)
	copy(updated[offset:], data)

	t.pool.putIn(t.access, key, updated)
	return nil
}

func (t *poolTransaction) Commit() error {
	if t.done {
		return fault.TransactionNotInUse
	}
	t.done = true
	return t.access.Commit()
}

func (t *poolTransaction) Abort() {
	if t.done {
		return
	}
	t.done = true
	t.access.Abort()
}

func inBounds(size int, offset int, length int) bool {
	return offset >= 0 && length >= 0 && offset <= size && length <= size-offset
}
