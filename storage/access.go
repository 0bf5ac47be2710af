// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/supplychaind/fault"
)

// Access - batched access to one database
type Access interface {
	Abort()
	Begin()
	Commit() error
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	InUse() bool
	Iterator(*ldb_util.Range) iterator.Iterator
	Put([]byte, []byte)
	ReadOnly() bool
	Stored([]byte) ([]byte, error)
}

// AccessData - the single batch of a database
//
// exclusive is held from Begin until Commit or Abort
type AccessData struct {
	sync.Mutex
	exclusive sync.Mutex
	inUse     bool
	readOnly  bool
	db        *leveldb.DB
	batch     *leveldb.Batch
	cache     Cache
}

func newDA(db *leveldb.DB, trx *leveldb.Batch, cache Cache, readOnly bool) Access {
	return &AccessData{
		inUse:    false,
		readOnly: readOnly,
		db:       db,
		batch:    trx,
		cache:    cache,
	}
}

// Begin - wait for exclusive use of the batch
func (d *AccessData) Begin() {
	d.exclusive.Lock()

	d.Lock()
	d.inUse = true
	d.Unlock()
}

// Put - add to the batch, visible to Get immediately
func (d *AccessData) Put(key []byte, value []byte) {
	d.cache.Set(key, value)
	d.batch.Put(key, value)
}

// Commit - write the batch in one operation and release it
//
// the batch is discarded even if the write fails
func (d *AccessData) Commit() error {
	d.Lock()
	defer d.Unlock()

	if !d.inUse {
		return fault.TransactionNotInUse
	}

	var err error
	if d.batch.Len() > 0 {
		if d.readOnly {
			err = fault.NotAvailableInReadOnlyMode
		} else {
			err = d.db.Write(d.batch, nil)
		}
	}

	d.release()
	return err
}

// Abort - discard the batch and release it
func (d *AccessData) Abort() {
	d.Lock()
	defer d.Unlock()

	if !d.inUse {
		return
	}
	d.release()
}

// must hold d.Lock
func (d *AccessData) release() {
	d.batch.Reset()
	d.cache.Clear()
	d.inUse = false
	d.exclusive.Unlock()
}

// Get - pending value if any, otherwise the stored value
func (d *AccessData) Get(key []byte) ([]byte, error) {
	val, found := d.cache.Get(key)
	if found {
		return val, nil
	}
	return d.db.Get(key, nil)
}

// Stored - value as last committed
func (d *AccessData) Stored(key []byte) ([]byte, error) {
	return d.db.Get(key, nil)
}

func (d *AccessData) Has(key []byte) (bool, error) {
	_, found := d.cache.Get(key)
	if found {
		return true, nil
	}
	return d.db.Has(key, nil)
}

// Iterator - over committed data only
func (d *AccessData) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}

func (d *AccessData) InUse() bool {
	d.Lock()
	defer d.Unlock()
	return d.inUse
}

func (d *AccessData) ReadOnly() bool {
	return d.readOnly
}
