// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sqlstore_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/sqlstore"
)

const (
	testingDirName = "testing"
)

var testKey = []byte("key-one")

func setup(t *testing.T) (*sqlstore.Database, string) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	path := filepath.Join(testingDirName, "test.sqlite3")
	db, err := sqlstore.Open(path)
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	return db, path
}

func teardown(db *sqlstore.Database) {
	_ = db.Close()
	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
}

func TestAllocateAndCommit(t *testing.T) {
	db, path := setup(t)
	defer func() { teardown(db) }()

	trx, err := db.Begin()
	assert.Nil(t, err, "begin error")

	found, err := trx.Exists(testKey)
	assert.Nil(t, err, "exists error")
	assert.False(t, found, "key exists before allocate")

	assert.Nil(t, trx.Allocate(testKey, 8), "allocate error")
	assert.Equal(t, fault.AllocationFailed, trx.Allocate(testKey, 8), "existing key allocated")

	assert.Nil(t, trx.WriteRange(testKey, 4, []byte{1, 2}), "write error")
	data, err := trx.ReadRange(testKey, 0, 8)
	assert.Nil(t, err, "read error")
	assert.Equal(t, []byte{0, 0, 0, 0, 1, 2, 0, 0}, data, "pending write not visible")

	assert.Nil(t, trx.Commit(), "commit error")
	assert.Equal(t, fault.TransactionNotInUse, trx.Commit(), "second commit")

	// survives reopen
	assert.Nil(t, db.Close(), "close error")
	db, err = sqlstore.Open(path)
	if nil != err {
		t.Fatalf("reopen error: %s", err)
	}

	trx, err = db.Begin()
	assert.Nil(t, err, "begin error")
	data, err = trx.ReadRange(testKey, 4, 2)
	assert.Nil(t, err, "read error")
	assert.Equal(t, []byte{1, 2}, data, "data lost on reopen")
	trx.Abort()
}

func TestAbortDiscards(t *testing.T) {
	db, _ := setup(t)
	defer teardown(db)

	trx, err := db.Begin()
	assert.Nil(t, err, "begin error")
	assert.Nil(t, trx.Allocate(testKey, 8), "allocate error")
	trx.Abort()

	trx, err = db.Begin()
	assert.Nil(t, err, "begin error")
	defer trx.Abort()

	found, err := trx.Exists(testKey)
	assert.Nil(t, err, "exists error")
	assert.False(t, found, "aborted allocation stored")
}

func TestRangeErrors(t *testing.T) {
	db, _ := setup(t)
	defer teardown(db)

	trx, err := db.Begin()
	assert.Nil(t, err, "begin error")
	defer trx.Abort()

	_, err = trx.ReadRange(testKey, 0, 1)
	assert.Equal(t, fault.RecordNotFound, err, "read of missing key")
	assert.Equal(t, fault.RecordNotFound, trx.WriteRange(testKey, 0, []byte{1}), "write of missing key")

	assert.Nil(t, trx.Allocate(testKey, 8), "allocate error")
	assert.Equal(t, fault.AllocationFailed, trx.Allocate([]byte("other"), 0), "zero size allocated")

	_, err = trx.ReadRange(testKey, 4, 5)
	assert.Equal(t, fault.BoundsExceeded, err, "read past end")
	_, err = trx.ReadRange(testKey, -1, 2)
	assert.Equal(t, fault.BoundsExceeded, err, "negative offset")
	assert.Equal(t, fault.BoundsExceeded, trx.WriteRange(testKey, 7, []byte{1, 2}), "write past end")
}

func TestConcurrentAllocate(t *testing.T) {
	db, _ := setup(t)
	defer teardown(db)

	const workers = 10
	results := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			trx, err := db.Begin()
			if nil != err {
				results <- err
				return
			}
			err = trx.Allocate(testKey, 4)
			if nil != err {
				trx.Abort()
				results <- err
				return
			}
			results <- trx.Commit()
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if nil == err {
			succeeded += 1
		} else {
			assert.Equal(t, fault.AllocationFailed, err, "unexpected error")
		}
	}
	assert.Equal(t, 1, succeeded, "wrong number of allocations")
}
