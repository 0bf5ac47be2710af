// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package supplychain_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/account"
	"github.com/bitmark-inc/supplychaind/funding"
	"github.com/bitmark-inc/supplychaind/itemrecord"
	"github.com/bitmark-inc/supplychaind/sqlstore"
	"github.com/bitmark-inc/supplychaind/storage"
	"github.com/bitmark-inc/supplychaind/supplychain"
)

const (
	testingDirName = "testing"
	testAsset      = 31566704
)

var (
	application = account.Address{0xaa, 0x01}
	farmer      = account.Address{0xfa, 0x01}
	buyer       = account.Address{0xb0, 0x01}
	distributor = account.Address{0xd1, 0x01}
	customer    = account.Address{0xc0, 0x01}
)

// a backend under test
type backend struct {
	name  string
	open  func(t *testing.T) storage.Store
	close func()
}

var backends = []backend{
	{
		name: "leveldb",
		open: func(t *testing.T) storage.Store {
			err := storage.Initialise(filepath.Join(testingDirName, "test.leveldb"), storage.ReadWrite)
			if nil != err {
				t.Fatalf("storage initialise error: %s", err)
			}
			return storage.NewStore(storage.Pool.Records)
		},
		close: storage.Finalise,
	},
	{
		name: "sqlite",
		open: func(t *testing.T) storage.Store {
			db, err := sqlstore.Open(filepath.Join(testingDirName, "test.sqlite3"))
			if nil != err {
				t.Fatalf("sqlstore open error: %s", err)
			}
			sqlDatabase = db
			return db
		},
		close: func() {
			_ = sqlDatabase.Close()
		},
	},
}

var sqlDatabase *sqlstore.Database

func setupTestLogger() {
	removeFiles()
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

	// start logging
	_ = logger.Initialise(logging)
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// run a test against every backend
func forEachBackend(t *testing.T, f func(t *testing.T, engine *supplychain.Engine)) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			setupTestLogger()
			defer teardownTestLogger()

			store := b.open(t)
			defer b.close()

			engine := supplychain.New(logger.New("supplychain"), store, funding.New(funding.DefaultPolicy), application)
			f(t, engine)
		})
	}
}

func acmeItem() *itemrecord.Item {
	return &itemrecord.Item{
		FarmAddress: farmer,
		FarmName:    "Acme Farm",
		FarmInfo:    "Valley Road 4",
		Longitude:   1516394,
		Latitude:    3384023,
		ProductNote: "Arabica, washed",
	}
}

func validFunding(caller account.Address) (*funding.AssetTransfer, *funding.Payment) {
	transfer := &funding.AssetTransfer{
		Sender:   caller,
		Receiver: application,
		AssetId:  testAsset,
		Amount:   1,
	}
	payment := &funding.Payment{
		Sender:   caller,
		Receiver: application,
		Amount:   funding.DefaultPolicy.Minimum(itemrecord.KeyLength + itemrecord.PackedLength),
	}
	return transfer, payment
}

func create(t *testing.T, engine *supplychain.Engine, nonce uint64) itemrecord.Key {
	transfer, payment := validFunding(farmer)
	key, err := engine.Create(farmer, testAsset, nonce, acmeItem(), transfer, payment)
	if nil != err {
		t.Fatalf("create error: %s", err)
	}
	return key
}
