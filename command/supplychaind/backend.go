// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/sqlstore"
	"github.com/bitmark-inc/supplychaind/storage"
)

// record storage chosen by configuration
type backend struct {
	name   string
	store  storage.Store
	cursor *storage.FetchCursor // LevelDB only
	close  func()
}

func openBackend(log *logger.L, database *DatabaseType, readOnly bool) (*backend, error) {

	log.Infof("database: %q  backend: %s  read only: %v", database.Name, database.Backend, readOnly)

	switch database.Backend {
	case levelDBBackend:
		err := storage.Initialise(database.Name, readOnly)
		if nil != err {
			return nil, err
		}
		return &backend{
			name:   levelDBBackend,
			store:  storage.NewStore(storage.Pool.Records),
			cursor: storage.Pool.Records.NewFetchCursor(),
			close:  storage.Finalise,
		}, nil

	case sqliteBackend:
		db, err := sqlstore.Open(database.Name)
		if nil != err {
			return nil, err
		}
		return &backend{
			name:  sqliteBackend,
			store: db,
			close: func() {
				err := db.Close()
				if nil != err {
					log.Errorf("sqlite close error: %s", err)
				}
			},
		}, nil

	default:
		return nil, fault.InvalidBackend
	}
}
