// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package supplychain

import (
	"sync"
	"sync/atomic"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/account"
	"github.com/bitmark-inc/supplychaind/funding"
	"github.com/bitmark-inc/supplychaind/storage"
)

// Engine - applies operations to item records
type Engine struct {
	log         *logger.L
	store       storage.Store
	validator   funding.Validator
	application account.Address

	// held across commit and bus send so events leave in commit order
	publishLock sync.Mutex

	accepted atomic.Uint64
	rejected atomic.Uint64
}

// Statistics - counts of operations since start
type Statistics struct {
	Accepted uint64 `json:"accepted"`
	Rejected uint64 `json:"rejected"`
}

// New - create an engine
//
// application is the account that owns the storage, all creation
// funding must be paid to it
func New(log *logger.L, store storage.Store, validator funding.Validator, application account.Address) *Engine {
	return &Engine{
		log:         log,
		store:       store,
		validator:   validator,
		application: application,
	}
}

// Application - the storage owner account
func (e *Engine) Application() account.Address {
	return e.application
}

// Statistics - snapshot of the operation counts
func (e *Engine) Statistics() Statistics {
	return Statistics{
		Accepted: e.accepted.Load(),
		Rejected: e.rejected.Load(),
	}
}

// count the result of a mutating operation
func (e *Engine) count(err error) error {
	if nil == err {
		e.accepted.Add(1)
	} else {
		e.rejected.Add(1)
	}
	return err
}
