// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package supplychain

import (
	"github.com/bitmark-inc/supplychaind/account"
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/funding"
	"github.com/bitmark-inc/supplychaind/itemrecord"
)

// Create - store a new item in the Harvested stage
//
// the stage and owner of the item are ignored: a new record is always
// Harvested with no owner.  The returned key addresses the record in
// all later operations.
func (e *Engine) Create(caller account.Address, asset uint64, nonce uint64, item *itemrecord.Item, transfer *funding.AssetTransfer, payment *funding.Payment) (itemrecord.Key, error) {
	key := itemrecord.DeriveKey(caller, asset, nonce)
	err := e.create(key, caller, asset, item, transfer, payment)
	if nil != err {
		e.log.Debugf("create: %s  error: %s", key, err)
	} else {
		e.log.Infof("create: %s  farm: %q", key, item.FarmName)
	}
	return key, e.count(err)
}

func (e *Engine) create(key itemrecord.Key, caller account.Address, asset uint64, item *itemrecord.Item, transfer *funding.AssetTransfer, payment *funding.Payment) error {
	if nil == item {
		return fault.MissingParameters
	}

	trx, err := e.store.Begin()
	if nil != err {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			trx.Abort()
		}
	}()

	found, err := trx.Exists(key.Bytes())
	if nil != err {
		return err
	}
	if found {
		return fault.DuplicateRecord
	}

	size := itemrecord.KeyLength + itemrecord.PackedLength
	err = e.validator.Validate(caller, e.application, asset, size, transfer, payment)
	if nil != err {
		return err
	}

	err = trx.Allocate(key.Bytes(), itemrecord.PackedLength)
	if nil != err {
		if fault.IsErrProcess(err) {
			return err
		}
		e.log.Errorf("allocate: %s  error: %s", key, err)
		return fault.AllocationFailed
	}

	record := *item
	record.Stage = itemrecord.Harvested
	record.Owner = account.Zero
	record.Price = 0

	packed, err := record.Pack()
	if nil != err {
		return err
	}

	err = trx.WriteRange(key.Bytes(), 0, packed)
	if nil != err {
		return err
	}

	committed = true
	return e.commitAndBroadcast(trx, &Event{
		Key:       key,
		Operation: "create",
		Stage:     record.Stage,
		Caller:    caller,
	})
}
