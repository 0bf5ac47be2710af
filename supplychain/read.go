// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package supplychain

import (
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/itemrecord"
)

// Get - the full decoded record
func (e *Engine) Get(key itemrecord.Key) (*itemrecord.Item, error) {
	packed, err := e.GetPacked(key)
	if nil != err {
		return nil, err
	}
	return packed.Unpack()
}

// GetPacked - the record exactly as stored
func (e *Engine) GetPacked(key itemrecord.Key) (itemrecord.PackedItem, error) {
	buffer, err := e.read(key, 0, itemrecord.PackedLength)
	if nil != err {
		return nil, err
	}
	return itemrecord.PackedItem(buffer), nil
}

// GetField - the value of one integer field
func (e *Engine) GetField(key itemrecord.Key, name string) (uint64, error) {
	f, err := itemrecord.FieldByName(name)
	if nil != err {
		return 0, err
	}
	if itemrecord.IntegerKind != f.Kind {
		return 0, fault.InvalidField
	}

	buffer, err := e.read(key, f.Offset, f.Length)
	if nil != err {
		return 0, err
	}
	if itemrecord.StageField == f {
		stage, err := itemrecord.UnpackStage(buffer)
		return uint64(stage), err
	}
	return itemrecord.UnpackUint64(f, buffer)
}

// reads never write so the transaction is always aborted
func (e *Engine) read(key itemrecord.Key, offset int, length int) ([]byte, error) {
	trx, err := e.store.Begin()
	if nil != err {
		return nil, err
	}
	defer trx.Abort()

	found, err := trx.Exists(key.Bytes())
	if nil != err {
		return nil, err
	}
	if !found {
		return nil, fault.RecordNotFound
	}

	return trx.ReadRange(key.Bytes(), offset, length)
}
