// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package supplychain_test

import (
	"errors"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/funding"
	"github.com/bitmark-inc/supplychaind/itemrecord"
	"github.com/bitmark-inc/supplychaind/storage/mocks"
	"github.com/bitmark-inc/supplychaind/supplychain"
)

func setupMockEngine(t *testing.T) (*supplychain.Engine, *mocks.MockStore, *mocks.MockTransaction, *gomock.Controller) {
	ctl := gomock.NewController(t)
	store := mocks.NewMockStore(ctl)
	trx := mocks.NewMockTransaction(ctl)

	engine := supplychain.New(logger.New("supplychain"), store, funding.New(funding.DefaultPolicy), application)
	return engine, store, trx, ctl
}

func stageBytes(stage itemrecord.Stage) []byte {
	b, _ := itemrecord.PackStage(stage)
	return b
}

func TestAllocationFailure(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	engine, store, trx, ctl := setupMockEngine(t)
	defer ctl.Finish()

	key := itemrecord.DeriveKey(farmer, testAsset, 1)

	gomock.InOrder(
		store.EXPECT().Begin().Return(trx, nil),
		trx.EXPECT().Exists(key.Bytes()).Return(false, nil),
		trx.EXPECT().Allocate(key.Bytes(), itemrecord.PackedLength).Return(errors.New("out of space")),
		trx.EXPECT().Abort(),
	)

	transfer, payment := validFunding(farmer)
	_, err := engine.Create(farmer, testAsset, 1, acmeItem(), transfer, payment)
	assert.Equal(t, fault.AllocationFailed, err, "wrong error")
}

func TestCommitFailure(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	engine, store, trx, ctl := setupMockEngine(t)
	defer ctl.Finish()

	key := itemrecord.DeriveKey(farmer, testAsset, 1)
	commitError := errors.New("disk failed")

	gomock.InOrder(
		store.EXPECT().Begin().Return(trx, nil),
		trx.EXPECT().Exists(key.Bytes()).Return(true, nil),
		trx.EXPECT().ReadRange(key.Bytes(), itemrecord.StageField.Offset, itemrecord.StageField.Length).Return(stageBytes(itemrecord.Packed), nil),
		trx.EXPECT().WriteRange(key.Bytes(), itemrecord.StageField.Offset, stageBytes(itemrecord.ForSale)).Return(nil),
		trx.EXPECT().WriteRange(key.Bytes(), itemrecord.PriceField.Offset, gomock.Any()).Return(nil),
		trx.EXPECT().Commit().Return(commitError),
	)

	// no abort after a commit attempt: the store has already released the transaction
	trx.EXPECT().Abort().Times(0)

	err := engine.Sell(farmer, key, 500)
	assert.Equal(t, commitError, err, "commit error not returned")
	assert.Equal(t, supplychain.Statistics{Accepted: 0, Rejected: 1}, engine.Statistics(), "wrong statistics")
}

// a failure on the second write must not commit the first
func TestPartialWriteAborts(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	engine, store, trx, ctl := setupMockEngine(t)
	defer ctl.Finish()

	key := itemrecord.DeriveKey(farmer, testAsset, 1)

	gomock.InOrder(
		store.EXPECT().Begin().Return(trx, nil),
		trx.EXPECT().Exists(key.Bytes()).Return(true, nil),
		trx.EXPECT().ReadRange(key.Bytes(), itemrecord.StageField.Offset, itemrecord.StageField.Length).Return(stageBytes(itemrecord.ForSale), nil),
		trx.EXPECT().WriteRange(key.Bytes(), itemrecord.StageField.Offset, stageBytes(itemrecord.Sold)).Return(nil),
		trx.EXPECT().WriteRange(key.Bytes(), itemrecord.OwnerField.Offset, buyer[:]).Return(fault.BoundsExceeded),
		trx.EXPECT().Abort(),
	)
	trx.EXPECT().Commit().Times(0)

	err := engine.Buy(buyer, key)
	assert.Equal(t, fault.BoundsExceeded, err, "write error not returned")
}

func TestMalformedStage(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	engine, store, trx, ctl := setupMockEngine(t)
	defer ctl.Finish()

	key := itemrecord.DeriveKey(farmer, testAsset, 1)

	gomock.InOrder(
		store.EXPECT().Begin().Return(trx, nil),
		trx.EXPECT().Exists(key.Bytes()).Return(true, nil),
		trx.EXPECT().ReadRange(key.Bytes(), itemrecord.StageField.Offset, itemrecord.StageField.Length).Return([]byte{0, 0, 0, 0, 0, 0, 0, 8}, nil),
		trx.EXPECT().Abort(),
	)

	err := engine.Process(farmer, key)
	assert.True(t, errors.Is(err, fault.MalformedRecord), "bad stage accepted: %v", err)
}

func TestBeginFailure(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	engine, store, _, ctl := setupMockEngine(t)
	defer ctl.Finish()

	store.EXPECT().Begin().Return(nil, fault.DatabaseIsNotSet).Times(2)

	key := itemrecord.DeriveKey(farmer, testAsset, 1)
	assert.Equal(t, fault.DatabaseIsNotSet, engine.Ship(farmer, key), "begin error not returned")

	_, err := engine.Get(key)
	assert.Equal(t, fault.DatabaseIsNotSet, err, "begin error not returned")
}
