// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package funding_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/supplychaind/account"
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/funding"
)

const (
	testAsset = 31566704
	testSize  = 240
)

var (
	caller      = account.Address{1}
	application = account.Address{2}
	stranger    = account.Address{3}
)

func validPayment() *funding.Payment {
	return &funding.Payment{
		Sender:   caller,
		Receiver: application,
		Amount:   funding.DefaultPolicy.Minimum(testSize),
	}
}

func validTransfer() *funding.AssetTransfer {
	return &funding.AssetTransfer{
		Sender:   caller,
		Receiver: application,
		AssetId:  testAsset,
		Amount:   1,
	}
}

func checkName(t *testing.T, err error) string {
	var f *fault.FundingError
	if !errors.As(err, &f) {
		t.Fatalf("not a funding error: %v", err)
	}
	return f.Check
}

func TestValid(t *testing.T) {
	c := funding.New(funding.DefaultPolicy)
	err := c.Validate(caller, application, testAsset, testSize, validTransfer(), validPayment())
	assert.Nil(t, err, "valid funding rejected")
}

func TestChecks(t *testing.T) {
	tests := []struct {
		expected string
		modify   func(*funding.AssetTransfer, *funding.Payment) (*funding.AssetTransfer, *funding.Payment)
	}{
		{funding.PaymentMissing, func(x *funding.AssetTransfer, p *funding.Payment) (*funding.AssetTransfer, *funding.Payment) {
			return x, nil
		}},
		{funding.PaymentSender, func(x *funding.AssetTransfer, p *funding.Payment) (*funding.AssetTransfer, *funding.Payment) {
			p.Sender = stranger
			return x, p
		}},
		{funding.PaymentReceiver, func(x *funding.AssetTransfer, p *funding.Payment) (*funding.AssetTransfer, *funding.Payment) {
			p.Receiver = caller
			return x, p
		}},
		{funding.TransferMissing, func(x *funding.AssetTransfer, p *funding.Payment) (*funding.AssetTransfer, *funding.Payment) {
			return nil, p
		}},
		{funding.TransferSender, func(x *funding.AssetTransfer, p *funding.Payment) (*funding.AssetTransfer, *funding.Payment) {
			x.Sender = application
			return x, p
		}},
		{funding.TransferReceiver, func(x *funding.AssetTransfer, p *funding.Payment) (*funding.AssetTransfer, *funding.Payment) {
			x.Receiver = stranger
			return x, p
		}},
		{funding.TransferAsset, func(x *funding.AssetTransfer, p *funding.Payment) (*funding.AssetTransfer, *funding.Payment) {
			x.AssetId += 1
			return x, p
		}},
		{funding.TransferAmount, func(x *funding.AssetTransfer, p *funding.Payment) (*funding.AssetTransfer, *funding.Payment) {
			x.Amount = 0
			return x, p
		}},
		{funding.PaymentAmount, func(x *funding.AssetTransfer, p *funding.Payment) (*funding.AssetTransfer, *funding.Payment) {
			p.Amount -= 1
			return x, p
		}},
	}

	c := funding.New(funding.DefaultPolicy)
	for i, test := range tests {
		transfer, payment := test.modify(validTransfer(), validPayment())
		err := c.Validate(caller, application, testAsset, testSize, transfer, payment)
		assert.True(t, fault.IsErrFunding(err), "%d: not a funding error: %v", i, err)
		assert.Equal(t, test.expected, checkName(t, err), "%d: wrong check", i)
	}
}

// with several defects only the first check is reported
func TestCheckOrder(t *testing.T) {
	c := funding.New(funding.DefaultPolicy)

	transfer := validTransfer()
	transfer.Amount = 0
	payment := validPayment()
	payment.Receiver = stranger

	err := c.Validate(caller, application, testAsset, testSize, transfer, payment)
	assert.Equal(t, funding.PaymentReceiver, checkName(t, err), "wrong first check")
}

func TestPolicy(t *testing.T) {
	assert.Equal(t, uint64(2500+400*240), funding.DefaultPolicy.Minimum(240), "wrong minimum")

	c := funding.New(funding.DefaultPolicy)
	payment := validPayment()
	payment.Amount = 0

	err := c.Validate(caller, application, testAsset, testSize, validTransfer(), payment)
	assert.Equal(t, funding.PaymentAmount, checkName(t, err), "unfunded payment accepted")

	c.SetPolicy(funding.Policy{})
	assert.Equal(t, funding.Policy{}, c.Policy(), "policy not replaced")

	err = c.Validate(caller, application, testAsset, testSize, validTransfer(), payment)
	assert.Nil(t, err, "disabled policy still checks amount")

	c.SetPolicy(funding.Policy{Base: 10})
	payment.Amount = 10
	err = c.Validate(caller, application, testAsset, testSize, validTransfer(), payment)
	assert.Nil(t, err, "base only policy rejected exact amount")
}
