// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package funding

import (
	"sync"

	"github.com/bitmark-inc/supplychaind/account"
	"github.com/bitmark-inc/supplychaind/fault"
)

// AssetTransfer - movement of the tracked asset
type AssetTransfer struct {
	Sender   account.Address `json:"sender"`
	Receiver account.Address `json:"receiver"`
	AssetId  uint64          `json:"assetId"`
	Amount   uint64          `json:"amount"`
}

// Payment - funding for the storage minimum balance
type Payment struct {
	Sender   account.Address `json:"sender"`
	Receiver account.Address `json:"receiver"`
	Amount   uint64          `json:"amount"`
}

// names of the checks, in the order they are applied
const (
	PaymentMissing   = "payment missing"
	PaymentSender    = "payment sender"
	PaymentReceiver  = "payment receiver"
	TransferMissing  = "transfer missing"
	TransferSender   = "transfer sender"
	TransferReceiver = "transfer receiver"
	TransferAsset    = "transfer asset"
	TransferAmount   = "transfer amount"
	PaymentAmount    = "payment amount"
)

// Validator - decides whether a creation is funded
//
// size is the number of storage bytes the creation will allocate
type Validator interface {
	Validate(caller account.Address, application account.Address, asset uint64, size int, transfer *AssetTransfer, payment *Payment) error
}

// Policy - minimum balance required per allocation
//
// a zero policy disables the payment amount check
type Policy struct {
	Base    uint64 `gluamapper:"base" json:"base"`
	PerByte uint64 `gluamapper:"per_byte" json:"per_byte"`
}

// DefaultPolicy - charges of the reference ledger
var DefaultPolicy = Policy{
	Base:    2500,
	PerByte: 400,
}

// Minimum - balance needed to allocate size bytes
func (p Policy) Minimum(size int) uint64 {
	if size < 0 {
		size = 0
	}
	return p.Base + p.PerByte*uint64(size)
}

// Checker - the Validator used by the daemon
type Checker struct {
	sync.RWMutex
	policy Policy
}

// New - create a checker with an initial policy
func New(policy Policy) *Checker {
	return &Checker{
		policy: policy,
	}
}

// SetPolicy - replace the policy for all later validations
func (c *Checker) SetPolicy(policy Policy) {
	c.Lock()
	c.policy = policy
	c.Unlock()
}

// Policy - the policy currently applied
func (c *Checker) Policy() Policy {
	c.RLock()
	defer c.RUnlock()
	return c.policy
}

// Validate - apply every check in order, stopping at the first failure
func (c *Checker) Validate(caller account.Address, application account.Address, asset uint64, size int, transfer *AssetTransfer, payment *Payment) error {

	if nil == payment {
		return failed(PaymentMissing)
	}
	if payment.Sender != caller {
		return failed(PaymentSender)
	}
	if payment.Receiver != application {
		return failed(PaymentReceiver)
	}

	if nil == transfer {
		return failed(TransferMissing)
	}
	if transfer.Sender != caller {
		return failed(TransferSender)
	}
	if transfer.Receiver != application {
		return failed(TransferReceiver)
	}
	if transfer.AssetId != asset {
		return failed(TransferAsset)
	}
	if 0 == transfer.Amount {
		return failed(TransferAmount)
	}

	policy := c.Policy()
	if (Policy{}) != policy && payment.Amount < policy.Minimum(size) {
		return failed(PaymentAmount)
	}

	return nil
}

func failed(check string) error {
	return &fault.FundingError{Check: check}
}
