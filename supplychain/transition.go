// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package supplychain

import (
	"github.com/bitmark-inc/supplychaind/account"
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/itemrecord"
)

// a forward move of one stage
type transition struct {
	operation string
	requires  itemrecord.Stage
	setPrice  bool
	setOwner  bool
}

// produced stage is always requires.Next()
var (
	processTransition  = transition{operation: "process", requires: itemrecord.Harvested}
	packTransition     = transition{operation: "pack", requires: itemrecord.Processed}
	sellTransition     = transition{operation: "sell", requires: itemrecord.Packed, setPrice: true}
	buyTransition      = transition{operation: "buy", requires: itemrecord.ForSale, setOwner: true}
	shipTransition     = transition{operation: "ship", requires: itemrecord.Sold}
	receiveTransition  = transition{operation: "receive", requires: itemrecord.Shipped, setOwner: true}
	purchaseTransition = transition{operation: "purchase", requires: itemrecord.Received, setOwner: true}
)

// Process - Harvested → Processed
func (e *Engine) Process(caller account.Address, key itemrecord.Key) error {
	return e.advance(processTransition, caller, key, 0)
}

// Pack - Processed → Packed
func (e *Engine) Pack(caller account.Address, key itemrecord.Key) error {
	return e.advance(packTransition, caller, key, 0)
}

// Sell - Packed → ForSale, recording the asking price
func (e *Engine) Sell(caller account.Address, key itemrecord.Key, price uint64) error {
	return e.advance(sellTransition, caller, key, price)
}

// Buy - ForSale → Sold, the caller becomes owner
func (e *Engine) Buy(caller account.Address, key itemrecord.Key) error {
	return e.advance(buyTransition, caller, key, 0)
}

// Ship - Sold → Shipped
func (e *Engine) Ship(caller account.Address, key itemrecord.Key) error {
	return e.advance(shipTransition, caller, key, 0)
}

// Receive - Shipped → Received, the caller becomes owner
func (e *Engine) Receive(caller account.Address, key itemrecord.Key) error {
	return e.advance(receiveTransition, caller, key, 0)
}

// Purchase - Received → Purchased, the caller becomes owner
func (e *Engine) Purchase(caller account.Address, key itemrecord.Key) error {
	return e.advance(purchaseTransition, caller, key, 0)
}

// Apply - run a non-create operation by name
//
// price is only used by sell
func (e *Engine) Apply(operation string, caller account.Address, key itemrecord.Key, price uint64) error {
	for _, t := range []transition{
		processTransition,
		packTransition,
		sellTransition,
		buyTransition,
		shipTransition,
		receiveTransition,
		purchaseTransition,
	} {
		if t.operation == operation {
			return e.advance(t, caller, key, price)
		}
	}
	return fault.InvalidOperation
}

func (e *Engine) advance(t transition, caller account.Address, key itemrecord.Key, price uint64) error {
	ev, err := e.apply(t, caller, key, price)
	if nil != err {
		e.log.Debugf("%s: %s  error: %s", t.operation, key, err)
		return e.count(err)
	}

	e.log.Infof("%s: %s  stage: %s", t.operation, key, ev.Stage)
	return e.count(nil)
}

// check and write inside one transaction, the event is sent on commit
func (e *Engine) apply(t transition, caller account.Address, key itemrecord.Key, price uint64) (*Event, error) {
	trx, err := e.store.Begin()
	if nil != err {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			trx.Abort()
		}
	}()

	found, err := trx.Exists(key.Bytes())
	if nil != err {
		return nil, err
	}
	if !found {
		return nil, fault.RecordNotFound
	}

	buffer, err := trx.ReadRange(key.Bytes(), itemrecord.StageField.Offset, itemrecord.StageField.Length)
	if nil != err {
		return nil, err
	}
	current, err := itemrecord.UnpackStage(buffer)
	if nil != err {
		return nil, err
	}
	if t.requires != current {
		return nil, &fault.InvalidTransitionError{
			Expected: t.requires.String(),
			Actual:   current.String(),
		}
	}

	next, _ := current.Next()

	ev := &Event{
		Key:       key,
		Operation: t.operation,
		Stage:     next,
		Caller:    caller,
	}

	stage, err := itemrecord.PackStage(next)
	if nil != err {
		return nil, err
	}
	err = trx.WriteRange(key.Bytes(), itemrecord.StageField.Offset, stage)
	if nil != err {
		return nil, err
	}

	if t.setPrice {
		b, err := itemrecord.PackUint64(itemrecord.PriceField, price)
		if nil != err {
			return nil, err
		}
		err = trx.WriteRange(key.Bytes(), itemrecord.PriceField.Offset, b)
		if nil != err {
			return nil, err
		}
		ev.Price = price
	}

	if t.setOwner {
		b, err := itemrecord.PackAddress(itemrecord.OwnerField, caller)
		if nil != err {
			return nil, err
		}
		err = trx.WriteRange(key.Bytes(), itemrecord.OwnerField.Offset, b)
		if nil != err {
			return nil, err
		}
		ev.Owner = caller
	}

	committed = true
	err = e.commitAndBroadcast(trx, ev)
	if nil != err {
		return nil, err
	}
	return ev, nil
}
