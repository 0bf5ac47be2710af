// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package item

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/account"
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/funding"
	"github.com/bitmark-inc/supplychaind/itemrecord"
	"github.com/bitmark-inc/supplychaind/rpc/ratelimit"
)

const (
	rateLimitItem = 200
	rateBurstItem = 100
)

// Engine - the item operations served by RPC
type Engine interface {
	Create(account.Address, uint64, uint64, *itemrecord.Item, *funding.AssetTransfer, *funding.Payment) (itemrecord.Key, error)
	Apply(string, account.Address, itemrecord.Key, uint64) error
	Get(itemrecord.Key) (*itemrecord.Item, error)
	GetField(itemrecord.Key, string) (uint64, error)
}

// Item - type for the RPC
type Item struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Engine  Engine
}

// New - create item RPC handler
func New(log *logger.L, engine Engine) *Item {
	return &Item{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitItem, rateBurstItem),
		Engine:  engine,
	}
}

// CreateArguments - arguments for RPC
type CreateArguments struct {
	Caller   account.Address        `json:"caller"`
	Asset    uint64                 `json:"asset,string"`
	Nonce    uint64                 `json:"nonce,string"`
	Item     *itemrecord.Item       `json:"item"`
	Transfer *funding.AssetTransfer `json:"transfer"`
	Payment  *funding.Payment       `json:"payment"`
}

// CreateReply - result from RPC
type CreateReply struct {
	Key itemrecord.Key `json:"key"`
}

// Create - register a newly harvested item
func (it *Item) Create(arguments *CreateArguments, reply *CreateReply) error {

	if err := ratelimit.Limit(it.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Item {
		return fault.MissingParameters
	}

	it.Log.Infof("Item.Create: caller: %s  asset: %d  nonce: %d", arguments.Caller, arguments.Asset, arguments.Nonce)

	key, err := it.Engine.Create(arguments.Caller, arguments.Asset, arguments.Nonce, arguments.Item, arguments.Transfer, arguments.Payment)
	if nil != err {
		return err
	}

	reply.Key = key
	return nil
}

// TransitionArguments - arguments for all stage advancing RPCs
//
// price is only used by Sell
type TransitionArguments struct {
	Caller account.Address `json:"caller"`
	Key    itemrecord.Key  `json:"key"`
	Price  uint64          `json:"price,string"`
}

// TransitionReply - result from RPC
type TransitionReply struct {
	Key       itemrecord.Key `json:"key"`
	Operation string         `json:"operation"`
}

// Process - Harvested → Processed
func (it *Item) Process(arguments *TransitionArguments, reply *TransitionReply) error {
	return it.transition("process", arguments, reply)
}

// Pack - Processed → Packed
func (it *Item) Pack(arguments *TransitionArguments, reply *TransitionReply) error {
	return it.transition("pack", arguments, reply)
}

// Sell - Packed → ForSale at the given price
func (it *Item) Sell(arguments *TransitionArguments, reply *TransitionReply) error {
	return it.transition("sell", arguments, reply)
}

// Buy - ForSale → Sold
func (it *Item) Buy(arguments *TransitionArguments, reply *TransitionReply) error {
	return it.transition("buy", arguments, reply)
}

// Ship - Sold → Shipped
func (it *Item) Ship(arguments *TransitionArguments, reply *TransitionReply) error {
	return it.transition("ship", arguments, reply)
}

// Receive - Shipped → Received
func (it *Item) Receive(arguments *TransitionArguments, reply *TransitionReply) error {
	return it.transition("receive", arguments, reply)
}

// Purchase - Received → Purchased
func (it *Item) Purchase(arguments *TransitionArguments, reply *TransitionReply) error {
	return it.transition("purchase", arguments, reply)
}

func (it *Item) transition(operation string, arguments *TransitionArguments, reply *TransitionReply) error {

	if err := ratelimit.Limit(it.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.MissingParameters
	}

	it.Log.Infof("Item.%s: key: %s  caller: %s", operation, arguments.Key, arguments.Caller)

	err := it.Engine.Apply(operation, arguments.Caller, arguments.Key, arguments.Price)
	if nil != err {
		return err
	}

	reply.Key = arguments.Key
	reply.Operation = operation
	return nil
}

// GetArguments - arguments for RPC
type GetArguments struct {
	Key itemrecord.Key `json:"key"`
}

// GetReply - result from RPC
type GetReply struct {
	Key  itemrecord.Key   `json:"key"`
	Item *itemrecord.Item `json:"item"`
}

// Get - the whole decoded record
func (it *Item) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(it.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.MissingParameters
	}

	it.Log.Debugf("Item.Get: key: %s", arguments.Key)

	item, err := it.Engine.Get(arguments.Key)
	if nil != err {
		return err
	}

	reply.Key = arguments.Key
	reply.Item = item
	return nil
}

// FieldArguments - arguments for RPC
type FieldArguments struct {
	Key   itemrecord.Key `json:"key"`
	Field string         `json:"field"`
}

// FieldReply - result from RPC
type FieldReply struct {
	Field string `json:"field"`
	Value uint64 `json:"value,string"`
}

// Field - a single integer field of the record
func (it *Item) Field(arguments *FieldArguments, reply *FieldReply) error {

	if err := ratelimit.Limit(it.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.MissingParameters
	}

	value, err := it.Engine.GetField(arguments.Key, arguments.Field)
	if nil != err {
		return err
	}

	reply.Field = arguments.Field
	reply.Value = value
	return nil
}
