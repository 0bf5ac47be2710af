// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/supplychaind/account"
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/itemrecord"
	"github.com/bitmark-inc/supplychaind/rpc/item"
)

// RPC method for each stage advancing operation
var transitionMethods = map[string]string{
	"process":  "Item.Process",
	"pack":     "Item.Pack",
	"sell":     "Item.Sell",
	"buy":      "Item.Buy",
	"ship":     "Item.Ship",
	"receive":  "Item.Receive",
	"purchase": "Item.Purchase",
}

// IsTransition - true if the operation name has an RPC
func IsTransition(operation string) bool {
	_, ok := transitionMethods[operation]
	return ok
}

// Create - register a new item
func (c *Client) Create(arguments *item.CreateArguments) (*item.CreateReply, error) {

	c.printJson("Create Request", arguments)

	var reply item.CreateReply
	if err := c.client.Call("Item.Create", arguments, &reply); nil != err {
		return nil, err
	}

	c.printJson("Create Reply", reply)

	return &reply, nil
}

// Transition - advance an item by one stage
func (c *Client) Transition(operation string, caller account.Address, key itemrecord.Key, price uint64) (*item.TransitionReply, error) {

	method, ok := transitionMethods[operation]
	if !ok {
		return nil, fault.InvalidOperation
	}

	arguments := item.TransitionArguments{
		Caller: caller,
		Key:    key,
		Price:  price,
	}

	c.printJson(method+" Request", arguments)

	var reply item.TransitionReply
	if err := c.client.Call(method, arguments, &reply); nil != err {
		return nil, err
	}

	c.printJson(method+" Reply", reply)

	return &reply, nil
}

// Get - fetch a decoded item
func (c *Client) Get(key itemrecord.Key) (*item.GetReply, error) {

	var reply item.GetReply
	if err := c.client.Call("Item.Get", item.GetArguments{Key: key}, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// Field - fetch one integer field of an item
func (c *Client) Field(key itemrecord.Key, field string) (*item.FieldReply, error) {

	arguments := item.FieldArguments{
		Key:   key,
		Field: field,
	}

	var reply item.FieldReply
	if err := c.client.Call("Item.Field", arguments, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}
