// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/supplychaind/command/supplychain-cli/rpccalls"
	"github.com/bitmark-inc/supplychaind/funding"
	"github.com/bitmark-inc/supplychaind/itemrecord"
	"github.com/bitmark-inc/supplychaind/rpc/item"
)

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := checkAccount("caller", c.String("caller"))
	if nil != err {
		return err
	}

	farm := caller
	if "" != c.String("farm") {
		farm, err = checkAccount("farm", c.String("farm"))
		if nil != err {
			return err
		}
	}

	asset := c.Uint64("asset")
	nonce := c.Uint64("nonce")

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	// funding goes to the storage owner
	application := c.String("application")
	if "" == application {
		info, err := client.GetInfo()
		if nil != err {
			return err
		}
		application = info.Application.String()
	}
	receiver, err := checkAccount("application", application)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "caller: %s\n", caller)
		fmt.Fprintf(m.e, "application: %s\n", receiver)
		fmt.Fprintf(m.e, "asset: %d  nonce: %d\n", asset, nonce)
	}

	arguments := &item.CreateArguments{
		Caller: caller,
		Asset:  asset,
		Nonce:  nonce,
		Item: &itemrecord.Item{
			FarmAddress: farm,
			FarmName:    c.String("farm-name"),
			FarmInfo:    c.String("farm-info"),
			Longitude:   c.Uint64("longitude"),
			Latitude:    c.Uint64("latitude"),
			ProductNote: c.String("note"),
			Stage:       itemrecord.Harvested,
		},
		Transfer: &funding.AssetTransfer{
			Sender:   caller,
			Receiver: receiver,
			AssetId:  asset,
			Amount:   c.Uint64("transfer-amount"),
		},
		Payment: &funding.Payment{
			Sender:   caller,
			Receiver: receiver,
			Amount:   c.Uint64("payment-amount"),
		},
	}

	reply, err := client.Create(arguments)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
