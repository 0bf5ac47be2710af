// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/supplychaind/command/supplychain-cli/rpccalls"
)

// shared by all the stage advancing commands
func runTransition(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	operation := c.Command.Name
	if !rpccalls.IsTransition(operation) {
		return fmt.Errorf("unknown operation: %q", operation)
	}

	caller, err := checkAccount("caller", c.String("caller"))
	if nil != err {
		return err
	}

	key, err := checkKey(c.String("key"))
	if nil != err {
		return err
	}

	price := c.Uint64("price")

	if m.verbose {
		fmt.Fprintf(m.e, "operation: %s\n", operation)
		fmt.Fprintf(m.e, "caller: %s\n", caller)
		fmt.Fprintf(m.e, "key: %s\n", key)
		if "sell" == operation {
			fmt.Fprintf(m.e, "price: %d\n", price)
		}
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Transition(operation, caller, key, price)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
