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

func runGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkKey(c.String("key"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Get(key)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runField(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkKey(c.String("key"))
	if nil != err {
		return err
	}

	name := c.String("name")
	if "" == name {
		return fmt.Errorf("field name is required")
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Field(key, name)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetInfo()
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
