// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/supplychaind/account"
	"github.com/bitmark-inc/supplychaind/itemrecord"
)

type generateReply struct {
	Account    account.Address `json:"account"`
	PublicKey  string          `json:"publicKey"`
	PrivateKey string          `json:"privateKey"`
}

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return err
	}

	a, err := account.FromPublicKey(publicKey)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "account: %s\n", a)
	}

	printJson(m.w, generateReply{
		Account:    a,
		PublicKey:  hex.EncodeToString(publicKey),
		PrivateKey: hex.EncodeToString(privateKey),
	})
	return nil
}

type keyReply struct {
	Key     itemrecord.Key  `json:"key"`
	Creator account.Address `json:"creator"`
	Asset   uint64          `json:"asset"`
	Nonce   uint64          `json:"nonce"`
}

func runKey(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	creator, err := checkAccount("creator", c.String("creator"))
	if nil != err {
		return err
	}

	asset := c.Uint64("asset")
	nonce := c.Uint64("nonce")

	printJson(m.w, keyReply{
		Key:     itemrecord.DeriveKey(creator, asset, nonce),
		Creator: creator,
		Asset:   asset,
		Nonce:   nonce,
	})
	return nil
}
