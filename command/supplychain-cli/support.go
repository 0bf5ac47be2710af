// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/supplychaind/account"
	"github.com/bitmark-inc/supplychaind/itemrecord"
)

func checkAccount(name string, s string) (account.Address, error) {
	if "" == s {
		return account.Zero, fmt.Errorf("%s account is required", name)
	}
	a, err := account.FromBase58(s)
	if nil != err {
		return account.Zero, fmt.Errorf("%s account: %q  error: %s", name, s, err)
	}
	return a, nil
}

func checkKey(s string) (itemrecord.Key, error) {
	if "" == s {
		return itemrecord.Key{}, fmt.Errorf("item key is required")
	}
	key, err := itemrecord.KeyFromString(s)
	if nil != err {
		return itemrecord.Key{}, fmt.Errorf("item key: %q  error: %s", s, err)
	}
	return key, nil
}
