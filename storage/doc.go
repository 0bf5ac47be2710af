// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk item store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// All writes go through a Transaction: a LevelDB batch with a cache
// overlay so that reads inside the transaction see its own pending
// writes.  Only one transaction can be open at a time, Begin waits
// for the current holder to Commit or Abort.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. creator      = account address (32 byte public key)
// 4. asset        = big endian uint64 (8 bytes)
// 5. nonce        = big endian uint64 (8 bytes)
// 6. *others*     = byte values of various length
//
// Records:
//
//	R ++ creator ++ asset ++ nonce  - item record
//	                                  data: fixed size packed item
//
// Testing:
//
//	Z ++ key                        - testing data
package storage
