// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package supplychain - the item lifecycle
//
// An item is created Harvested and then moves forward one stage per
// accepted operation:
//
//	operation  requires   produces   also writes
//	---------  ---------  ---------  -------------
//	create     (absent)   Harvested  full record
//	process    Harvested  Processed
//	pack       Processed  Packed
//	sell       Packed     ForSale    price
//	buy        ForSale    Sold       owner
//	ship       Sold       Shipped
//	receive    Shipped    Received   owner
//	purchase   Received   Purchased  owner
//
// Each operation runs inside one storage transaction: the stage check
// and every write are committed together or not at all.  A "stage"
// event is broadcast on the message bus after each commit.
package supplychain
