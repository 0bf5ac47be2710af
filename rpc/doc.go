// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - client access to the item records
//
// JSON RPC over TLS serves the Item and Node services, and an
// optional HTTPS server offers the same RPC calls by POST plus some
// GET endpoints:
//
//	POST /supplychain/rpc
//	GET  /supplychain/items/{key}
//	GET  /supplychain/details      (CIDR allow list: "details")
package rpc
