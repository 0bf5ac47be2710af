// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/counter"
	"github.com/bitmark-inc/supplychaind/rpc/item"
	"github.com/bitmark-inc/supplychaind/rpc/node"
)

// Engine - everything the RPC services need from the engine
type Engine interface {
	item.Engine
	node.Source
}

// Create - an RPC server with all services registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, engine Engine, publicKey func() []byte) (*rpc.Server, *node.Node) {

	start := time.Now().UTC()

	n := node.New(log, start, version, rpcCount, engine, publicKey)

	server := rpc.NewServer()

	_ = server.Register(item.New(log, engine))
	_ = server.Register(n)

	return server, n
}
