// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server_test

import (
	"net"
	"net/rpc/jsonrpc"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/account"
	"github.com/bitmark-inc/supplychaind/counter"
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/rpc/fixtures"
	"github.com/bitmark-inc/supplychaind/rpc/item"
	"github.com/bitmark-inc/supplychaind/rpc/node"
	"github.com/bitmark-inc/supplychaind/rpc/server"
	"github.com/bitmark-inc/supplychaind/supplychain"
)

func TestCreate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	application := account.Address{0xaa, 0x01}
	engine := supplychain.New(logger.New(fixtures.LogCategory), nil, nil, application)

	var c counter.Counter
	s, n := server.Create(logger.New(fixtures.LogCategory), "1.0", &c, engine, nil)
	assert.Equal(t, "1.0", n.Version, "wrong node version")

	serverConn, clientConn := net.Pipe()
	go s.ServeCodec(jsonrpc.NewServerCodec(serverConn))

	client := jsonrpc.NewClient(clientConn)
	defer client.Close()

	var info node.InfoReply
	err := client.Call("Node.Info", node.InfoArguments{}, &info)
	assert.Nil(t, err, "Node.Info error")
	assert.Equal(t, application, info.Application, "wrong application")
	assert.Equal(t, "1.0", info.Version, "wrong version")

	var reply item.CreateReply
	err = client.Call("Item.Create", item.CreateArguments{}, &reply)
	assert.NotNil(t, err, "create without item accepted")
	assert.Equal(t, fault.MissingParameters.Error(), err.Error(), "wrong error")
}
