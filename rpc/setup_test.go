// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"net/rpc/jsonrpc"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/account"
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/rpc"
	"github.com/bitmark-inc/supplychaind/rpc/certificate"
	"github.com/bitmark-inc/supplychaind/rpc/fixtures"
	"github.com/bitmark-inc/supplychaind/rpc/listeners"
	"github.com/bitmark-inc/supplychaind/rpc/node"
	"github.com/bitmark-inc/supplychaind/supplychain"
)

func TestInitialiseFinalise(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	certificateFile := filepath.Join(fixtures.Directory(), "rpc.crt")
	keyFile := filepath.Join(fixtures.Directory(), "rpc.key")
	err := certificate.MakeSelfSigned("test", certificateFile, keyFile, false, []string{"127.0.0.1"})
	if nil != err {
		t.Fatalf("make certificate error: %s", err)
	}

	listen := fmt.Sprintf("127.0.0.1:%d", rand.Intn(30000)+30000)
	rpcConfiguration := &listeners.RPCConfiguration{
		MaximumConnections: 2,
		Listen:             []string{listen},
		Certificate:        certificateFile,
		PrivateKey:         keyFile,
	}
	httpsConfiguration := &listeners.HTTPSConfiguration{}

	application := account.Address{0xaa, 0x01}
	engine := supplychain.New(logger.New(fixtures.LogCategory), nil, nil, application)

	err = rpc.Initialise(rpcConfiguration, httpsConfiguration, "v1", engine, nil)
	if !assert.Nil(t, err, "initialise error") {
		return
	}

	err = rpc.Initialise(rpcConfiguration, httpsConfiguration, "v1", engine, nil)
	assert.Equal(t, fault.AlreadyInitialised, err, "second initialise allowed")

	conn, err := tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	if assert.Nil(t, err, "dial error") {
		client := jsonrpc.NewClient(conn)
		var reply node.InfoReply
		err = client.Call("Node.Info", node.InfoArguments{}, &reply)
		assert.Nil(t, err, "Node.Info error")
		assert.Equal(t, application, reply.Application, "wrong application")
		assert.Equal(t, "v1", reply.Version, "wrong version")
		client.Close()
	}

	assert.Nil(t, rpc.Finalise(), "finalise error")
	assert.Equal(t, fault.NotInitialised, rpc.Finalise(), "second finalise allowed")
}

func TestInitialiseMissingCertificate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	rpcConfiguration := &listeners.RPCConfiguration{
		MaximumConnections: 2,
		Listen:             []string{"127.0.0.1:2130"},
		Certificate:        filepath.Join(fixtures.Directory(), "none.crt"),
		PrivateKey:         filepath.Join(fixtures.Directory(), "none.key"),
	}
	engine := supplychain.New(logger.New(fixtures.LogCategory), nil, nil, account.Address{})

	err := rpc.Initialise(rpcConfiguration, &listeners.HTTPSConfiguration{}, "v1", engine, nil)
	assert.Equal(t, fault.MissingParameters, err, "missing certificate accepted")
}
