// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/counter"
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/rpc/certificate"
	"github.com/bitmark-inc/supplychaind/rpc/handler"
	"github.com/bitmark-inc/supplychaind/rpc/listeners"
	"github.com/bitmark-inc/supplychaind/rpc/server"
)

const (
	rpcName   = "client_rpc"
	httpsName = "https_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listeners []listeners.Listener

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// connection count shared by both servers
var connectionCount counter.Counter

// Initialise - start the RPC and HTTPS servers
//
// publicKey supplies the event publisher key for Node.Info and may be nil
func Initialise(rpcConfiguration *listeners.RPCConfiguration, httpsConfiguration *listeners.HTTPSConfiguration, version string, engine server.Engine, publicKey func() []byte) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	rpcServer, info := server.Create(log, version, &connectionCount, engine, publicKey)

	tlsConfig, fingerprint, err := certificate.Load(log, rpcName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCount,
		rpcServer,
		tlsConfig,
		fingerprint,
	)
	if nil != err {
		return err
	}

	started := []listeners.Listener{rpcListener}
	stop := func() {
		for _, l := range started {
			_ = l.Close()
		}
	}

	err = rpcListener.Serve()
	if nil != err {
		stop()
		return err
	}

	if 0 != len(httpsConfiguration.Listen) {
		httpsTLS, httpsFingerprint, err := certificate.Load(log, httpsName, httpsConfiguration.Certificate, httpsConfiguration.PrivateKey)
		if nil != err {
			stop()
			return err
		}
		log.Infof("%s: SHA3-256 fingerprint: %s", httpsName, httpsFingerprint)

		hdlr := handler.New(log, rpcServer, engine, info, &connectionCount, httpsConfiguration.MaximumConnections)
		httpsListener, err := listeners.NewHTTPS(httpsConfiguration, log, httpsTLS, hdlr)
		if nil != err {
			stop()
			return err
		}

		err = httpsListener.Serve()
		started = append(started, httpsListener)
		if nil != err {
			stop()
			return err
		}
	}

	globalData.listeners = started

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all servers
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	for _, l := range globalData.listeners {
		err := l.Close()
		if nil != err {
			globalData.log.Errorf("close error: %s", err)
		}
	}
	globalData.listeners = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
