// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"encoding/hex"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/account"
	"github.com/bitmark-inc/supplychaind/counter"
	"github.com/bitmark-inc/supplychaind/messagebus"
	"github.com/bitmark-inc/supplychaind/rpc/ratelimit"
	"github.com/bitmark-inc/supplychaind/supplychain"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Source - where the operation statistics come from
type Source interface {
	Application() account.Address
	Statistics() supplychain.Statistics
}

// Node - type for RPC calls
type Node struct {
	Log       *logger.L
	Limiter   *rate.Limiter
	Start     time.Time
	Version   string
	Source    Source
	PublicKey func() []byte
	counter   *counter.Counter
}

// New - create node RPC handler
//
// publicKey may be nil when publishing is disabled
func New(log *logger.L, start time.Time, version string, counter *counter.Counter, source Source, publicKey func() []byte) *Node {
	return &Node{
		Log:       log,
		Limiter:   rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:     start,
		Version:   version,
		Source:    source,
		PublicKey: publicKey,
		counter:   counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Application account.Address        `json:"application"`
	Operations  supplychain.Statistics `json:"operations"`
	RPCs        uint64                 `json:"rpcs"`
	Dropped     uint64                 `json:"droppedEvents"`
	Version     string                 `json:"version"`
	Uptime      string                 `json:"uptime"`
	PublicKey   string                 `json:"publicKey"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	node.Fill(reply)
	return nil
}

// Fill - the info reply without rate limiting, for HTTP details
func (node *Node) Fill(reply *InfoReply) {
	reply.Application = node.Source.Application()
	reply.Operations = node.Source.Statistics()
	reply.RPCs = node.counter.Uint64()
	reply.Dropped = messagebus.Bus.Broadcast.Dropped()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	if nil != node.PublicKey {
		reply.PublicKey = hex.EncodeToString(node.PublicKey())
	}
}
