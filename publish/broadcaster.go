// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/messagebus"
	"github.com/bitmark-inc/supplychaind/util"
	"github.com/bitmark-inc/supplychaind/zmqutil"
)

const (
	broadcasterZapDomain = "broadcaster"
	heartbeatCommand     = "heart"
	queueSize            = 1000
)

// a heartbeat goes out once the queue has been idle this long
var heartbeatInterval = 60 * time.Second

type broadcaster struct {
	log     *logger.L
	version string
	queue   <-chan messagebus.Message
	socket4 *zmq.Socket
	socket6 *zmq.Socket
}

// bind the sockets and start listening to the bus
func (brdc *broadcaster) initialise(log *logger.L, privateKey []byte, publicKey []byte, broadcast []string, version string) error {
	brdc.log = log
	brdc.version = version

	if 0 == len(broadcast) {
		return fault.MissingParameters
	}

	connections, err := util.NewConnections(broadcast)
	if nil != err {
		log.Errorf("broadcast addresses: %v  error: %s", broadcast, err)
		return err
	}

	err = zmqutil.StartAuthentication()
	if nil != err {
		return err
	}

	brdc.socket4, brdc.socket6, err = zmqutil.NewBind(log, zmq.PUB, broadcasterZapDomain, privateKey, publicKey, connections)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return err
	}

	brdc.queue = messagebus.Bus.Broadcast.Chan(queueSize)
	return nil
}

// Run - forward bus messages until shutdown
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {

	log := brdc.log

	log.Info("starting…")

	defer func() {
		if nil != brdc.socket4 {
			brdc.socket4.Close()
		}
		if nil != brdc.socket6 {
			brdc.socket6.Close()
		}
		log.Info("stopped")
	}()

	delay := time.After(heartbeatInterval)
loop:
	for {
		select {
		case <-shutdown:
			break loop

		case item, ok := <-brdc.queue:
			if !ok {
				break loop
			}
			log.Debugf("sending: %s", item.Command)
			brdc.send(item.Command, item.Parameters...)
			delay = time.After(heartbeatInterval)

		case <-delay:
			delay = time.After(heartbeatInterval)
			timestamp := make([]byte, 8)
			binary.BigEndian.PutUint64(timestamp, uint64(time.Now().Unix()))
			brdc.send(heartbeatCommand, []byte(brdc.version), timestamp)
		}
	}
}

// send one multipart message on every socket
func (brdc *broadcaster) send(command string, parameters ...[]byte) {
	for _, socket := range []*zmq.Socket{brdc.socket4, brdc.socket6} {
		if nil == socket {
			continue
		}

		message := make([]interface{}, 0, 1+len(parameters))
		message = append(message, command)
		for _, p := range parameters {
			message = append(message, p)
		}

		_, err := socket.SendMessageDontwait(message...)
		if nil != err {
			brdc.log.Errorf("send: %s  error: %s", command, err)
		}
	}
}
