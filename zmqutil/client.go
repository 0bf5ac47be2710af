// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"crypto/rand"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/util"
)

const (
	identifierSize = 32
)

// Client - a CURVE client connection, usually zmq.SUB
type Client struct {
	publicKey       []byte
	privateKey      []byte
	serverPublicKey []byte
	address         string
	v6              bool
	socketType      zmq.Type
	socket          *zmq.Socket
	timeout         time.Duration
}

// NewClient - create an unconnected client
//
// a zero timeout waits forever
func NewClient(socketType zmq.Type, privateKey []byte, publicKey []byte, timeout time.Duration) (*Client, error) {
	if publicKeySize != len(publicKey) {
		return nil, fault.InvalidPublicKeyFile
	}
	if privateKeySize != len(privateKey) {
		return nil, fault.InvalidPrivateKeyFile
	}

	client := &Client{
		publicKey:       make([]byte, publicKeySize),
		privateKey:      make([]byte, privateKeySize),
		serverPublicKey: make([]byte, publicKeySize),
		socketType:      socketType,
		timeout:         timeout,
	}
	copy(client.privateKey, privateKey)
	copy(client.publicKey, publicKey)
	return client, nil
}

// create a socket and connect to the server
func (client *Client) openSocket() error {
	socket, err := zmq.NewSocket(client.socketType)
	if nil != err {
		return err
	}

	// local identity is a random value
	randomIdBytes := make([]byte, identifierSize)
	_, err = rand.Read(randomIdBytes)
	if nil != err {
		socket.Close()
		return err
	}

	settings := []func() error{
		func() error { return socket.SetCurveServer(0) },
		func() error { return socket.SetCurvePublickey(string(client.publicKey)) },
		func() error { return socket.SetCurveSecretkey(string(client.privateKey)) },
		func() error { return socket.SetIdentity(string(randomIdBytes)) },
		func() error { return socket.SetCurveServerkey(string(client.serverPublicKey)) },
		func() error { return socket.SetLinger(0) },
		func() error { return heartbeat(socket) },
		func() error { return socket.SetIpv6(client.v6) },
	}
	if 0 != client.timeout {
		settings = append(settings,
			func() error { return socket.SetSndtimeo(client.timeout) },
			func() error { return socket.SetRcvtimeo(client.timeout) },
		)
	}
	if zmq.SUB == client.socketType {
		// empty prefix => receive everything
		settings = append(settings, func() error { return socket.SetSubscribe("") })
	}

	for _, set := range settings {
		if err := set(); nil != err {
			socket.Close()
			return err
		}
	}

	err = socket.Connect(client.address)
	if nil != err {
		socket.Close()
		return err
	}

	client.socket = socket
	return nil
}

// Connect - close any current connection and connect to a new server
func (client *Client) Connect(conn *util.Connection, serverPublicKey []byte) error {
	if publicKeySize != len(serverPublicKey) {
		return fault.InvalidPublicKeyFile
	}

	err := client.Close()
	if nil != err {
		return err
	}

	copy(client.serverPublicKey, serverPublicKey)
	client.address, client.v6 = conn.CanonicalIPandPort("tcp://")

	return client.openSocket()
}

// IsConnected - check if connected to a server
func (client *Client) IsConnected() bool {
	return nil != client.socket
}

// Close - disconnect, the client may connect again
func (client *Client) Close() error {
	if nil == client.socket {
		return nil
	}
	client.socket.Disconnect(client.address)
	err := client.socket.Close()
	client.socket = nil
	client.address = ""
	return err
}

// Receive - one multipart message
func (client *Client) Receive(flags zmq.Flag) ([][]byte, error) {
	if nil == client.socket {
		return nil, fault.NotConnected
	}
	return client.socket.RecvMessageBytes(flags)
}

func (client *Client) String() string {
	return client.address
}
