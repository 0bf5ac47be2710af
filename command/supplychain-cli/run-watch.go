// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	zmq "github.com/pebbe/zmq4"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/supplychaind/supplychain"
	"github.com/bitmark-inc/supplychaind/util"
	"github.com/bitmark-inc/supplychaind/zmqutil"
)

const (
	watchTimeout     = time.Second
	heartbeatCommand = "heart"
)

func runWatch(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	serverKey, err := zmqutil.ReadPublicKeyFile(c.String("server-key"))
	if nil != err {
		return fmt.Errorf("server key: %q  error: %s", c.String("server-key"), err)
	}
	publicKey, err := zmqutil.ReadPublicKeyFile(c.String("public-key"))
	if nil != err {
		return fmt.Errorf("public key: %q  error: %s", c.String("public-key"), err)
	}
	privateKey, err := zmqutil.ReadPrivateKeyFile(c.String("private-key"))
	if nil != err {
		return fmt.Errorf("private key: %q  error: %s", c.String("private-key"), err)
	}

	conn, err := util.NewConnection(c.String("publisher"))
	if nil != err {
		return err
	}

	client, err := zmqutil.NewClient(zmq.SUB, privateKey, publicKey, watchTimeout)
	if nil != err {
		return err
	}
	defer client.Close()

	err = client.Connect(conn, serverKey)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "subscribed to: %s\n", client)
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(ch)

	limit := c.Int("count")
	count := 0

loop:
	for 0 == limit || count < limit {
		select {
		case <-ch:
			break loop
		default:
		}

		data, err := client.Receive(0)
		if nil != err {
			// timeouts just allow the signal check
			if zmq.AsErrno(err) == zmq.Errno(syscall.EAGAIN) {
				continue loop
			}
			return err
		}

		ok, err := printMessage(m.w, m.e, m.verbose, data)
		if nil != err {
			return err
		}
		if ok {
			count += 1
		}
	}
	return nil
}

// returns true if the message was a stage event
func printMessage(w io.Writer, e io.Writer, verbose bool, data [][]byte) (bool, error) {
	if 3 != len(data) {
		return false, fmt.Errorf("unexpected message with %d parts", len(data))
	}

	switch string(data[0]) {
	case supplychain.StageCommand:
		ev, err := supplychain.UnpackEvent(data[2])
		if nil != err {
			return false, err
		}
		return true, printJson(w, ev)

	case heartbeatCommand:
		if verbose && 8 == len(data[2]) {
			t := time.Unix(int64(binary.BigEndian.Uint64(data[2])), 0)
			fmt.Fprintf(e, "heartbeat: version: %s  time: %s\n", data[1], t.UTC().Format(time.RFC3339))
		}
		return false, nil

	default:
		if verbose {
			fmt.Fprintf(e, "ignored: %q\n", data[0])
		}
		return false, nil
	}
}
