// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"net"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/fault"
)

const (
	minConnectionCount = 1
)

// Listener - a started set of network servers
type Listener interface {
	Serve() error
	Close() error
}

// convert "*:PORT" to "[::]:PORT" and determine the network type of
// each address
func parseListenAddress(addrs []string, log *logger.L) ([]string, []string, error) {
	networks := make([]string, len(addrs))
	addresses := make([]string, len(addrs))
	for i, listen := range addrs {
		host, port, err := net.SplitHostPort(listen)
		if nil != err {
			log.Errorf("listen address: %q  error: %s", listen, err)
			return nil, nil, fault.InvalidIPAddress
		}

		switch {
		case "*" == host:
			// on the assumption that this will listen on tcp4 and tcp6
			host = "::"
			networks[i] = "tcp"
		case strings.Contains(host, ":"):
			networks[i] = "tcp6"
		default:
			networks[i] = "tcp4"
		}

		if ip := net.ParseIP(host); nil == ip {
			log.Errorf("listen address: %q  error: %s", listen, fault.InvalidIPAddress)
			return nil, nil, fault.InvalidIPAddress
		}
		addresses[i] = net.JoinHostPort(host, port)
	}

	return networks, addresses, nil
}
