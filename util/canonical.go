// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/bitmark-inc/supplychaind/fault"
)

// Connection - a listen address in canonical form
type Connection struct {
	ip   net.IP
	port int
}

// NewConnection - parse an IP:Port
//
// examples:
//
//	IPv4:  127.0.0.1:1234
//	IPv6:  [::1]:1234
func NewConnection(hostPort string) (*Connection, error) {
	host, port, err := net.SplitHostPort(strings.TrimSpace(hostPort))
	if nil != err {
		return nil, fault.InvalidIPAddress
	}

	IP := net.ParseIP(strings.TrimSpace(host))
	if nil == IP {
		return nil, fault.InvalidIPAddress
	}

	numericPort, err := strconv.Atoi(strings.TrimSpace(port))
	if nil != err {
		return nil, fault.InvalidPortNumber
	}
	if numericPort < 1 || numericPort > 65535 {
		return nil, fault.InvalidPortNumber
	}

	return &Connection{
		ip:   IP,
		port: numericPort,
	}, nil
}

// NewConnections - parse a list of IP:Port
func NewConnections(hostPorts []string) ([]*Connection, error) {
	c := make([]*Connection, 0, len(hostPorts))
	for _, hp := range hostPorts {
		connection, err := NewConnection(hp)
		if nil != err {
			return nil, err
		}
		c = append(c, connection)
	}
	return c, nil
}

// CanonicalIPandPort - prefixed address and whether it is IPv6
func (conn *Connection) CanonicalIPandPort(prefix string) (string, bool) {
	port := strconv.Itoa(conn.port)
	if nil != conn.ip.To4() {
		return prefix + conn.ip.String() + ":" + port, false
	}
	return prefix + "[" + conn.ip.String() + "]:" + port, true
}

// CanonicalIPandPort - make the IP:Port canonical
func CanonicalIPandPort(prefix string, hostPort string) (string, error) {
	conn, err := NewConnection(hostPort)
	if nil != err {
		return "", err
	}
	s, _ := conn.CanonicalIPandPort(prefix)
	return s, nil
}
