// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - send committed item events to ZeroMQ subscribers
//
// Every message on the broadcast bus is sent as a multipart message:
//
//	stage ++ key ++ event JSON
//
// and a heartbeat is sent when nothing else has been:
//
//	heart ++ version ++ unix time (8 byte big endian)
//
// The PUB sockets are CURVE encrypted, subscribers need the public key.
package publish
