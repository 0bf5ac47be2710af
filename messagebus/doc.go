// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - a queuing system for committed item events
//
// The broadcast queue copies every message to each listener.  Senders
// never block: a listener whose buffer is full misses the message.
package messagebus
