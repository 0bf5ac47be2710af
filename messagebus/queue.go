// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"
)

// Message - a command and its packed parameters
type Message struct {
	Command    string
	Parameters [][]byte
}

// BroadcastQueue - fan out to all listeners
type BroadcastQueue struct {
	sync.Mutex
	listeners []chan Message
	dropped   uint64
}

// Bus - the set of queues
var Bus struct {
	Broadcast *BroadcastQueue
}

func init() {
	Bus.Broadcast = &BroadcastQueue{}
}

// Send - deliver to every current listener without waiting
func (queue *BroadcastQueue) Send(command string, parameters ...[]byte) {
	m := Message{
		Command:    command,
		Parameters: parameters,
	}

	queue.Lock()
	defer queue.Unlock()

	for _, listener := range queue.listeners {
		select {
		case listener <- m:
		default:
			queue.dropped += 1
		}
	}
}

// Chan - add a listener with a buffer of size messages
func (queue *BroadcastQueue) Chan(size int) <-chan Message {
	if size < 0 {
		size = 0
	}
	c := make(chan Message, size)

	queue.Lock()
	queue.listeners = append(queue.listeners, c)
	queue.Unlock()

	return c
}

// Dropped - number of deliveries missed by full listeners
func (queue *BroadcastQueue) Dropped() uint64 {
	queue.Lock()
	defer queue.Unlock()
	return queue.dropped
}

// Release - close all listeners
func (queue *BroadcastQueue) Release() {
	queue.Lock()
	defer queue.Unlock()

	for _, listener := range queue.listeners {
		close(listener)
	}
	queue.listeners = nil
}
