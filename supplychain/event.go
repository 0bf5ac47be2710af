// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package supplychain

import (
	"encoding/json"

	"github.com/bitmark-inc/supplychaind/account"
	"github.com/bitmark-inc/supplychaind/itemrecord"
	"github.com/bitmark-inc/supplychaind/messagebus"
	"github.com/bitmark-inc/supplychaind/storage"
)

// StageCommand - message bus command for committed operations
const StageCommand = "stage"

// Event - the result of one committed operation
type Event struct {
	Key       itemrecord.Key   `json:"key"`
	Operation string           `json:"operation"`
	Stage     itemrecord.Stage `json:"stage"`
	Caller    account.Address  `json:"caller"`
	Owner     account.Address  `json:"owner"`
	Price     uint64           `json:"price"`
}

// Pack - encode for the message bus
func (ev *Event) Pack() ([]byte, error) {
	return json.Marshal(ev)
}

// UnpackEvent - decode an event received from the message bus
func UnpackEvent(buffer []byte) (*Event, error) {
	ev := &Event{}
	err := json.Unmarshal(buffer, ev)
	if nil != err {
		return nil, err
	}
	return ev, nil
}

// commit, then send the event only if the commit succeeded
func (e *Engine) commitAndBroadcast(trx storage.Transaction, ev *Event) error {
	e.publishLock.Lock()
	defer e.publishLock.Unlock()

	err := trx.Commit()
	if nil != err {
		return err
	}
	e.broadcast(ev)
	return nil
}

func (e *Engine) broadcast(ev *Event) {
	packed, err := ev.Pack()
	if nil != err {
		e.log.Errorf("event: %s  pack error: %s", ev.Key, err)
		return
	}
	messagebus.Bus.Broadcast.Send(StageCommand, ev.Key.Bytes(), packed)
}
