// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bitmark-inc/supplychaind/itemrecord"
	"github.com/bitmark-inc/supplychaind/storage"
)

// one line of list-items output
type listEntry struct {
	Key   string           `json:"key"`
	Item  *itemrecord.Item `json:"item,omitempty"`
	Error string           `json:"error,omitempty"`
}

// write one JSON object per line for up to count records
//
// records that do not decode are listed with the error
func listItems(w io.Writer, cursor *storage.FetchCursor, count int) error {
	elements, err := cursor.Fetch(count)
	if nil != err {
		return err
	}

	for _, e := range elements {
		entry := listEntry{}

		key, err := itemrecord.KeyFromBytes(e.Key)
		if nil != err {
			entry.Key = fmt.Sprintf("%x", e.Key)
			entry.Error = err.Error()
		} else {
			entry.Key = key.String()
			item, err := itemrecord.PackedItem(e.Value).Unpack()
			if nil != err {
				entry.Error = err.Error()
			} else {
				entry.Item = item
			}
		}

		b, err := json.Marshal(entry)
		if nil != err {
			return err
		}
		fmt.Fprintf(w, "%s\n", b)
	}
	return nil
}
