// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package itemrecord

import (
	"github.com/bitmark-inc/supplychaind/fault"
)

// Stage - position of an item in the supply chain
type Stage uint64

// all possible stages, in the only order they may be reached
const (
	Harvested Stage = iota
	Processed
	Packed
	ForSale
	Sold
	Shipped
	Received
	Purchased

	// end of list (one greater than last item)
	stageLimit
)

var stageNames = [stageLimit]string{
	Harvested: "Harvested",
	Processed: "Processed",
	Packed:    "Packed",
	ForSale:   "ForSale",
	Sold:      "Sold",
	Shipped:   "Shipped",
	Received:  "Received",
	Purchased: "Purchased",
}

// IsValid - true if the value is one of the defined stages
func (s Stage) IsValid() bool {
	return s < stageLimit
}

// IsTerminal - no transition leaves this stage
func (s Stage) IsTerminal() bool {
	return Purchased == s
}

// Next - the stage reached by the next accepted transition
func (s Stage) Next() (Stage, bool) {
	if !s.IsValid() || s.IsTerminal() {
		return s, false
	}
	return s + 1, true
}

func (s Stage) String() string {
	if !s.IsValid() {
		return "*unknown*"
	}
	return stageNames[s]
}

// StageFromString - convert a stage name back to a stage
func StageFromString(name string) (Stage, error) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}
	return 0, fault.InvalidStage
}

// MarshalText - stage name for JSON
func (s Stage) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fault.InvalidStage
	}
	return []byte(s.String()), nil
}

// UnmarshalText - stage name from JSON
func (s *Stage) UnmarshalText(b []byte) error {
	stage, err := StageFromString(string(b))
	if nil != err {
		return err
	}
	*s = stage
	return nil
}
