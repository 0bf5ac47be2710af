// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"fmt"

	"github.com/bitmark-inc/supplychaind/background"
)

// counts events until shutdown
type tally struct {
	events <-chan string
	seen   int
}

func (t *tally) Run(args interface{}, shutdown <-chan struct{}) {
	prefix := args.(string)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case e := <-t.events:
			t.seen += 1
			fmt.Printf("%s: %s\n", prefix, e)
		}
	}
}

func Example() {
	events := make(chan string)
	t := &tally{events: events}

	p := background.Start(background.Processes{t}, "stage")
	events <- "harvested"
	events <- "processed"
	p.Stop()

	fmt.Printf("seen: %d\n", t.seen)

	// Output:
	// stage: harvested
	// stage: processed
	// seen: 2
}
