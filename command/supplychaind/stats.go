// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/messagebus"
	"github.com/bitmark-inc/supplychaind/supplychain"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// periodic memory and operation statistics
type statistics struct {
	log    *logger.L
	engine *supplychain.Engine
}

// Run - background process
func (s *statistics) Run(args interface{}, shutdown <-chan struct{}) {

	log := s.log
	log.Info("starting…")

	ticker := time.NewTicker(statsDelay)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			s.report()
		}
	}
	log.Info("stopped")
}

func (s *statistics) report() {
	log := s.log

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	text, err := json.Marshal(m)
	if nil != err {
		log.Errorf("marshal error: %s", err)
	} else {
		log.Debugf("stats: %s", text)
	}
	a := m.Alloc / mega
	t := m.TotalAlloc / mega
	sys := m.Sys / mega
	log.Infof("allocated: %d M  cumulative: %d M  OS virtual: %d M", a, t, sys)

	stats := s.engine.Statistics()
	log.Infof("operations: %+v  events dropped: %d", stats, messagebus.Bus.Broadcast.Dropped())
}
