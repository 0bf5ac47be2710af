// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import "time"

// SetHeartbeatInterval - shorten the idle period, returns a restore function
func SetHeartbeatInterval(d time.Duration) func() {
	saved := heartbeatInterval
	heartbeatInterval = d
	return func() {
		heartbeatInterval = saved
	}
}
