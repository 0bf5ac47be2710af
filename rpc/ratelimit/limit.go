// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/supplychaind/fault"
)

// Limit - delay a single RPC until the limiter allows it
//
// only fails if the request can never be allowed
func Limit(limiter *rate.Limiter) error {
	r := limiter.Reserve()
	if !r.OK() {
		return fault.RateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}

// Middleware - reject HTTP requests above the limit instead of waiting
//
// the connection gauge already bounds concurrency so a request over
// the rate is answered at once by reject
func Middleware(limiter *rate.Limiter, reject http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				reject(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
