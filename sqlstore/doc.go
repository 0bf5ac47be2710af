// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sqlstore - item store kept in a single SQLite table
//
// An alternative to the LevelDB pools for deployments that prefer one
// database file.  Records are stored whole:
//
//	records(key BLOB PRIMARY KEY, value BLOB)
//
// The schema version is kept in PRAGMA user_version.
package sqlstore
