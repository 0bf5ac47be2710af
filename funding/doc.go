// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package funding - preconditions on the value movements that must
// accompany the creation of an item record
//
// A create request carries two descriptors:
//
//	payment  - covers the minimum balance for the storage allocated
//	transfer - moves the asset being tracked to the application
//
// both must come from the caller and go to the application account.
package funding
