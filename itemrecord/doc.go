// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package itemrecord - fixed layout record for one tracked item
//
// Every record is exactly PackedLength bytes, no header and no
// variable length data:
//
//	offset  width  field
//	------  -----  ------------
//	     0     32  farm address
//	    32     32  farm name     (UTF-8, zero padded)
//	    64     32  farm info     (UTF-8, zero padded)
//	    96      8  longitude     (big endian uint64)
//	   104      8  latitude      (big endian uint64)
//	   112     32  product note  (UTF-8, zero padded)
//	   144      8  stage         (big endian uint64)
//	   152      8  price         (big endian uint64)
//	   160     32  owner
//
// the table is defined once in layout.go and every partial read or
// write of a stored record must use the Field values defined there
//
// Keys:
//
//	creator ++ asset id ++ nonce  - 32 + 8 + 8 bytes (big endian)
package itemrecord
