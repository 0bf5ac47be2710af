// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// FingerprintBytes - type for a certificate fingerprint
type FingerprintBytes [32]byte

// Fingerprint - SHA3-256 of a DER certificate
//
// check on the command line with:
// openssl x509 -in rpc.crt -outform der | openssl dgst -sha3-256
func Fingerprint(certificate []byte) FingerprintBytes {
	return sha3.Sum256(certificate)
}

// String - hex form
func (f FingerprintBytes) String() string {
	return hex.EncodeToString(f[:])
}

// MarshalText - hex form for JSON
func (f FingerprintBytes) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
