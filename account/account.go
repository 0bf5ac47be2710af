// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/supplychaind/fault"
)

// miscellaneous constants
const (
	AddressLength  = 32
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode  = 0x01
	algorithmShift = 4 // shift 4 bits to get algorithm
	ed25519Code    = 0x01

	addressCode = publicKeyCode | ed25519Code<<algorithmShift
)

// Address - a 32 byte party identity (an ed25519 public key)
//
// text form: base58(code ++ key ++ checksum[:4])
type Address [AddressLength]byte

// Zero - the empty identity
var Zero Address

// FromPublicKey - address of an ed25519 public key
func FromPublicKey(publicKey ed25519.PublicKey) (Address, error) {
	return FromBytes(publicKey)
}

// FromBytes - convert a raw 32 byte slice
func FromBytes(buffer []byte) (Address, error) {
	var a Address
	if AddressLength != len(buffer) {
		return a, fault.InvalidKeyLength
	}
	copy(a[:], buffer)
	return a, nil
}

// FromBase58 - convert the text form back to an address
func FromBase58(s string) (Address, error) {
	var a Address

	decoded, err := base58.Decode(s)
	if nil != err {
		return a, fault.InvalidKey
	}

	if 1+AddressLength+checksumLength != len(decoded) {
		return a, fault.InvalidKeyLength
	}
	if addressCode != decoded[0] {
		return a, fault.InvalidKey
	}

	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return a, fault.InvalidChecksum
	}

	copy(a[:], decoded[1:checksumStart])
	return a, nil
}

// Bytes - the raw key bytes
func (a Address) Bytes() []byte {
	return a[:]
}

// IsZero - true for the empty identity
func (a Address) IsZero() bool {
	return Zero == a
}

// String - base58 text form
func (a Address) String() string {
	buffer := make([]byte, 0, 1+AddressLength+checksumLength)
	buffer = append(buffer, addressCode)
	buffer = append(buffer, a[:]...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - convert an address to base58 for JSON
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert base58 from JSON to an address
func (a *Address) UnmarshalText(s []byte) error {
	address, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = address
	return nil
}
