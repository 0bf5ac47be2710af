// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package itemrecord

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/bitmark-inc/supplychaind/account"
	"github.com/bitmark-inc/supplychaind/fault"
)

// KeyLength - creator ++ asset ++ nonce
const KeyLength = account.AddressLength + 2*uint64ByteSize

// Key - storage key of one item record
type Key [KeyLength]byte

// DeriveKey - the key for an item
//
// the caller chooses (creator, asset, nonce) to be unique per physical
// item; creation and every later operation must derive the key here
func DeriveKey(creator account.Address, asset uint64, nonce uint64) Key {
	var key Key
	copy(key[:account.AddressLength], creator[:])
	binary.BigEndian.PutUint64(key[account.AddressLength:], asset)
	binary.BigEndian.PutUint64(key[account.AddressLength+uint64ByteSize:], nonce)
	return key
}

// KeyFromBytes - convert a stored key
func KeyFromBytes(buffer []byte) (Key, error) {
	var key Key
	if KeyLength != len(buffer) {
		return key, fault.InvalidKeyLength
	}
	copy(key[:], buffer)
	return key, nil
}

// KeyFromString - convert the hex text form
func KeyFromString(s string) (Key, error) {
	var key Key
	err := key.UnmarshalText([]byte(s))
	return key, err
}

// Creator - identity part of the key
func (key Key) Creator() account.Address {
	var a account.Address
	copy(a[:], key[:account.AddressLength])
	return a
}

// Asset - asset id part of the key
func (key Key) Asset() uint64 {
	return binary.BigEndian.Uint64(key[account.AddressLength:])
}

// Nonce - nonce part of the key
func (key Key) Nonce() uint64 {
	return binary.BigEndian.Uint64(key[account.AddressLength+uint64ByteSize:])
}

// Bytes - key as a slice for storage access
func (key Key) Bytes() []byte {
	return key[:]
}

func (key Key) String() string {
	return hex.EncodeToString(key[:])
}

// MarshalText - convert a key to hex for JSON
func (key Key) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(KeyLength))
	hex.Encode(buffer, key[:])
	return buffer, nil
}

// UnmarshalText - convert hex from JSON to a key
func (key *Key) UnmarshalText(s []byte) error {
	if hex.EncodedLen(KeyLength) != len(s) {
		return fault.InvalidKeyLength
	}
	if _, err := hex.Decode(key[:], s); nil != err {
		return fault.InvalidKey
	}
	return nil
}
