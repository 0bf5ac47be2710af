// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"crypto/ed25519"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/supplychaind/account"
	"github.com/bitmark-inc/supplychaind/fault"
)

var farmer = account.Address{
	0x7a, 0x81, 0x92, 0x56, 0x5e, 0x6c, 0xa2, 0x35,
	0x80, 0xe1, 0x81, 0x59, 0xef, 0x30, 0x73, 0xf6,
	0xe2, 0xfb, 0x8e, 0x7e, 0x9d, 0x31, 0x49, 0x7e,
	0x79, 0xd7, 0x73, 0x1b, 0xa3, 0x74, 0x11, 0x01,
}

func TestBase58RoundTrip(t *testing.T) {
	s := farmer.String()

	a, err := account.FromBase58(s)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, farmer, a, "wrong address")
	assert.False(t, a.IsZero(), "address is zero")
}

func TestBase58Checksum(t *testing.T) {
	s := []byte(farmer.String())

	// alter one character to break the checksum
	if s[5] == '2' {
		s[5] = '3'
	} else {
		s[5] = '2'
	}

	_, err := account.FromBase58(string(s))
	assert.NotNil(t, err, "corrupted address accepted")
}

func TestBase58Invalid(t *testing.T) {
	_, err := account.FromBase58("0OIl")
	assert.Equal(t, fault.InvalidKey, err, "wrong error for bad base58")

	_, err = account.FromBase58("abc")
	assert.Equal(t, fault.InvalidKeyLength, err, "wrong error for short address")
}

func TestFromBytes(t *testing.T) {
	a, err := account.FromBytes(farmer[:])
	assert.Nil(t, err, "from bytes error")
	assert.Equal(t, farmer, a, "wrong address")

	_, err = account.FromBytes(farmer[:31])
	assert.Equal(t, fault.InvalidKeyLength, err, "short slice accepted")
}

func TestFromPublicKey(t *testing.T) {
	publicKey, _, err := ed25519.GenerateKey(nil)
	assert.Nil(t, err, "generate key error")

	a, err := account.FromPublicKey(publicKey)
	assert.Nil(t, err, "from public key error")
	assert.Equal(t, []byte(publicKey), a.Bytes(), "wrong bytes")
}

func TestJSON(t *testing.T) {
	type holder struct {
		Owner account.Address `json:"owner"`
	}

	b, err := json.Marshal(holder{Owner: farmer})
	assert.Nil(t, err, "marshal error")
	assert.Equal(t, `{"owner":"`+farmer.String()+`"}`, string(b), "wrong json")

	var h holder
	err = json.Unmarshal(b, &h)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, farmer, h.Owner, "wrong owner")
}

func TestZero(t *testing.T) {
	assert.True(t, account.Zero.IsZero(), "zero is not zero")
}
