// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/zmqutil"
)

const (
	hexKey = "8d0c0cd9a1e4e4b1e1d8c36b7f28eae4a4cc6ba0cd2316c8aac8a9bd4fd6d7f3"
)

func TestParseKey(t *testing.T) {
	key, private, err := zmqutil.ParseKey("PUBLIC:" + hexKey + "\n")
	assert.Nil(t, err, "parse error")
	assert.False(t, private, "public key marked private")
	assert.Equal(t, 32, len(key), "wrong key length")

	_, private, err = zmqutil.ParseKey("  PRIVATE:" + hexKey)
	assert.Nil(t, err, "parse error")
	assert.True(t, private, "private key marked public")

	_, _, err = zmqutil.ParseKey("PUBLIC:" + hexKey[2:])
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "short key accepted")

	_, _, err = zmqutil.ParseKey("PRIVATE:" + strings.Repeat("zz", 32))
	assert.Equal(t, fault.InvalidPrivateKeyFile, err, "non hex accepted")

	_, _, err = zmqutil.ParseKey(hexKey)
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "untagged key accepted")
}

func TestReadKeyKinds(t *testing.T) {
	_, err := zmqutil.ReadPublicKey("PRIVATE:" + hexKey)
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "private key read as public")

	_, err = zmqutil.ReadPrivateKey("PUBLIC:" + hexKey)
	assert.Equal(t, fault.InvalidPrivateKeyFile, err, "public key read as private")
}

func TestMakeKeyPair(t *testing.T) {
	dir := t.TempDir()
	publicFile := filepath.Join(dir, "publisher.public")
	privateFile := filepath.Join(dir, "publisher.private")

	err := zmqutil.MakeKeyPair(publicFile, privateFile)
	assert.Nil(t, err, "make key pair error")

	public, err := zmqutil.ReadPublicKeyFile(publicFile)
	assert.Nil(t, err, "read public error")
	assert.Equal(t, 32, len(public), "wrong public length")

	private, err := zmqutil.ReadPrivateKeyFile(privateFile)
	assert.Nil(t, err, "read private error")
	assert.Equal(t, 32, len(private), "wrong private length")

	err = zmqutil.MakeKeyPair(publicFile, privateFile)
	assert.Equal(t, fault.KeyFileAlreadyExists, err, "existing files overwritten")
}

func TestNewClientKeyLength(t *testing.T) {
	_, err := zmqutil.NewClient(0, make([]byte, 32), make([]byte, 31), 0)
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "short public key accepted")

	_, err = zmqutil.NewClient(0, make([]byte, 33), make([]byte, 32), 0)
	assert.Equal(t, fault.InvalidPrivateKeyFile, err, "long private key accepted")

	client, err := zmqutil.NewClient(0, make([]byte, 32), make([]byte, 32), 0)
	assert.Nil(t, err, "new client error")
	assert.False(t, client.IsConnected(), "new client connected")

	_, err = client.Receive(0)
	assert.Equal(t, fault.NotConnected, err, "receive without connection")
}
