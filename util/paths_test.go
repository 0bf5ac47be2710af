// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/supplychaind/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/rpc.key", util.EnsureAbsolute("/data", "rpc.key"), "relative not joined")
	assert.Equal(t, "/etc/rpc.key", util.EnsureAbsolute("/data", "/etc/rpc.key"), "absolute changed")
	assert.Equal(t, "/data/log", util.EnsureAbsolute("/data", "./x/../log"), "not cleaned")
	assert.Equal(t, "", util.EnsureAbsolute("/data", ""), "empty path made absolute")
}

func TestEnsureFileExists(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "present")

	assert.False(t, util.EnsureFileExists(name), "missing file found")
	assert.Nil(t, os.WriteFile(name, []byte("x"), 0600), "write error")
	assert.True(t, util.EnsureFileExists(name), "file not found")
}

func TestFingerprint(t *testing.T) {
	f := util.Fingerprint([]byte(""))
	assert.Equal(t, "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a", f.String(), "wrong SHA3-256")
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")

	assert.Nil(t, util.EnsureDirectories(nested, dir), "create error")
	info, err := os.Stat(nested)
	assert.Nil(t, err, "directory not created")
	assert.True(t, info.IsDir(), "not a directory")

	file := filepath.Join(dir, "file")
	assert.Nil(t, os.WriteFile(file, []byte("x"), 0600), "write error")
	assert.NotNil(t, util.EnsureDirectories(file), "file accepted as directory")
}
