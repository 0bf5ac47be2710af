// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/supplychaind/background"
	"github.com/bitmark-inc/supplychaind/funding"
	"github.com/bitmark-inc/supplychaind/rpc/fixtures"
)

func fundingConfiguration(base uint64, perByte uint64) string {
	return fmt.Sprintf(`
return {
  data_directory = ".",
  application = "app",
  funding = { base = %d, per_byte = %d },
}
`, base, perByte)
}

func TestWatcherReloadsPolicy(t *testing.T) {
	dir := t.TempDir()
	fileName := writeConfiguration(t, dir, fundingConfiguration(1, 2))

	checker := funding.New(funding.Policy{Base: 1, PerByte: 2})

	w, err := newConfigWatcher(logger.New(fixtures.LogCategory), fileName, nil, checker)
	assert.Nil(t, err, "wrong newConfigWatcher")

	bg := background.Start(background.Processes{w}, nil)
	defer bg.Stop()

	// write to a temporary and rename over the original
	temporary := filepath.Join(dir, "new.conf")
	err = os.WriteFile(temporary, []byte(fundingConfiguration(10, 20)), 0600)
	assert.Nil(t, err, "write error")
	err = os.Rename(temporary, fileName)
	assert.Nil(t, err, "rename error")

	expected := funding.Policy{Base: 10, PerByte: 20}
	assert.Eventually(t, func() bool {
		return expected == checker.Policy()
	}, 5*time.Second, 50*time.Millisecond, "policy not reloaded")
}

func TestWatcherKeepsPolicyOnError(t *testing.T) {
	dir := t.TempDir()
	fileName := writeConfiguration(t, dir, fundingConfiguration(3, 4))

	original := funding.Policy{Base: 3, PerByte: 4}
	checker := funding.New(original)

	w, err := newConfigWatcher(logger.New(fixtures.LogCategory), fileName, nil, checker)
	assert.Nil(t, err, "wrong newConfigWatcher")

	w.reload()
	assert.Equal(t, original, checker.Policy(), "policy changed without edit")

	err = os.WriteFile(fileName, []byte("return {"), 0600)
	assert.Nil(t, err, "write error")

	w.reload()
	assert.Equal(t, original, checker.Policy(), "policy changed by broken file")

	_ = w.watcher.Close()
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	fileName := writeConfiguration(t, dir, fundingConfiguration(5, 6))

	original := funding.Policy{Base: 5, PerByte: 6}
	checker := funding.New(original)

	w, err := newConfigWatcher(logger.New(fixtures.LogCategory), fileName, nil, checker)
	assert.Nil(t, err, "wrong newConfigWatcher")

	bg := background.Start(background.Processes{w}, nil)

	err = os.WriteFile(filepath.Join(dir, "other.conf"), []byte(fundingConfiguration(7, 8)), 0600)
	assert.Nil(t, err, "write error")

	time.Sleep(200 * time.Millisecond)
	bg.Stop()

	assert.Equal(t, original, checker.Policy(), "policy changed by another file")
}
