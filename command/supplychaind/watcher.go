// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/supplychaind/funding"
)

// reload the funding policy when the configuration file changes
//
// the directory is watched rather than the file so that editors that
// replace the file by rename are also seen
type configWatcher struct {
	log       *logger.L
	fileName  string
	variables map[string]string
	checker   *funding.Checker
	watcher   *fsnotify.Watcher
}

func newConfigWatcher(log *logger.L, fileName string, variables map[string]string, checker *funding.Checker) (*configWatcher, error) {
	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher error: %s", err)
		return nil, err
	}

	err = watcher.Add(filepath.Dir(fileName))
	if nil != err {
		log.Errorf("watcher add error: %s", err)
		_ = watcher.Close()
		return nil, err
	}

	return &configWatcher{
		log:       log,
		fileName:  fileName,
		variables: variables,
		checker:   checker,
		watcher:   watcher,
	}, nil
}

// Run - background process
func (w *configWatcher) Run(args interface{}, shutdown <-chan struct{}) {

	log := w.log
	log.Infof("watching: %q", w.fileName)

	defer func() {
		_ = w.watcher.Close()
		log.Info("stopped")
	}()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Clean(event.Name) != w.fileName {
				continue loop
			}
			if 0 == event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue loop
			}
			log.Debugf("file event: %v", event)
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)
		}
	}
}

func (w *configWatcher) reload() {
	options, err := getConfiguration(w.fileName, w.variables)
	if nil != err {
		w.log.Errorf("reload: %q  error: %s", w.fileName, err)
		return
	}

	if options.Funding == w.checker.Policy() {
		return
	}

	w.log.Infof("funding policy: %+v", options.Funding)
	w.checker.SetPolicy(options.Funding)
}
