// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sqlstore

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/bitmark-inc/logger"
	_ "modernc.org/sqlite"

	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/storage"
)

const (
	currentSchemaVersion = 1
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
    key   BLOB PRIMARY KEY,
    value BLOB NOT NULL
) WITHOUT ROWID;
`

// Database - an open SQLite item store
type Database struct {
	exclusive sync.Mutex
	log       *logger.L
	db        *sql.DB
}

// Open - open or create the database file and apply the schema
func Open(path string) (*Database, error) {
	log := logger.New("sqlstore")

	db, err := sql.Open("sqlite", path)
	if nil != err {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// transactions are serialised by the exclusive lock, a second
	// connection would only ever wait
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=FULL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); nil != err {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	var version int
	err = db.QueryRow("PRAGMA user_version").Scan(&version)
	if nil != err {
		db.Close()
		return nil, err
	}

	switch {
	case version > currentSchemaVersion:
		log.Criticalf("database version: %d > current version: %d", version, currentSchemaVersion)
		db.Close()
		return nil, fault.WrongDatabaseVersion

	case 0 == version:
		if _, err := db.Exec(schema); nil != err {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", currentSchemaVersion)); nil != err {
			db.Close()
			return nil, err
		}
		log.Infof("created database: %s", path)
	}

	return &Database{
		log: log,
		db:  db,
	}, nil
}

// Close - wait for any open transaction and close the file
func (d *Database) Close() error {
	d.exclusive.Lock()
	defer d.exclusive.Unlock()
	d.log.Flush()
	return d.db.Close()
}

// Begin - start a transaction, waiting for any open one to finish
func (d *Database) Begin() (storage.Transaction, error) {
	d.exclusive.Lock()

	tx, err := d.db.Begin()
	if nil != err {
		d.exclusive.Unlock()
		return nil, err
	}

	return &transaction{
		database: d,
		tx:       tx,
	}, nil
}

type transaction struct {
	database *Database
	tx       *sql.Tx
	done     bool
}

// returns nil, nil if not found
func (t *transaction) value(key []byte) ([]byte, error) {
	var value []byte
	err := t.tx.QueryRow("SELECT value FROM records WHERE key = ?", key).Scan(&value)
	if sql.ErrNoRows == err {
		return nil, nil
	}
	return value, err
}

func (t *transaction) Exists(key []byte) (bool, error) {
	if t.done {
		return false, fault.TransactionNotInUse
	}
	var n int
	err := t.tx.QueryRow("SELECT COUNT(*) FROM records WHERE key = ?", key).Scan(&n)
	return n > 0, err
}

func (t *transaction) Allocate(key []byte, size int) error {
	if t.done {
		return fault.TransactionNotInUse
	}
	if size <= 0 {
		return fault.AllocationFailed
	}

	found, err := t.Exists(key)
	if nil != err {
		return err
	}
	if found {
		return fault.AllocationFailed
	}

	_, err = t.tx.Exec("INSERT INTO records(key, value) VALUES(?, ?)", key, make([]byte, size))
	if nil != err {
		t.database.log.Errorf("allocate: %x  error: %s", key, err)
		return fault.AllocationFailed
	}
	return nil
}

func (t *transaction) ReadRange(key []byte, offset int, length int) ([]byte, error) {
	if t.done {
		return nil, fault.TransactionNotInUse
	}

	value, err := t.value(key)
	if nil != err {
		return nil, err
	}
	if nil == value {
		return nil, fault.RecordNotFound
	}
	if !inBounds(len(value), offset, length) {
		return nil, fault.BoundsExceeded
	}

	buffer := make([]byte, length)
	copy(buffer, value[offset:])
	return buffer, nil
}

func (t *transaction) WriteRange(key []byte, offset int, data []byte) error {
	if t.done {
		return fault.TransactionNotInUse
	}

	value, err := t.value(key)
	if nil != err {
		return err
	}
	if nil == value {
		return fault.RecordNotFound
	}
	if !inBounds(len(value), offset, len(data)) {
		return fault.BoundsExceeded
	}

	copy(value[offset:], data)
	_, err = t.tx.Exec("UPDATE records SET value = ? WHERE key = ?", value, key)
	return err
}

func (t *transaction) Commit() error {
	if t.done {
		return fault.TransactionNotInUse
	}
	t.done = true
	defer t.database.exclusive.Unlock()

	return t.tx.Commit()
}

func (t *transaction) Abort() {
	if t.done {
		return
	}
	t.done = true
	defer t.database.exclusive.Unlock()

	err := t.tx.Rollback()
	if nil != err {
		t.database.log.Errorf("rollback error: %s", err)
	}
}

func inBounds(size int, offset int, length int) bool {
	return offset >= 0 && length >= 0 && offset <= size && length <= size-offset
}
