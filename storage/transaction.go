// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/logger"
)

// Transaction - all the writes of one operation, committed atomically
type Transaction interface {
	Begin() error
	Abort()
	Commit() error
	InUse() bool
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
}

// TransactionData - transaction over a single Access batch
type TransactionData struct {
	access   Access
	readOnly bool
}

func newTransaction(access Access, readOnly bool) Transaction {
	return &TransactionData{
		access:   access,
		readOnly: readOnly,
	}
}

// Begin - blocks until any other transaction has finished
func (t *TransactionData) Begin() error {
	if t.readOnly {
		return fault.NotAvailableInReadOnly
	}
	t.access.Begin()
	return nil
}

// Abort - discard all pending writes
func (t *TransactionData) Abort() {
	if !t.access.InUse() {
		return
	}
	t.access.Abort()
}

// Commit - write all pending writes
func (t *TransactionData) Commit() error {
	if !t.access.InUse() {
		return fault.TransactionNotInUse
	}
	return t.access.Commit()
}

func (t *TransactionData) InUse() bool {
	return t.access.InUse()
}

func (t *TransactionData) Put(handle *PoolHandle, key []byte, value []byte) {
	t.mustBeInUse("Put")
	t.access.Put(handle.prefixKey(key), value)
}

func (t *TransactionData) PutN(handle *PoolHandle, key []byte, value uint64) {
	t.Put(handle, key, encodeN(value))
}

func (t *TransactionData) Delete(handle *PoolHandle, key []byte) {
	t.mustBeInUse("Delete")
	t.access.Delete(handle.prefixKey(key))
}

func (t *TransactionData) Get(handle *PoolHandle, key []byte) []byte {
	value, err := t.access.Get(handle.prefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("transaction.Get", err)
	return value
}

func (t *TransactionData) GetN(handle *PoolHandle, key []byte) (uint64, bool) {
	return decodeN(key, t.Get(handle, key))
}

func (t *TransactionData) Has(handle *PoolHandle, key []byte) bool {
	found, err := t.access.Has(handle.prefixKey(key))
	logger.PanicIfError("transaction.Has", err)
	return found
}

func (t *TransactionData) mustBeInUse(operation string) {
	if !t.access.InUse() {
		logger.Panicf("transaction.%s: transaction not started", operation)
	}
}
