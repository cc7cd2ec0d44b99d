// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/lockerd/fault"
)

// FetchCursor - iterate over committed keys sharing a prefix
type FetchCursor struct {
	pool     *PoolHandle
	maxRange *ldb_util.Range
	start    []byte
}

// NewFetchCursor - initialise a cursor over all keys starting with prefix
func (p *PoolHandle) NewFetchCursor(prefix []byte) *FetchCursor {
	return &FetchCursor{
		pool:     p,
		maxRange: ldb_util.BytesPrefix(p.prefixKey(prefix)),
	}
}

// Seek - skip forward to key, which must include the cursor prefix
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.start = cursor.pool.prefixKey(key)
	return cursor
}

// Fetch - return up to count elements, the cursor is advanced past them
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.InvalidItem
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	results := make([]Element, 0, count)
	err := cursor.each(func(key []byte, value []byte) bool {
		results = append(results, Element{Key: key, Value: value})
		return len(results) < count
	})

	if n := len(results); n > 0 {
		// next fetch starts just after the last key
		last := cursor.pool.prefixKey(results[n-1].Key)
		cursor.start = append(last, 0x00)
	}
	return results, err
}

// Map - run a function on all remaining elements
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.InvalidItem
	}

	var err error
	iterErr := cursor.each(func(key []byte, value []byte) bool {
		err = f(key, value)
		return nil == err
	})
	if nil != err {
		return err
	}
	return iterErr
}

// the key passed to f has the prefix byte removed, both slices are copies
func (cursor *FetchCursor) each(f func(key []byte, value []byte) bool) error {
	poolData.RLock()
	defer poolData.RUnlock()

	if nil == cursor.pool.database {
		return nil
	}

	searchRange := *cursor.maxRange
	if nil != cursor.start && string(cursor.start) > string(searchRange.Start) {
		searchRange.Start = cursor.start
	}

	iter := cursor.pool.database.NewIterator(&searchRange, nil)
	defer iter.Release()

	for iter.Next() {
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		if !f(dataKey, dataValue) {
			break
		}
	}
	return iter.Error()
}
