// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"encoding/binary"

	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/lockrecord"
	"github.com/bitmark-inc/lockerd/sharepool"
	"github.com/bitmark-inc/lockerd/storage"
)

// maximum number of records returned by one list call
const maximumListCount = 100

// Withdrawable - what a lock could release now
type Withdrawable struct {
	Shares   uint64 `json:"shares,string"`
	Quantity uint64 `json:"quantity,string"`
}

// PoolInfo - the state of one asset's pool
type PoolInfo struct {
	Asset       lockrecord.Address `json:"asset"`
	TotalShares uint64             `json:"totalShares,string"`
	Balance     uint64             `json:"balance,string"`
	Locks       uint64             `json:"locks"`
}

// Get - a lock record
func (l *Ledger) Get(ctx context.Context, lockId uint64) (*lockrecord.Record, error) {
	if err := l.enter(ctx); nil != err {
		return nil, err
	}
	defer l.exit()

	return l.get(lockId)
}

// Withdrawable - shares and quantity the owner could withdraw now
func (l *Ledger) Withdrawable(ctx context.Context, lockId uint64) (*Withdrawable, error) {
	if err := l.enter(ctx); nil != err {
		return nil, err
	}
	defer l.exit()

	r, err := l.get(lockId)
	if nil != err {
		return nil, err
	}
	pool, err := l.committedPool(ctx, r.Asset)
	if nil != err {
		return nil, err
	}

	shares := r.WithdrawableShares(l.now())
	quantity, err := pool.Quantity(shares)
	if nil != err {
		return nil, err
	}
	return &Withdrawable{
		Shares:   shares,
		Quantity: quantity,
	}, nil
}

// Convert - current quantity of a number of shares of an asset
func (l *Ledger) Convert(ctx context.Context, asset lockrecord.Address, shares uint64) (uint64, error) {
	if err := l.enter(ctx); nil != err {
		return 0, err
	}
	defer l.exit()

	pool, err := l.committedPool(ctx, asset)
	if nil != err {
		return 0, err
	}
	return pool.Quantity(shares)
}

// Pool - totals for an asset
func (l *Ledger) Pool(ctx context.Context, asset lockrecord.Address) (*PoolInfo, error) {
	if err := l.enter(ctx); nil != err {
		return nil, err
	}
	defer l.exit()

	pool, err := l.committedPool(ctx, asset)
	if nil != err {
		return nil, err
	}

	count := uint64(0)
	err = l.pools.AssetLocks.NewFetchCursor(asset.Bytes()).Map(func(key []byte, value []byte) error {
		count += 1
		return nil
	})
	if nil != err {
		return nil, err
	}

	return &PoolInfo{
		Asset:       asset,
		TotalShares: pool.TotalShares,
		Balance:     pool.Balance,
		Locks:       count,
	}, nil
}

// OwnerLocks - locks held by owner with ids from start upwards
func (l *Ledger) OwnerLocks(ctx context.Context, owner lockrecord.Address, start uint64, count int) ([]*lockrecord.Record, error) {
	return l.list(ctx, l.pools.OwnerLocks, owner, start, count)
}

// AssetLocks - locks of an asset with ids from start upwards
func (l *Ledger) AssetLocks(ctx context.Context, asset lockrecord.Address, start uint64, count int) ([]*lockrecord.Record, error) {
	return l.list(ctx, l.pools.AssetLocks, asset, start, count)
}

// FeesCollected - total of all fee payments
func (l *Ledger) FeesCollected() uint64 {
	n, _ := l.pools.FeesCollected.GetN(feesKey)
	return n
}

func (l *Ledger) list(ctx context.Context, index *storage.PoolHandle, a lockrecord.Address, start uint64, count int) ([]*lockrecord.Record, error) {
	if err := a.Validate(); nil != err {
		return nil, err
	}
	if count <= 0 || count > maximumListCount {
		return nil, fault.InvalidCount
	}

	if err := l.enter(ctx); nil != err {
		return nil, err
	}
	defer l.exit()

	cursor := index.NewFetchCursor(a.Bytes())
	if start > 0 {
		cursor.Seek(indexKey(a, start))
	}
	elements, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	records := make([]*lockrecord.Record, 0, len(elements))
	for _, e := range elements {
		if len(e.Value) < 8 {
			return nil, fault.TruncatedRecord
		}
		r, err := l.get(binary.BigEndian.Uint64(e.Value))
		if nil != err {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// pool state from committed data
func (l *Ledger) committedPool(ctx context.Context, asset lockrecord.Address) (sharepool.Pool, error) {
	a, err := l.custody.Asset(nil, asset)
	if nil != err {
		return sharepool.Pool{}, err
	}
	balance, err := l.balance(ctx, a)
	if nil != err {
		return sharepool.Pool{}, err
	}
	n, _ := l.pools.TotalShares.GetN(asset.Bytes())
	return sharepool.Pool{
		TotalShares: n,
		Balance:     balance,
	}, nil
}
