// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lockerd/custody"
	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/fee"
	"github.com/bitmark-inc/lockerd/lockrecord"
	"github.com/bitmark-inc/lockerd/sharepool"
	"github.com/bitmark-inc/lockerd/storage"
)

// single key pools
var (
	nonceKey = []byte{}
	feesKey  = []byte{}
)

func idKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// index key: address ++ id, so a cursor on the address lists ids in order
func indexKey(a lockrecord.Address, id uint64) []byte {
	return append(a.Bytes(), idKey(id)...)
}

// read a record from the transaction view
func (l *Ledger) load(trx storage.Transaction, id uint64) (*lockrecord.Record, error) {
	packed := trx.Get(l.pools.Locks, idKey(id))
	if nil == packed {
		return nil, fault.LockNotFound
	}
	return lockrecord.Packed(packed).Unpack()
}

// read a record from committed data
func (l *Ledger) get(id uint64) (*lockrecord.Record, error) {
	packed := l.pools.Locks.Get(idKey(id))
	if nil == packed {
		return nil, fault.LockNotFound
	}
	return lockrecord.Packed(packed).Unpack()
}

// load a record that caller must own
func (l *Ledger) loadOwned(trx storage.Transaction, id uint64, caller lockrecord.Address) (*lockrecord.Record, error) {
	r, err := l.load(trx, id)
	if nil != err {
		return nil, err
	}
	if caller != r.Owner {
		return nil, fault.NotLockOwner
	}
	return r, nil
}

func (l *Ledger) save(trx storage.Transaction, r *lockrecord.Record) (lockrecord.Packed, error) {
	if r.SharesWithdrawn > r.SharesDeposited {
		logger.Panicf("lock: %d withdrawn: %d exceeds deposited: %d", r.Id, r.SharesWithdrawn, r.SharesDeposited)
	}
	packed, err := r.Pack()
	if nil != err {
		return nil, err
	}
	trx.Put(l.pools.Locks, idKey(r.Id), packed)
	return packed, nil
}

// store a new record with a fresh id and add it to both indexes
func (l *Ledger) insert(trx storage.Transaction, r *lockrecord.Record) (lockrecord.Packed, error) {
	id, found := trx.GetN(l.pools.LockNextId, nonceKey)
	if !found {
		id = 1
	}
	r.Id = id

	packed, err := l.save(trx, r)
	if nil != err {
		return nil, err
	}
	trx.PutN(l.pools.LockNextId, nonceKey, id+1)
	trx.PutN(l.pools.OwnerLocks, indexKey(r.Owner, id), id)
	trx.PutN(l.pools.AssetLocks, indexKey(r.Asset, id), id)
	return packed, nil
}

func (l *Ledger) totalShares(trx storage.Transaction, asset lockrecord.Address) uint64 {
	n, _ := trx.GetN(l.pools.TotalShares, asset.Bytes())
	return n
}

func (l *Ledger) putTotalShares(trx storage.Transaction, asset lockrecord.Address, n uint64) {
	trx.PutN(l.pools.TotalShares, asset.Bytes(), n)
}

// the pool of an asset at its current custodial balance
func (l *Ledger) pool(ctx context.Context, trx storage.Transaction, a custody.Asset, asset lockrecord.Address) (sharepool.Pool, error) {
	balance, err := l.balance(ctx, a)
	if nil != err {
		return sharepool.Pool{}, err
	}
	return sharepool.Pool{
		TotalShares: l.totalShares(trx, asset),
		Balance:     balance,
	}, nil
}

func (l *Ledger) balance(ctx context.Context, a custody.Asset) (uint64, error) {
	var balance uint64
	err := l.external(ctx, func(ctx context.Context) error {
		var err error
		balance, err = a.Balance(ctx)
		return err
	})
	return balance, err
}

// move amount into custody, returns the balance before the transfer and
// the quantity actually received
func (l *Ledger) receive(ctx context.Context, a custody.Asset, from lockrecord.Address, amount uint64) (uint64, uint64, error) {
	before, err := l.balance(ctx, a)
	if nil != err {
		return 0, 0, err
	}

	err = l.external(ctx, func(ctx context.Context) error {
		return a.TransferIn(ctx, from, amount)
	})
	if nil != err {
		return 0, 0, err
	}

	after, err := l.balance(ctx, a)
	if nil != err {
		return 0, 0, err
	}
	if after <= before {
		return 0, 0, fault.ZeroAmount
	}
	return before, after - before, nil
}

func (l *Ledger) send(ctx context.Context, a custody.Asset, to lockrecord.Address, amount uint64) error {
	if 0 == amount {
		return nil
	}
	return l.external(ctx, func(ctx context.Context) error {
		return a.TransferOut(ctx, to, amount)
	})
}

// check the attached payment and add it to the collected total
func (l *Ledger) chargeFee(ctx context.Context, trx storage.Transaction, kind fee.Kind, caller lockrecord.Address, payment uint64) error {
	schedule := l.fees.Schedule()

	holding := uint64(0)
	if "" != schedule.ReferralAsset {
		// an unregistered referral asset gives no discount
		a, err := l.custody.Asset(trx, schedule.ReferralAsset)
		if nil == err {
			err = l.external(ctx, func(ctx context.Context) error {
				var err error
				holding, err = a.HolderBalance(ctx, caller)
				return err
			})
			if nil != err {
				return err
			}
		}
	}

	if err := schedule.Check(kind, holding, payment); nil != err {
		return err
	}
	if 0 == payment {
		return nil
	}

	total, _ := trx.GetN(l.pools.FeesCollected, feesKey)
	if total+payment < total {
		return fault.AmountOverflow
	}
	trx.PutN(l.pools.FeesCollected, feesKey, total+payment)
	return nil
}

func checkEndEmission(end uint64, now uint64) error {
	if end >= MaximumEmission {
		return fault.EmissionInMilliseconds
	}
	if end <= now {
		return fault.EmissionNotInFuture
	}
	return nil
}
