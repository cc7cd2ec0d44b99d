// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"

	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/fee"
	"github.com/bitmark-inc/lockerd/lockrecord"
	"github.com/bitmark-inc/lockerd/storage"
)

// Split - move quantity of a cliff lock into a new lock owned by caller
//
// the source record counts the moved shares as withdrawn, the pool
// total is unchanged
func (l *Ledger) Split(ctx context.Context, caller lockrecord.Address, lockId uint64, quantity uint64, payment uint64) (*lockrecord.Record, *lockrecord.Record, error) {
	if err := l.enter(ctx); nil != err {
		return nil, nil, err
	}
	defer l.exit()

	if 0 == quantity {
		return nil, nil, fault.ZeroAmount
	}

	var source, split *lockrecord.Record
	err := l.update(OpSplit, func(trx storage.Transaction) ([]*Event, error) {
		r, err := l.loadOwned(trx, lockId, caller)
		if nil != err {
			return nil, err
		}
		if !r.IsCliff() {
			return nil, fault.CannotSplitVestingLock
		}
		if err := l.chargeFee(ctx, trx, fee.Edit, caller, payment); nil != err {
			return nil, err
		}

		a, err := l.custody.Asset(trx, r.Asset)
		if nil != err {
			return nil, err
		}
		pool, err := l.pool(ctx, trx, a, r.Asset)
		if nil != err {
			return nil, err
		}

		shares, err := pool.Shares(quantity)
		if nil != err {
			return nil, err
		}
		if shares > r.Remaining() {
			return nil, fault.InsufficientShares
		}
		r.SharesWithdrawn += shares

		packed, err := l.save(trx, r)
		if nil != err {
			return nil, err
		}

		n := &lockrecord.Record{
			Asset:           r.Asset,
			Owner:           caller,
			SharesDeposited: shares,
			SharesWithdrawn: 0,
			StartEmission:   0,
			EndEmission:     r.EndEmission,
		}
		newPacked, err := l.insert(trx, n)
		if nil != err {
			return nil, err
		}
		l.log.Debugf("split: lock: %d  shares: %d  into lock: %d", r.Id, shares, n.Id)

		source = r
		split = n
		return []*Event{
			newEvent(OpSplit, r, packed, 0, shares),
			newEvent(OpSplit, n, newPacked, quantity, shares),
		}, nil
	})
	if nil != err {
		return nil, nil, err
	}
	return source, split, nil
}
