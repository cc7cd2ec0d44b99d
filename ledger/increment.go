// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"

	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/lockrecord"
	"github.com/bitmark-inc/lockerd/sharepool"
	"github.com/bitmark-inc/lockerd/storage"
)

// IncrementResult - outcome of a top up
type IncrementResult struct {
	Record   *lockrecord.Record `json:"record"`
	Shares   uint64             `json:"shares,string"`
	Quantity uint64             `json:"quantity,string"`
}

// Increment - add caller's asset to any lock
func (l *Ledger) Increment(ctx context.Context, caller lockrecord.Address, lockId uint64, quantity uint64) (*IncrementResult, error) {
	if err := l.enter(ctx); nil != err {
		return nil, err
	}
	defer l.exit()

	if 0 == quantity {
		return nil, fault.ZeroAmount
	}
	if err := caller.Validate(); nil != err {
		return nil, err
	}

	var result *IncrementResult
	err := l.update(OpIncrement, func(trx storage.Transaction) ([]*Event, error) {
		r, err := l.load(trx, lockId)
		if nil != err {
			return nil, err
		}

		a, err := l.custody.Asset(trx, r.Asset)
		if nil != err {
			return nil, err
		}

		before, received, err := l.receive(ctx, a, caller, quantity)
		if nil != err {
			return nil, err
		}

		pool := sharepool.Pool{
			TotalShares: l.totalShares(trx, r.Asset),
			Balance:     before,
		}
		shares, err := pool.Mint(received)
		if nil != err {
			return nil, err
		}
		if r.SharesDeposited+shares < r.SharesDeposited {
			return nil, fault.AmountOverflow
		}
		r.SharesDeposited += shares
		l.log.Debugf("increment: lock: %d  received: %d  shares: %d", r.Id, received, shares)

		packed, err := l.save(trx, r)
		if nil != err {
			return nil, err
		}
		l.putTotalShares(trx, r.Asset, pool.TotalShares)

		result = &IncrementResult{
			Record:   r,
			Shares:   shares,
			Quantity: received,
		}
		return []*Event{newEvent(OpIncrement, r, packed, received, shares)}, nil
	})
	if nil != err {
		return nil, err
	}
	return result, nil
}
