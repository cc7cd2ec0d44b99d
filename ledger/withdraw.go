// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"

	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/lockrecord"
	"github.com/bitmark-inc/lockerd/storage"
)

// WithdrawResult - outcome of a withdrawal
type WithdrawResult struct {
	Record   *lockrecord.Record `json:"record"`
	Shares   uint64             `json:"shares,string"`
	Quantity uint64             `json:"quantity,string"`
}

// Withdraw - release quantity of a lock to its owner
//
// the share debit is rounded up so the owner pays for rounding, if the
// debit would leave exactly one share that is worth nothing it takes
// that share too
func (l *Ledger) Withdraw(ctx context.Context, caller lockrecord.Address, lockId uint64, quantity uint64) (*WithdrawResult, error) {
	if err := l.enter(ctx); nil != err {
		return nil, err
	}
	defer l.exit()

	if 0 == quantity {
		return nil, fault.ZeroAmount
	}

	var result *WithdrawResult
	err := l.update(OpWithdraw, func(trx storage.Transaction) ([]*Event, error) {
		r, err := l.loadOwned(trx, lockId, caller)
		if nil != err {
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

		debit, err := pool.Debit(quantity)
		if nil != err {
			return nil, err
		}

		ceiling := r.WithdrawableShares(l.now())
		if debit+1 == ceiling && pool.IsDust() {
			debit = ceiling
		}
		if debit > ceiling {
			return nil, fault.ExceedsWithdrawable
		}

		r.SharesWithdrawn += debit
		released, err := pool.Burn(debit)
		if nil != err {
			return nil, err
		}
		l.log.Debugf("withdraw: lock: %d  debit: %d  ceiling: %d  released: %d", r.Id, debit, ceiling, released)

		packed, err := l.save(trx, r)
		if nil != err {
			return nil, err
		}
		l.putTotalShares(trx, r.Asset, pool.TotalShares)

		if err := l.send(ctx, a, caller, released); nil != err {
			return nil, err
		}

		result = &WithdrawResult{
			Record:   r,
			Shares:   debit,
			Quantity: released,
		}
		return []*Event{newEvent(OpWithdraw, r, packed, released, debit)}, nil
	})
	if nil != err {
		return nil, err
	}
	return result, nil
}
