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
	"github.com/bitmark-inc/lockerd/sharepool"
	"github.com/bitmark-inc/lockerd/storage"
	"github.com/bitmark-inc/lockerd/util"
)

// LockRequest - one lock to create
type LockRequest struct {
	Owner       lockrecord.Address `json:"owner"`
	Quantity    uint64             `json:"quantity,string"`
	EndEmission uint64             `json:"endEmission"`
}

// Create - lock caller's asset into one record per request
//
// the total of all requests is transferred once; the quantity actually
// received is shared out in proportion to each requested quantity and
// vesting locks start emitting now
func (l *Ledger) Create(ctx context.Context, caller lockrecord.Address, asset lockrecord.Address, requests []LockRequest, isVesting bool, payment uint64) ([]*lockrecord.Record, error) {
	if err := l.enter(ctx); nil != err {
		return nil, err
	}
	defer l.exit()

	if 0 == len(requests) {
		return nil, fault.EmptyLockList
	}
	if err := caller.Validate(); nil != err {
		return nil, err
	}
	if err := asset.Validate(); nil != err {
		return nil, err
	}

	now := l.now()
	requested := uint64(0)
	for _, r := range requests {
		if err := r.Owner.Validate(); nil != err {
			return nil, err
		}
		if 0 == r.Quantity {
			return nil, fault.ZeroAmount
		}
		if err := checkEndEmission(r.EndEmission, now); nil != err {
			return nil, err
		}
		if requested+r.Quantity < requested {
			return nil, fault.AmountOverflow
		}
		requested += r.Quantity
	}

	start := uint64(0)
	if isVesting {
		start = now
	}

	records := make([]*lockrecord.Record, 0, len(requests))
	err := l.update(OpCreate, func(trx storage.Transaction) ([]*Event, error) {
		if err := l.chargeFee(ctx, trx, fee.Create, caller, payment); nil != err {
			return nil, err
		}

		a, err := l.custody.Asset(trx, asset)
		if nil != err {
			return nil, err
		}

		before, received, err := l.receive(ctx, a, caller, requested)
		if nil != err {
			return nil, err
		}

		pool := sharepool.Pool{
			TotalShares: l.totalShares(trx, asset),
			Balance:     before,
		}

		events := make([]*Event, 0, len(requests))
		for _, request := range requests {

			// cannot overflow as the result is at most received
			quantity, _ := util.MulDiv(received, request.Quantity, requested)
			if quantity < l.minimumDeposit {
				return nil, fault.BelowMinimumDeposit
			}

			shares, err := pool.Mint(quantity)
			if nil != err {
				return nil, err
			}
			l.log.Debugf("create: quantity: %d  shares: %d  pool: %+v", quantity, shares, pool)

			r := &lockrecord.Record{
				Asset:           asset,
				Owner:           request.Owner,
				SharesDeposited: shares,
				SharesWithdrawn: 0,
				StartEmission:   start,
				EndEmission:     request.EndEmission,
			}
			packed, err := l.insert(trx, r)
			if nil != err {
				return nil, err
			}
			records = append(records, r)
			events = append(events, newEvent(OpCreate, r, packed, quantity, shares))
		}

		l.putTotalShares(trx, asset, pool.TotalShares)
		return events, nil
	})
	if nil != err {
		return nil, err
	}
	return records, nil
}
