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

// TransferOwnership - re-key a lock to a new owner
//
// a new record takes over the claim unchanged and the old record is
// retired by marking all of its shares as withdrawn
func (l *Ledger) TransferOwnership(ctx context.Context, caller lockrecord.Address, lockId uint64, newOwner lockrecord.Address, payment uint64) (*lockrecord.Record, *lockrecord.Record, error) {
	if err := l.enter(ctx); nil != err {
		return nil, nil, err
	}
	defer l.exit()

	if err := newOwner.Validate(); nil != err {
		return nil, nil, err
	}
	if newOwner == caller {
		return nil, nil, fault.SameOwner
	}

	var retired, current *lockrecord.Record
	err := l.update(OpTransfer, func(trx storage.Transaction) ([]*Event, error) {
		r, err := l.loadOwned(trx, lockId, caller)
		if nil != err {
			return nil, err
		}
		if err := l.chargeFee(ctx, trx, fee.Edit, caller, payment); nil != err {
			return nil, err
		}

		n := &lockrecord.Record{
			Asset:           r.Asset,
			Owner:           newOwner,
			SharesDeposited: r.SharesDeposited,
			SharesWithdrawn: r.SharesWithdrawn,
			StartEmission:   r.StartEmission,
			EndEmission:     r.EndEmission,
		}
		newPacked, err := l.insert(trx, n)
		if nil != err {
			return nil, err
		}

		r.SharesWithdrawn = r.SharesDeposited
		packed, err := l.save(trx, r)
		if nil != err {
			return nil, err
		}
		trx.Delete(l.pools.OwnerLocks, indexKey(caller, r.Id))

		l.log.Debugf("transfer: lock: %d  from: %q  to: %q  as lock: %d", r.Id, caller, newOwner, n.Id)

		retired = r
		current = n
		return []*Event{
			newEvent(OpTransfer, r, packed, 0, 0),
			newEvent(OpTransfer, n, newPacked, 0, n.Remaining()),
		}, nil
	})
	if nil != err {
		return nil, nil, err
	}
	return retired, current, nil
}
