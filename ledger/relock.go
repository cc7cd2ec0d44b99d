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

// Relock - move the end emission of a lock later
func (l *Ledger) Relock(ctx context.Context, caller lockrecord.Address, lockId uint64, endEmission uint64, payment uint64) (*lockrecord.Record, error) {
	if err := l.enter(ctx); nil != err {
		return nil, err
	}
	defer l.exit()

	if endEmission >= MaximumEmission {
		return nil, fault.EmissionInMilliseconds
	}

	var result *lockrecord.Record
	err := l.update(OpRelock, func(trx storage.Transaction) ([]*Event, error) {
		r, err := l.loadOwned(trx, lockId, caller)
		if nil != err {
			return nil, err
		}
		if endEmission <= r.EndEmission {
			return nil, fault.EmissionNotAfterCurrent
		}
		if err := l.chargeFee(ctx, trx, fee.Edit, caller, payment); nil != err {
			return nil, err
		}

		r.EndEmission = endEmission
		packed, err := l.save(trx, r)
		if nil != err {
			return nil, err
		}

		result = r
		return []*Event{newEvent(OpRelock, r, packed, 0, 0)}, nil
	})
	if nil != err {
		return nil, err
	}
	return result, nil
}
