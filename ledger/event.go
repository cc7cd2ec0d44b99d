// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/lockerd/lockrecord"
)

// the message bus command for all ledger events
const eventCommand = "lock"

// Event - one committed change to a lock
//
// Quantity is the measured quantity moved by the operation, zero when
// nothing was transferred
type Event struct {
	Operation     string             `json:"operation"`
	LockId        uint64             `json:"lockId,string"`
	Asset         lockrecord.Address `json:"asset"`
	Owner         lockrecord.Address `json:"owner"`
	Quantity      uint64             `json:"quantity,string"`
	Shares        uint64             `json:"shares,string"`
	StartEmission uint64             `json:"startEmission"`
	EndEmission   uint64             `json:"endEmission"`
	Digest        lockrecord.Digest  `json:"digest"`
}

func newEvent(operation string, r *lockrecord.Record, packed lockrecord.Packed, quantity uint64, shares uint64) *Event {
	return &Event{
		Operation:     operation,
		LockId:        r.Id,
		Asset:         r.Asset,
		Owner:         r.Owner,
		Quantity:      quantity,
		Shares:        shares,
		StartEmission: r.StartEmission,
		EndEmission:   r.EndEmission,
		Digest:        packed.Digest(),
	}
}
