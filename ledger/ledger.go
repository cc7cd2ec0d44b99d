// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lockerd/counter"
	"github.com/bitmark-inc/lockerd/custody"
	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/fee"
	"github.com/bitmark-inc/lockerd/storage"
)

// MaximumEmission - end emissions at or above this are in milliseconds
const MaximumEmission = 10000000000

// operation names for events and counters
const (
	OpCreate    = "create"
	OpWithdraw  = "withdraw"
	OpIncrement = "increment"
	OpRelock    = "relock"
	OpSplit     = "split"
	OpTransfer  = "transfer"
)

// Configuration - ledger parameters
type Configuration struct {
	MinimumDeposit uint64 `gluamapper:"minimum_deposit" json:"minimum_deposit"`
}

// Handles - storage pools used by the ledger
type Handles struct {
	Locks         *storage.PoolHandle
	LockNextId    *storage.PoolHandle
	TotalShares   *storage.PoolHandle
	FeesCollected *storage.PoolHandle
	OwnerLocks    *storage.PoolHandle
	AssetLocks    *storage.PoolHandle
}

// EventSink - receives committed changes, must not block
type EventSink interface {
	Send(command string, item interface{}) int
}

// Ledger - the lock registry and its share pools
type Ledger struct {
	sync.Mutex

	log            *logger.L
	pools          Handles
	custody        custody.Registry
	fees           *fee.Fees
	events         EventSink
	clock          func() time.Time
	begin          func() (storage.Transaction, error)
	minimumDeposit uint64
	counts         *counter.Set
}

// New - create a ledger, a nil clock uses time.Now
func New(
	log *logger.L,
	configuration Configuration,
	pools Handles,
	registry custody.Registry,
	fees *fee.Fees,
	events EventSink,
	clock func() time.Time,
) (*Ledger, error) {

	if nil == log {
		return nil, fault.InvalidLoggerChannel
	}
	if nil == pools.Locks || nil == pools.LockNextId || nil == pools.TotalShares ||
		nil == pools.FeesCollected || nil == pools.OwnerLocks || nil == pools.AssetLocks {
		return nil, fault.DatabaseIsNotSet
	}
	if nil == registry || nil == fees || nil == events {
		return nil, fault.MissingParameters
	}
	if nil == clock {
		clock = time.Now
	}

	log.Infof("minimum deposit: %d", configuration.MinimumDeposit)

	return &Ledger{
		log:            log,
		pools:          pools,
		custody:        registry,
		fees:           fees,
		events:         events,
		clock:          clock,
		begin:          storage.NewDBTransaction,
		minimumDeposit: configuration.MinimumDeposit,
		counts:         counter.NewSet(OpCreate, OpWithdraw, OpIncrement, OpRelock, OpSplit, OpTransfer),
	}, nil
}

// Counts - number of committed operations of each kind
func (l *Ledger) Counts() map[string]uint64 {
	return l.counts.Snapshot()
}

// the context key marking a call chain that runs inside a custody call
type custodyKey struct{}

// take the ledger lock
//
// a context passed down from one of this ledger's own custody calls
// already holds the lock further up its chain and is refused, any other
// caller waits
func (l *Ledger) enter(ctx context.Context) error {
	if owner, ok := ctx.Value(custodyKey{}).(*Ledger); ok && owner == l {
		return fault.ReentrantCall
	}
	l.Lock()
	return nil
}

func (l *Ledger) exit() {
	l.Unlock()
}

// run a call into custody with its context marked as inside this ledger
func (l *Ledger) external(ctx context.Context, f func(ctx context.Context) error) error {
	return f(context.WithValue(ctx, custodyKey{}, l))
}

func (l *Ledger) now() uint64 {
	return uint64(l.clock().Unix())
}

// run f in a transaction, commit and publish its events only if it succeeds
func (l *Ledger) update(operation string, f func(trx storage.Transaction) ([]*Event, error)) error {
	trx, err := l.begin()
	if nil != err {
		return err
	}

	events, err := f(trx)
	if nil != err {
		trx.Abort()
		l.log.Debugf("%s: rejected: %s", operation, err)
		return err
	}

	if err := trx.Commit(); nil != err {
		l.log.Errorf("%s: commit error: %s", operation, err)
		return err
	}

	l.counts.Increment(operation)
	for _, e := range events {
		l.log.Infof("%s: lock: %d  asset: %q  owner: %q  quantity: %d  shares: %d", e.Operation, e.LockId, e.Asset, e.Owner, e.Quantity, e.Shares)
		if 0 != l.events.Send(eventCommand, e) {
			l.log.Warnf("%s: event for lock: %d dropped", e.Operation, e.LockId)
		}
	}
	return nil
}
