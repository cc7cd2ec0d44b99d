// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package lock - RPC handlers for the lock lifecycle
package lock

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lockerd/account"
	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/ledger"
	"github.com/bitmark-inc/lockerd/lockrecord"
	"github.com/bitmark-inc/lockerd/rpc/authentication"
	"github.com/bitmark-inc/lockerd/rpc/ratelimit"
)

const (
	rateLimitLock = 200
	rateBurstLock = 100

	maximumLockList = 100
)

// Lock - type for RPC
//
// every change must be signed by the caller
type Lock struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Ledger   *ledger.Ledger
	Verifier *authentication.Verifier
}

// New - create the lock handler
func New(log *logger.L, l *ledger.Ledger, verifier *authentication.Verifier) *Lock {
	return &Lock{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitLock, rateBurstLock),
		Ledger:   l,
		Verifier: verifier,
	}
}

// check the signed header of a change
func (lock *Lock) verify(method string, request *account.Request, arguments interface{}) error {
	if err := lock.Verifier.Verify(method, request, arguments); nil != err {
		lock.Log.Warnf("%s: caller: %q  rejected: %s", method, request.Caller, err)
		return err
	}
	return nil
}

// Create locks
// ------------

// CreateArguments - arguments for RPC
type CreateArguments struct {
	account.Request
	Asset   lockrecord.Address   `json:"asset"`
	Locks   []ledger.LockRequest `json:"locks"`
	Vesting bool                 `json:"vesting"`
	Payment uint64               `json:"payment,string"`
}

// CreateReply - results from creating locks
type CreateReply struct {
	Locks []*lockrecord.Record `json:"locks"`
}

// Create - lock caller's asset for each requested owner
func (lock *Lock) Create(arguments *CreateArguments, reply *CreateReply) error {
	count := len(arguments.Locks)
	if 0 == count {
		return fault.EmptyLockList
	}
	if err := ratelimit.LimitN(lock.Limiter, count, maximumLockList); nil != err {
		return err
	}

	if err := lock.verify("Lock.Create", &arguments.Request, arguments); nil != err {
		return err
	}

	lock.Log.Infof("Lock.Create: caller: %q  asset: %q  count: %d  vesting: %t", arguments.Caller, arguments.Asset, len(arguments.Locks), arguments.Vesting)

	records, err := lock.Ledger.Create(context.Background(), arguments.Caller, arguments.Asset, arguments.Locks, arguments.Vesting, arguments.Payment)
	if nil != err {
		lock.Log.Warnf("Lock.Create: error: %s", err)
		return err
	}
	reply.Locks = records
	return nil
}

// Withdraw from a lock
// --------------------

// WithdrawArguments - arguments for RPC
type WithdrawArguments struct {
	account.Request
	LockId   uint64             `json:"lockId,string"`
	Quantity uint64             `json:"quantity,string"`
}

// Withdraw - release quantity to the lock owner
func (lock *Lock) Withdraw(arguments *WithdrawArguments, reply *ledger.WithdrawResult) error {
	if err := ratelimit.Limit(lock.Limiter); nil != err {
		return err
	}

	if err := lock.verify("Lock.Withdraw", &arguments.Request, arguments); nil != err {
		return err
	}

	lock.Log.Infof("Lock.Withdraw: caller: %q  id: %d  quantity: %d", arguments.Caller, arguments.LockId, arguments.Quantity)

	result, err := lock.Ledger.Withdraw(context.Background(), arguments.Caller, arguments.LockId, arguments.Quantity)
	if nil != err {
		lock.Log.Warnf("Lock.Withdraw: error: %s", err)
		return err
	}
	*reply = *result
	return nil
}

// Increment a lock
// ----------------

// IncrementArguments - arguments for RPC
type IncrementArguments struct {
	account.Request
	LockId   uint64             `json:"lockId,string"`
	Quantity uint64             `json:"quantity,string"`
}

// Increment - add caller's asset to a lock
func (lock *Lock) Increment(arguments *IncrementArguments, reply *ledger.IncrementResult) error {
	if err := ratelimit.Limit(lock.Limiter); nil != err {
		return err
	}

	if err := lock.verify("Lock.Increment", &arguments.Request, arguments); nil != err {
		return err
	}

	lock.Log.Infof("Lock.Increment: caller: %q  id: %d  quantity: %d", arguments.Caller, arguments.LockId, arguments.Quantity)

	result, err := lock.Ledger.Increment(context.Background(), arguments.Caller, arguments.LockId, arguments.Quantity)
	if nil != err {
		lock.Log.Warnf("Lock.Increment: error: %s", err)
		return err
	}
	*reply = *result
	return nil
}

// Relock
// ------

// RelockArguments - arguments for RPC
type RelockArguments struct {
	account.Request
	LockId      uint64             `json:"lockId,string"`
	EndEmission uint64             `json:"endEmission"`
	Payment     uint64             `json:"payment,string"`
}

// RecordReply - a single lock
type RecordReply struct {
	Lock *lockrecord.Record `json:"lock"`
}

// Relock - move the end of a lock later
func (lock *Lock) Relock(arguments *RelockArguments, reply *RecordReply) error {
	if err := ratelimit.Limit(lock.Limiter); nil != err {
		return err
	}

	if err := lock.verify("Lock.Relock", &arguments.Request, arguments); nil != err {
		return err
	}

	lock.Log.Infof("Lock.Relock: caller: %q  id: %d  end: %d", arguments.Caller, arguments.LockId, arguments.EndEmission)

	r, err := lock.Ledger.Relock(context.Background(), arguments.Caller, arguments.LockId, arguments.EndEmission, arguments.Payment)
	if nil != err {
		lock.Log.Warnf("Lock.Relock: error: %s", err)
		return err
	}
	reply.Lock = r
	return nil
}

// Split
// -----

// SplitArguments - arguments for RPC
type SplitArguments struct {
	account.Request
	LockId   uint64             `json:"lockId,string"`
	Quantity uint64             `json:"quantity,string"`
	Payment  uint64             `json:"payment,string"`
}

// SplitReply - both halves of a split
type SplitReply struct {
	Source *lockrecord.Record `json:"source"`
	Split  *lockrecord.Record `json:"split"`
}

// Split - move part of a cliff lock to a new lock
func (lock *Lock) Split(arguments *SplitArguments, reply *SplitReply) error {
	if err := ratelimit.Limit(lock.Limiter); nil != err {
		return err
	}

	if err := lock.verify("Lock.Split", &arguments.Request, arguments); nil != err {
		return err
	}

	lock.Log.Infof("Lock.Split: caller: %q  id: %d  quantity: %d", arguments.Caller, arguments.LockId, arguments.Quantity)

	source, split, err := lock.Ledger.Split(context.Background(), arguments.Caller, arguments.LockId, arguments.Quantity, arguments.Payment)
	if nil != err {
		lock.Log.Warnf("Lock.Split: error: %s", err)
		return err
	}
	reply.Source = source
	reply.Split = split
	return nil
}

// Transfer
// --------

// TransferArguments - arguments for RPC
type TransferArguments struct {
	account.Request
	LockId   uint64             `json:"lockId,string"`
	NewOwner lockrecord.Address `json:"newOwner"`
	Payment  uint64             `json:"payment,string"`
}

// TransferReply - the retired and the new lock
type TransferReply struct {
	Retired *lockrecord.Record `json:"retired"`
	Current *lockrecord.Record `json:"current"`
}

// Transfer - give a lock to a new owner
func (lock *Lock) Transfer(arguments *TransferArguments, reply *TransferReply) error {
	if err := ratelimit.Limit(lock.Limiter); nil != err {
		return err
	}

	if err := lock.verify("Lock.Transfer", &arguments.Request, arguments); nil != err {
		return err
	}

	lock.Log.Infof("Lock.Transfer: caller: %q  id: %d  new owner: %q", arguments.Caller, arguments.LockId, arguments.NewOwner)

	retired, current, err := lock.Ledger.TransferOwnership(context.Background(), arguments.Caller, arguments.LockId, arguments.NewOwner, arguments.Payment)
	if nil != err {
		lock.Log.Warnf("Lock.Transfer: error: %s", err)
		return err
	}
	reply.Retired = retired
	reply.Current = current
	return nil
}

// Read a lock
// -----------

// GetArguments - arguments for RPC
type GetArguments struct {
	LockId uint64 `json:"lockId,string"`
}

// Get - a lock by id
func (lock *Lock) Get(arguments *GetArguments, reply *RecordReply) error {
	if err := ratelimit.Limit(lock.Limiter); nil != err {
		return err
	}

	r, err := lock.Ledger.Get(context.Background(), arguments.LockId)
	if nil != err {
		return err
	}
	reply.Lock = r
	return nil
}

// Withdrawable - what the owner could withdraw now
func (lock *Lock) Withdrawable(arguments *GetArguments, reply *ledger.Withdrawable) error {
	if err := ratelimit.Limit(lock.Limiter); nil != err {
		return err
	}

	w, err := lock.Ledger.Withdrawable(context.Background(), arguments.LockId)
	if nil != err {
		return err
	}
	*reply = *w
	return nil
}

// List locks
// ----------

// ListArguments - arguments for RPC
type ListArguments struct {
	Address lockrecord.Address `json:"address"`
	Start   uint64             `json:"start,string"`
	Count   int                `json:"count"`
}

// ListReply - a page of locks
//
// NextStart is the start for the following page
type ListReply struct {
	Locks     []*lockrecord.Record `json:"locks"`
	NextStart uint64               `json:"nextStart,string"`
}

// Owner - locks held by an owner
func (lock *Lock) Owner(arguments *ListArguments, reply *ListReply) error {
	return lock.list(arguments, reply, lock.Ledger.OwnerLocks)
}

// Asset - locks of an asset
func (lock *Lock) Asset(arguments *ListArguments, reply *ListReply) error {
	return lock.list(arguments, reply, lock.Ledger.AssetLocks)
}

func (lock *Lock) list(arguments *ListArguments, reply *ListReply, f func(context.Context, lockrecord.Address, uint64, int) ([]*lockrecord.Record, error)) error {
	if err := ratelimit.LimitN(lock.Limiter, arguments.Count, maximumLockList); nil != err {
		return err
	}

	records, err := f(context.Background(), arguments.Address, arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Locks = records
	reply.NextStart = arguments.Start
	if n := len(records); n > 0 {
		reply.NextStart = records[n-1].Id + 1
	}
	return nil
}
