// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/lockerd/account"
	"github.com/bitmark-inc/lockerd/ledger"
	"github.com/bitmark-inc/lockerd/lockrecord"
	"github.com/bitmark-inc/lockerd/rpc/lock"
)

// CreateData - data for a create request
type CreateData struct {
	Key     *account.KeyPair
	Asset   lockrecord.Address
	Locks   []ledger.LockRequest
	Vesting bool
	Payment uint64
}

// Create - lock caller's asset into new records
func (c *Client) Create(data *CreateData) (*lock.CreateReply, error) {
	arguments := lock.CreateArguments{
		Asset:   data.Asset,
		Locks:   data.Locks,
		Vesting: data.Vesting,
		Payment: data.Payment,
	}
	var reply lock.CreateReply
	if err := c.signedCall(data.Key, "Lock.Create", &arguments.Request, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Withdraw - release quantity from a lock
func (c *Client) Withdraw(key *account.KeyPair, lockId uint64, quantity uint64) (*ledger.WithdrawResult, error) {
	arguments := lock.WithdrawArguments{
		LockId:   lockId,
		Quantity: quantity,
	}
	var reply ledger.WithdrawResult
	if err := c.signedCall(key, "Lock.Withdraw", &arguments.Request, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Increment - add quantity to a lock
func (c *Client) Increment(key *account.KeyPair, lockId uint64, quantity uint64) (*ledger.IncrementResult, error) {
	arguments := lock.IncrementArguments{
		LockId:   lockId,
		Quantity: quantity,
	}
	var reply ledger.IncrementResult
	if err := c.signedCall(key, "Lock.Increment", &arguments.Request, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Relock - extend the end of a lock
func (c *Client) Relock(key *account.KeyPair, lockId uint64, endEmission uint64, payment uint64) (*lock.RecordReply, error) {
	arguments := lock.RelockArguments{
		LockId:      lockId,
		EndEmission: endEmission,
		Payment:     payment,
	}
	var reply lock.RecordReply
	if err := c.signedCall(key, "Lock.Relock", &arguments.Request, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Split - move quantity into a new lock
func (c *Client) Split(key *account.KeyPair, lockId uint64, quantity uint64, payment uint64) (*lock.SplitReply, error) {
	arguments := lock.SplitArguments{
		LockId:   lockId,
		Quantity: quantity,
		Payment:  payment,
	}
	var reply lock.SplitReply
	if err := c.signedCall(key, "Lock.Split", &arguments.Request, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Transfer - give a lock to a new owner
func (c *Client) Transfer(key *account.KeyPair, lockId uint64, newOwner lockrecord.Address, payment uint64) (*lock.TransferReply, error) {
	arguments := lock.TransferArguments{
		LockId:   lockId,
		NewOwner: newOwner,
		Payment:  payment,
	}
	var reply lock.TransferReply
	if err := c.signedCall(key, "Lock.Transfer", &arguments.Request, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// GetLock - fetch one lock
func (c *Client) GetLock(lockId uint64) (*lock.RecordReply, error) {
	arguments := lock.GetArguments{
		LockId: lockId,
	}
	var reply lock.RecordReply
	if err := c.call("Lock.Get", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Withdrawable - what the owner could withdraw now
func (c *Client) Withdrawable(lockId uint64) (*ledger.Withdrawable, error) {
	arguments := lock.GetArguments{
		LockId: lockId,
	}
	var reply ledger.Withdrawable
	if err := c.call("Lock.Withdrawable", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Owned - locks of an owner
func (c *Client) Owned(owner lockrecord.Address, start uint64, count int) (*lock.ListReply, error) {
	return c.list("Lock.Owner", owner, start, count)
}

// AssetLocks - locks of an asset
func (c *Client) AssetLocks(asset lockrecord.Address, start uint64, count int) (*lock.ListReply, error) {
	return c.list("Lock.Asset", asset, start, count)
}

func (c *Client) list(method string, address lockrecord.Address, start uint64, count int) (*lock.ListReply, error) {
	arguments := lock.ListArguments{
		Address: address,
		Start:   start,
		Count:   count,
	}
	var reply lock.ListReply
	if err := c.call(method, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
