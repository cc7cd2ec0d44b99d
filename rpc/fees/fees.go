// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fees - RPC handlers for the service fee schedule
package fees

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lockerd/account"
	"github.com/bitmark-inc/lockerd/fee"
	"github.com/bitmark-inc/lockerd/ledger"
	"github.com/bitmark-inc/lockerd/rpc/authentication"
	"github.com/bitmark-inc/lockerd/rpc/ratelimit"
)

const (
	rateLimitFee = 200
	rateBurstFee = 100
)

// Fee - type for RPC
type Fee struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Fees     *fee.Fees
	Ledger   *ledger.Ledger
	Verifier *authentication.Verifier
}

// New - create the fee handler
func New(log *logger.L, fees *fee.Fees, l *ledger.Ledger, verifier *authentication.Verifier) *Fee {
	return &Fee{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitFee, rateBurstFee),
		Fees:     fees,
		Ledger:   l,
		Verifier: verifier,
	}
}

// GetArguments - empty arguments for RPC
type GetArguments struct{}

// GetReply - the schedule and the total collected
type GetReply struct {
	Schedule  fee.Schedule `json:"schedule"`
	Collected uint64       `json:"collected,string"`
}

// Get - current fee schedule
func (f *Fee) Get(_ *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(f.Limiter); nil != err {
		return err
	}

	reply.Schedule = f.Fees.Schedule()
	reply.Collected = f.Ledger.FeesCollected()
	return nil
}

// SetArguments - arguments for RPC
type SetArguments struct {
	account.Request
	Schedule fee.Schedule `json:"schedule"`
}

// Set - replace the schedule, caller must be the current admin
func (f *Fee) Set(arguments *SetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(f.Limiter); nil != err {
		return err
	}
	if err := f.Verifier.Verify("Fee.Set", &arguments.Request, arguments); nil != err {
		f.Log.Warnf("Fee.Set: caller: %q  rejected: %s", arguments.Caller, err)
		return err
	}

	f.Log.Infof("Fee.Set: caller: %q  schedule: %+v", arguments.Caller, arguments.Schedule)

	if err := f.Fees.Update(arguments.Caller, arguments.Schedule); nil != err {
		f.Log.Warnf("Fee.Set: error: %s", err)
		return err
	}

	reply.Schedule = f.Fees.Schedule()
	reply.Collected = f.Ledger.FeesCollected()
	return nil
}
