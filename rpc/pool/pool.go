// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pool - RPC handlers for per-asset share pools
package pool

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lockerd/ledger"
	"github.com/bitmark-inc/lockerd/lockrecord"
	"github.com/bitmark-inc/lockerd/rpc/ratelimit"
)

const (
	rateLimitPool = 200
	rateBurstPool = 100
)

// Pool - type for RPC
type Pool struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Ledger  *ledger.Ledger
}

// New - create the pool handler
func New(log *logger.L, l *ledger.Ledger) *Pool {
	return &Pool{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitPool, rateBurstPool),
		Ledger:  l,
	}
}

// GetArguments - arguments for RPC
type GetArguments struct {
	Asset lockrecord.Address `json:"asset"`
}

// GetReply - pool totals
type GetReply struct {
	Asset       lockrecord.Address `json:"asset"`
	TotalShares uint64             `json:"totalShares,string"`
	Balance     uint64             `json:"balance,string"`
	Locks       uint64             `json:"locks"`
}

// Get - total shares, live balance and number of locks of an asset
func (pool *Pool) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(pool.Limiter); nil != err {
		return err
	}

	info, err := pool.Ledger.Pool(context.Background(), arguments.Asset)
	if nil != err {
		return err
	}

	reply.Asset = info.Asset
	reply.TotalShares = info.TotalShares
	reply.Balance = info.Balance
	reply.Locks = info.Locks
	return nil
}

// ConvertArguments - arguments for RPC
type ConvertArguments struct {
	Asset  lockrecord.Address `json:"asset"`
	Shares uint64             `json:"shares,string"`
}

// ConvertReply - quantity of the shares
type ConvertReply struct {
	Quantity uint64 `json:"quantity,string"`
}

// Convert - current quantity of a number of shares
func (pool *Pool) Convert(arguments *ConvertArguments, reply *ConvertReply) error {
	if err := ratelimit.Limit(pool.Limiter); nil != err {
		return err
	}

	quantity, err := pool.Ledger.Convert(context.Background(), arguments.Asset, arguments.Shares)
	if nil != err {
		return err
	}
	reply.Quantity = quantity
	return nil
}
