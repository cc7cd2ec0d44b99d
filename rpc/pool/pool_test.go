// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pool_test

import (
	"context"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/fee"
	"github.com/bitmark-inc/lockerd/ledger"
	"github.com/bitmark-inc/lockerd/rpc/fixtures"
	"github.com/bitmark-inc/lockerd/rpc/pool"
)

func TestPool(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	e := fixtures.NewEnvironment(t, fee.Schedule{})
	defer e.Close()

	p := pool.New(logger.New(fixtures.LogCategory), e.Ledger)

	var reply pool.GetReply
	err := p.Get(&pool.GetArguments{Asset: "FOT"}, &reply)
	assert.Nil(t, err, "wrong Get")
	assert.Equal(t, uint64(0), reply.TotalShares, "shares before any lock")
	assert.Equal(t, uint64(0), reply.Locks, "locks before any lock")

	// 1% is lost on the way in
	requests := []ledger.LockRequest{
		{Owner: "alice", Quantity: 1000, EndEmission: uint64(e.Now + 100)},
		{Owner: "bob", Quantity: 1000, EndEmission: uint64(e.Now + 100)},
	}
	_, err = e.Ledger.Create(context.Background(), fixtures.Alice.Address(), "FOT", requests, false, 0)
	assert.Nil(t, err, "create")

	err = p.Get(&pool.GetArguments{Asset: "FOT"}, &reply)
	assert.Nil(t, err, "wrong Get")
	assert.Equal(t, "FOT", string(reply.Asset), "wrong asset")
	assert.Equal(t, uint64(1980), reply.Balance, "wrong balance")
	assert.Equal(t, uint64(1980), reply.TotalShares, "wrong shares")
	assert.Equal(t, uint64(2), reply.Locks, "wrong lock count")

	// halving the custodial balance halves every claim
	err = e.Vault.Rebase("FOT", 990)
	assert.Nil(t, err, "rebase")

	var converted pool.ConvertReply
	err = p.Convert(&pool.ConvertArguments{Asset: "FOT", Shares: 990}, &converted)
	assert.Nil(t, err, "wrong Convert")
	assert.Equal(t, uint64(495), converted.Quantity, "wrong quantity")

	err = p.Get(&pool.GetArguments{Asset: "NONE"}, &reply)
	assert.Equal(t, fault.AssetNotFound, err, "unknown asset")
}
