// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fees_test

import (
	"context"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/lockerd/account"
	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/fee"
	"github.com/bitmark-inc/lockerd/ledger"
	"github.com/bitmark-inc/lockerd/rpc/authentication"
	"github.com/bitmark-inc/lockerd/rpc/fees"
	"github.com/bitmark-inc/lockerd/rpc/fixtures"
)

func set(t *testing.T, f *fees.Fee, k *account.KeyPair, schedule fee.Schedule, reply *fees.GetReply) error {
	arguments := &fees.SetArguments{Schedule: schedule}
	fixtures.Sign(t, k, "Fee.Set", &arguments.Request, arguments)
	return f.Set(arguments, reply)
}

func TestFee(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	e := fixtures.NewEnvironment(t, fee.Schedule{CreateFee: 20})
	defer e.Close()

	verifier := authentication.New(authentication.DefaultWindow, nil)
	f := fees.New(logger.New(fixtures.LogCategory), e.Fees, e.Ledger, verifier)

	var reply fees.GetReply
	err := f.Get(&fees.GetArguments{}, &reply)
	assert.Nil(t, err, "wrong Get")
	assert.Equal(t, uint64(20), reply.Schedule.CreateFee, "wrong create fee")
	assert.Equal(t, uint64(0), reply.Collected, "fees before any lock")

	alice := fixtures.Alice.Address()
	requests := []ledger.LockRequest{
		{Owner: alice, Quantity: 100, EndEmission: uint64(e.Now + 100)},
	}
	_, err = e.Ledger.Create(context.Background(), alice, "WETH", requests, false, 20)
	assert.Nil(t, err, "create")

	schedule := fee.Schedule{
		Admin:     fixtures.Carol.Address(),
		CreateFee: 30,
		EditFee:   7,
	}
	err = set(t, f, fixtures.Bob, schedule, &reply)
	assert.Equal(t, fault.NotAdministrator, err, "not admin")

	// naming the administrator is not enough
	unsigned := &fees.SetArguments{Schedule: schedule}
	unsigned.Caller = fixtures.Administrator.Address()
	err = f.Set(unsigned, &reply)
	assert.Equal(t, fault.RequestExpired, err, "unsigned set")

	forged := &fees.SetArguments{Schedule: schedule}
	fixtures.Sign(t, fixtures.Bob, "Fee.Set", &forged.Request, forged)
	forged.Caller = fixtures.Administrator.Address()
	err = f.Set(forged, &reply)
	assert.Equal(t, fault.InvalidSignature, err, "forged admin")
	assert.Equal(t, uint64(20), e.Fees.Schedule().CreateFee, "schedule changed by forged request")

	err = set(t, f, fixtures.Administrator, schedule, &reply)
	assert.Nil(t, err, "wrong Set")
	assert.Equal(t, schedule, reply.Schedule, "schedule not replaced")
	assert.Equal(t, uint64(20), reply.Collected, "wrong collected")

	// admin rights moved to carol
	err = set(t, f, fixtures.Administrator, schedule, &reply)
	assert.Equal(t, fault.NotAdministrator, err, "old admin")

	schedule.EditFee = 8
	err = set(t, f, fixtures.Carol, schedule, &reply)
	assert.Nil(t, err, "new admin")
	assert.Equal(t, uint64(8), reply.Schedule.EditFee, "schedule not replaced by new admin")
}
