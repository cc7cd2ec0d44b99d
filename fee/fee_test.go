// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fee_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/fee"
)

var schedule = fee.Schedule{
	Admin:             "admin",
	CreateFee:         1000,
	EditFee:           300,
	ReferralAsset:     "UNCX",
	ReferralThreshold: 10,
	ReferralDiscount:  25,
}

func TestQuote(t *testing.T) {
	tests := []struct {
		kind     fee.Kind
		holding  uint64
		expected uint64
	}{
		{fee.Create, 0, 1000},
		{fee.Create, 9, 1000},
		{fee.Create, 10, 750},
		{fee.Edit, 0, 300},
		{fee.Edit, 1000, 225},
	}

	for i, item := range tests {
		actual := schedule.Quote(item.kind, item.holding)
		assert.Equal(t, item.expected, actual, "%d: %s quote", i, item.kind)
	}
}

func TestQuoteWithoutReferral(t *testing.T) {
	s := schedule
	s.ReferralAsset = ""
	assert.Equal(t, uint64(1000), s.Quote(fee.Create, 1000000), "discount without referral asset")
}

func TestCheck(t *testing.T) {
	assert.Nil(t, schedule.Check(fee.Edit, 0, 300), "exact payment")
	assert.Equal(t, fault.FeeIncorrect, schedule.Check(fee.Edit, 0, 301), "over payment")
	assert.Equal(t, fault.FeeIncorrect, schedule.Check(fee.Edit, 0, 299), "under payment")
	assert.True(t, fault.IsErrFeePayment(schedule.Check(fee.Create, 10, 1000)), "undiscounted payment")
}

func TestNewInvalid(t *testing.T) {
	s := schedule
	s.Admin = ""
	_, err := fee.New(s)
	assert.Equal(t, fault.InvalidAddress, err, "wrong error")

	s = schedule
	s.ReferralDiscount = 101
	_, err = fee.New(s)
	assert.Equal(t, fault.InvalidItem, err, "wrong error")

	s = schedule
	s.ReferralThreshold = 0
	_, err = fee.New(s)
	assert.Equal(t, fault.ZeroReferralThreshold, err, "wrong error")

	// no referral asset so the threshold is unused
	s.ReferralAsset = ""
	_, err = fee.New(s)
	assert.Nil(t, err, "zero threshold without referral asset")
}

func TestZeroThresholdNeedsHolding(t *testing.T) {
	s := schedule
	s.ReferralThreshold = 0

	assert.False(t, s.Discounted(0), "discount for holding nothing")
	assert.Equal(t, uint64(1000), s.Quote(fee.Create, 0), "discounted quote for holding nothing")
	assert.True(t, s.Discounted(1), "no discount for a holder")
	assert.Equal(t, uint64(750), s.Quote(fee.Create, 1), "undiscounted quote for a holder")
}

func TestUpdateRejectsZeroThreshold(t *testing.T) {
	f, err := fee.New(schedule)
	assert.Nil(t, err, "new error")

	s := schedule
	s.ReferralThreshold = 0
	assert.Equal(t, fault.ZeroReferralThreshold, f.Update("admin", s), "wrong error")
	assert.Equal(t, uint64(10), f.Schedule().ReferralThreshold, "schedule changed")
}

func TestUpdate(t *testing.T) {
	f, err := fee.New(schedule)
	assert.Nil(t, err, "new error")

	s := schedule
	s.CreateFee = 0

	err = f.Update("mallory", s)
	assert.True(t, fault.IsErrAuthorisation(err), "non-admin update")
	assert.Equal(t, uint64(1000), f.Schedule().CreateFee, "schedule changed")

	err = f.Update("admin", s)
	assert.Nil(t, err, "admin update")
	assert.Equal(t, uint64(0), f.Schedule().CreateFee, "schedule not changed")

	// hand over administration
	s.Admin = "bob"
	assert.Nil(t, f.Update("admin", s), "admin hand over")
	assert.Equal(t, fault.NotAdministrator, f.Update("admin", s), "old admin still accepted")
}
