// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fee - flat service fees for ledger operations
package fee

import (
	"sync"

	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/lockrecord"
	"github.com/bitmark-inc/lockerd/util"
)

// Kind - which flat fee applies
type Kind int

// fee kinds
const (
	Create Kind = iota // creating locks
	Edit               // relock, split or transfer of ownership
)

// maximum discount percentage
const maximumDiscount = 100

// Schedule - the current fee parameters
type Schedule struct {
	Admin             lockrecord.Address `gluamapper:"admin" json:"admin"`
	CreateFee         uint64             `gluamapper:"create_fee" json:"createFee"`
	EditFee           uint64             `gluamapper:"edit_fee" json:"editFee"`
	ReferralAsset     lockrecord.Address `gluamapper:"referral_asset" json:"referralAsset"`
	ReferralThreshold uint64             `gluamapper:"referral_threshold" json:"referralThreshold"`
	ReferralDiscount  uint64             `gluamapper:"referral_discount" json:"referralDiscount"`
}

// Fees - the fee schedule shared by the ledger and the RPC layer
type Fees struct {
	sync.RWMutex
	schedule Schedule
}

// New - create from an initial schedule
func New(schedule Schedule) (*Fees, error) {
	if err := schedule.Validate(); nil != err {
		return nil, err
	}
	return &Fees{
		schedule: schedule,
	}, nil
}

// Schedule - a copy of the current schedule
func (f *Fees) Schedule() Schedule {
	f.RLock()
	defer f.RUnlock()
	return f.schedule
}

// Update - replace the schedule, only the current admin may do this
func (f *Fees) Update(caller lockrecord.Address, schedule Schedule) error {
	f.Lock()
	defer f.Unlock()

	if caller != f.schedule.Admin {
		return fault.NotAdministrator
	}
	if err := schedule.Validate(); nil != err {
		return err
	}
	f.schedule = schedule
	return nil
}

// Validate - check the schedule parameters
func (s Schedule) Validate() error {
	if err := s.Admin.Validate(); nil != err {
		return err
	}
	if "" != s.ReferralAsset {
		if err := s.ReferralAsset.Validate(); nil != err {
			return err
		}
		if 0 == s.ReferralThreshold {
			return fault.ZeroReferralThreshold
		}
	}
	if s.ReferralDiscount > maximumDiscount {
		return fault.InvalidItem
	}
	return nil
}

// Discounted - true if a holding of the referral asset earns the discount
//
// holding nothing never earns it
func (s Schedule) Discounted(holding uint64) bool {
	return "" != s.ReferralAsset && 0 != holding && holding >= s.ReferralThreshold
}

// Quote - the exact payment required
func (s Schedule) Quote(kind Kind, holding uint64) uint64 {
	amount := s.EditFee
	if Create == kind {
		amount = s.CreateFee
	}
	if !s.Discounted(holding) {
		return amount
	}
	discount, _ := util.MulDiv(amount, s.ReferralDiscount, maximumDiscount)
	return amount - discount
}

// Check - payment must equal the quote
func (s Schedule) Check(kind Kind, holding uint64, payment uint64) error {
	if payment != s.Quote(kind, holding) {
		return fault.FeeIncorrect
	}
	return nil
}

// String - for printing
func (k Kind) String() string {
	switch k {
	case Create:
		return "create"
	case Edit:
		return "edit"
	default:
		return "unknown"
	}
}
