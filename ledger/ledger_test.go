// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"math/rand"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/fee"
	"github.com/bitmark-inc/lockerd/ledger"
	"github.com/bitmark-inc/lockerd/lockrecord"
	"github.com/bitmark-inc/lockerd/messagebus"
)

func TestNewInvalid(t *testing.T) {
	setupStorage(t)
	defer teardown()

	fees, _ := fee.New(noFees)
	bus := new(messagebus.BroadcastQueue)

	_, err := ledger.New(nil, ledger.Configuration{}, handles(), nil, fees, bus, nil)
	assert.Equal(t, fault.InvalidLoggerChannel, err, "wrong error")

	_, err = ledger.New(logger.New("ledger"), ledger.Configuration{}, ledger.Handles{}, nil, fees, bus, nil)
	assert.Equal(t, fault.DatabaseIsNotSet, err, "wrong error")

	_, err = ledger.New(logger.New("ledger"), ledger.Configuration{}, handles(), nil, fees, bus, nil)
	assert.Equal(t, fault.MissingParameters, err, "wrong error")
}

func TestCreateDistributesReceived(t *testing.T) {
	f := setup(t, noFees, 0)
	defer teardown()

	end := uint64(f.now + 100)
	requests := []ledger.LockRequest{
		{Owner: "alice", Quantity: 300, EndEmission: end},
		{Owner: "bob", Quantity: 700, EndEmission: end + 50},
	}

	// 1% transfer fee so only 990 arrives
	records, err := f.ledger.Create(ctx, "alice", "FOT", requests, false, 0)
	assert.Nil(t, err, "create error")
	if !assert.Equal(t, 2, len(records), "wrong record count") {
		return
	}

	assert.Equal(t, uint64(297), records[0].SharesDeposited, "wrong first shares")
	assert.Equal(t, lockrecord.Address("alice"), records[0].Owner, "wrong first owner")
	assert.Equal(t, uint64(693), records[1].SharesDeposited, "wrong second shares")
	assert.Equal(t, lockrecord.Address("bob"), records[1].Owner, "wrong second owner")
	assert.Equal(t, end+50, records[1].EndEmission, "wrong second end")
	assert.Equal(t, records[0].Id+1, records[1].Id, "ids not consecutive")

	pool, _ := f.ledger.Pool(ctx, "FOT")
	assert.Equal(t, uint64(990), pool.TotalShares, "wrong total shares")
	assert.Equal(t, uint64(990), pool.Balance, "wrong balance")
	assert.Equal(t, uint64(initialBalance-1000), f.balance(t, "FOT", "alice"), "wrong payer balance")

	checkSolvency(t, f, "FOT")
}

func TestCreateMintsAgainstRunningBalance(t *testing.T) {
	f := setup(t, noFees, 0)
	defer teardown()

	f.lock(t, "WETH", 1000, 100, false)
	assert.Nil(t, f.vault.Rebase("WETH", 4000), "rebase error")

	// each part mints at the rate of 1000 shares per 4000
	end := uint64(f.now + 100)
	requests := []ledger.LockRequest{
		{Owner: "alice", Quantity: 400, EndEmission: end},
		{Owner: "alice", Quantity: 400, EndEmission: end},
	}
	records, err := f.ledger.Create(ctx, "alice", "WETH", requests, false, 0)
	assert.Nil(t, err, "create error")
	assert.Equal(t, uint64(100), records[0].SharesDeposited, "wrong first shares")
	assert.Equal(t, uint64(100), records[1].SharesDeposited, "wrong second shares")

	checkSolvency(t, f, "WETH")
}

func TestCreateErrors(t *testing.T) {
	f := setup(t, noFees, 10)
	defer teardown()

	future := uint64(f.now + 100)
	tests := []struct {
		asset    lockrecord.Address
		requests []ledger.LockRequest
		expected error
	}{
		{"WETH", nil, fault.EmptyLockList},
		{"WETH", []ledger.LockRequest{{"alice", 100, uint64(f.now)}}, fault.EmissionNotInFuture},
		{"WETH", []ledger.LockRequest{{"alice", 100, uint64(f.now) * 1000}}, fault.EmissionInMilliseconds},
		{"WETH", []ledger.LockRequest{{"alice", 0, future}}, fault.ZeroAmount},
		{"WETH", []ledger.LockRequest{{"", 100, future}}, fault.InvalidAddress},
		{"WETH", []ledger.LockRequest{{"alice", 5, future}}, fault.BelowMinimumDeposit},
		{"WETH", []ledger.LockRequest{{"alice", 100, future}, {"bob", 5, future}}, fault.BelowMinimumDeposit},
		{"WETH", []ledger.LockRequest{{"alice", initialBalance + 1, future}}, fault.InsufficientBalance},
		{"DAI", []ledger.LockRequest{{"alice", 100, future}}, fault.AssetNotFound},
	}

	for i, item := range tests {
		_, err := f.ledger.Create(ctx, "alice", item.asset, item.requests, false, 0)
		assert.Equal(t, item.expected, err, "%d: wrong error", i)
	}

	// nothing was stored or moved
	assert.Equal(t, uint64(initialBalance), f.balance(t, "WETH", "alice"), "failed create moved funds")
	_, err := f.ledger.Get(ctx, 1)
	assert.Equal(t, fault.LockNotFound, err, "failed create stored a lock")

	r := f.lock(t, "WETH", 100, 100, false)
	assert.Equal(t, uint64(1), r.Id, "failed create consumed an id")
}

func TestCreateZeroShares(t *testing.T) {
	f := setup(t, noFees, 0)
	defer teardown()

	f.lock(t, "WETH", 1000, 100, false)
	assert.Nil(t, f.vault.Rebase("WETH", 1000000), "rebase error")

	requests := []ledger.LockRequest{{Owner: "bob", Quantity: 999, EndEmission: uint64(f.now + 100)}}
	_, err := f.ledger.Create(ctx, "bob", "WETH", requests, false, 0)
	assert.Equal(t, fault.ZeroShares, err, "wrong error")
	assert.Equal(t, uint64(initialBalance), f.balance(t, "WETH", "bob"), "rejected deposit was kept")
}

func TestWithdrawErrors(t *testing.T) {
	f := setup(t, noFees, 0)
	defer teardown()

	r := f.lock(t, "WETH", 1000, 100, false)
	f.now += 101

	_, err := f.ledger.Withdraw(ctx, "alice", r.Id, 0)
	assert.Equal(t, fault.ZeroAmount, err, "zero withdraw")
	_, err = f.ledger.Withdraw(ctx, "alice", 99, 1)
	assert.Equal(t, fault.LockNotFound, err, "unknown lock")
	_, err = f.ledger.Withdraw(ctx, "bob", r.Id, 1)
	assert.True(t, fault.IsErrAuthorisation(err), "non owner withdraw")
	_, err = f.ledger.Withdraw(ctx, "alice", r.Id, 1001)
	assert.Equal(t, fault.ExceedsWithdrawable, err, "over withdraw")

	stored, _ := f.ledger.Get(ctx, r.Id)
	assert.Equal(t, r, stored, "failed withdraw changed the lock")
}

func TestWithdrawRoundsDebitUp(t *testing.T) {
	f := setup(t, noFees, 0)
	defer teardown()

	r := f.lock(t, "WETH", 1000, 100, false)
	assert.Nil(t, f.vault.Rebase("WETH", 3000), "rebase error")
	f.now += 101

	// one unit is a third of a share
	result, err := f.ledger.Withdraw(ctx, "alice", r.Id, 1)
	assert.Nil(t, err, "withdraw error")
	assert.Equal(t, uint64(1), result.Shares, "debit not rounded up")
	assert.Equal(t, uint64(3), result.Quantity, "wrong quantity for one share")

	checkSolvency(t, f, "WETH")
}

func TestLinearVesting(t *testing.T) {
	f := setup(t, noFees, 0)
	defer teardown()

	r := f.lock(t, "WETH", 1000, 100, true)

	w, _ := f.ledger.Withdrawable(ctx, r.Id)
	assert.Equal(t, uint64(0), w.Quantity, "withdrawable at start")

	f.now += 25
	w, _ = f.ledger.Withdrawable(ctx, r.Id)
	assert.Equal(t, uint64(250), w.Quantity, "withdrawable at quarter")

	_, err := f.ledger.Withdraw(ctx, "alice", r.Id, 250)
	assert.Nil(t, err, "withdraw error")
	_, err = f.ledger.Withdraw(ctx, "alice", r.Id, 1)
	assert.Equal(t, fault.ExceedsWithdrawable, err, "withdraw beyond vested")

	f.now += 50
	w, _ = f.ledger.Withdrawable(ctx, r.Id)
	assert.Equal(t, uint64(500), w.Quantity, "withdrawable at three quarters")

	f.now += 1000
	result, err := f.ledger.Withdraw(ctx, "alice", r.Id, 750)
	assert.Nil(t, err, "final withdraw error")
	assert.True(t, result.Record.IsConsumed(), "lock not consumed")

	checkSolvency(t, f, "WETH")
}

// a debit that would strand one worthless share takes it too
func TestDustClearance(t *testing.T) {
	f := setup(t, noFees, 0)
	defer teardown()

	r := f.lock(t, "WETH", 1000, 100, false)
	requests := []ledger.LockRequest{{Owner: "bob", Quantity: 1000, EndEmission: uint64(f.now + 100)}}
	_, err := f.ledger.Create(ctx, "bob", "WETH", requests, false, 0)
	assert.Nil(t, err, "create error")

	// 2000 shares over 1999 units so one share is worth nothing
	assert.Nil(t, f.vault.Rebase("WETH", 1999), "rebase error")
	f.now += 101

	result, err := f.ledger.Withdraw(ctx, "alice", r.Id, 999)
	assert.Nil(t, err, "withdraw error")
	assert.Equal(t, uint64(1000), result.Shares, "last share not cleared")
	assert.Equal(t, uint64(999), result.Quantity, "wrong quantity")
	assert.True(t, result.Record.IsConsumed(), "lock not consumed")

	checkSolvency(t, f, "WETH")
}

// two stranded shares are left alone
func TestDustClearanceOnlyOneShare(t *testing.T) {
	f := setup(t, noFees, 0)
	defer teardown()

	r := f.lock(t, "WETH", 1000, 100, false)
	requests := []ledger.LockRequest{{Owner: "bob", Quantity: 1000, EndEmission: uint64(f.now + 100)}}
	_, err := f.ledger.Create(ctx, "bob", "WETH", requests, false, 0)
	assert.Nil(t, err, "create error")

	assert.Nil(t, f.vault.Rebase("WETH", 1999), "rebase error")
	f.now += 101

	result, err := f.ledger.Withdraw(ctx, "alice", r.Id, 998)
	assert.Nil(t, err, "withdraw error")
	assert.Equal(t, uint64(998), result.Shares, "wrong debit")
	assert.Equal(t, uint64(2), result.Record.Remaining(), "wrong remaining shares")
}

func TestIncrement(t *testing.T) {
	f := setup(t, noFees, 0)
	defer teardown()

	r := f.lock(t, "WETH", 1000, 100, false)

	// anyone may top up
	result, err := f.ledger.Increment(ctx, "bob", r.Id, 500)
	assert.Nil(t, err, "increment error")
	assert.Equal(t, uint64(500), result.Shares, "wrong shares")
	assert.Equal(t, uint64(1500), result.Record.SharesDeposited, "wrong deposited")
	assert.Equal(t, lockrecord.Address("alice"), result.Record.Owner, "owner changed")

	assert.Nil(t, f.vault.Rebase("WETH", 3000), "rebase error")
	result, err = f.ledger.Increment(ctx, "bob", r.Id, 300)
	assert.Nil(t, err, "increment error")
	assert.Equal(t, uint64(150), result.Shares, "wrong shares after rebase")

	pool, _ := f.ledger.Pool(ctx, "WETH")
	assert.Equal(t, uint64(1650), pool.TotalShares, "wrong total shares")
	assert.Equal(t, uint64(initialBalance-800), f.balance(t, "WETH", "bob"), "wrong payer balance")

	checkSolvency(t, f, "WETH")
}

func TestIncrementErrors(t *testing.T) {
	f := setup(t, noFees, 0)
	defer teardown()

	r := f.lock(t, "WETH", 1000, 100, false)
	assert.Nil(t, f.vault.Rebase("WETH", 1000000), "rebase error")

	_, err := f.ledger.Increment(ctx, "bob", r.Id, 0)
	assert.Equal(t, fault.ZeroAmount, err, "zero increment")
	_, err = f.ledger.Increment(ctx, "bob", 99, 10)
	assert.Equal(t, fault.LockNotFound, err, "unknown lock")
	_, err = f.ledger.Increment(ctx, "bob", r.Id, 1)
	assert.Equal(t, fault.ZeroShares, err, "dust increment")

	assert.Equal(t, uint64(initialBalance), f.balance(t, "WETH", "bob"), "failed increment moved funds")
}

func TestRelock(t *testing.T) {
	f := setup(t, noFees, 0)
	defer teardown()

	r := f.lock(t, "WETH", 1000, 100, false)

	_, err := f.ledger.Relock(ctx, "alice", r.Id, r.EndEmission, 0)
	assert.Equal(t, fault.EmissionNotAfterCurrent, err, "same end")
	_, err = f.ledger.Relock(ctx, "alice", r.Id, r.EndEmission*1000, 0)
	assert.Equal(t, fault.EmissionInMilliseconds, err, "millisecond end")
	_, err = f.ledger.Relock(ctx, "bob", r.Id, r.EndEmission+1, 0)
	assert.Equal(t, fault.NotLockOwner, err, "non owner relock")

	relocked, err := f.ledger.Relock(ctx, "alice", r.Id, r.EndEmission+1000, 0)
	assert.Nil(t, err, "relock error")
	assert.Equal(t, r.EndEmission+1000, relocked.EndEmission, "end not moved")
	assert.Equal(t, r.SharesDeposited, relocked.SharesDeposited, "shares changed")

	// the old end no longer releases anything
	f.now += 101
	_, err = f.ledger.Withdraw(ctx, "alice", r.Id, 1)
	assert.Equal(t, fault.ExceedsWithdrawable, err, "withdraw after old end")
}

func TestSplitErrors(t *testing.T) {
	f := setup(t, noFees, 0)
	defer teardown()

	cliff := f.lock(t, "WETH", 1000, 100, false)
	vesting := f.lock(t, "WETH", 1000, 100, true)

	_, _, err := f.ledger.Split(ctx, "alice", vesting.Id, 10, 0)
	assert.Equal(t, fault.CannotSplitVestingLock, err, "split vesting lock")
	assert.True(t, fault.IsErrSchedule(err), "wrong class")

	_, _, err = f.ledger.Split(ctx, "alice", cliff.Id, 0, 0)
	assert.Equal(t, fault.ZeroAmount, err, "zero split")
	_, _, err = f.ledger.Split(ctx, "bob", cliff.Id, 10, 0)
	assert.Equal(t, fault.NotLockOwner, err, "non owner split")
	_, _, err = f.ledger.Split(ctx, "alice", cliff.Id, 1001, 0)
	assert.Equal(t, fault.InsufficientShares, err, "over split")

	// one unit is worth less than a share
	assert.Nil(t, f.vault.Rebase("WETH", 8000), "rebase error")
	_, _, err = f.ledger.Split(ctx, "alice", cliff.Id, 1, 0)
	assert.Equal(t, fault.ZeroShares, err, "dust split")
}

func TestTransferErrors(t *testing.T) {
	f := setup(t, noFees, 0)
	defer teardown()

	r := f.lock(t, "WETH", 1000, 100, false)

	_, _, err := f.ledger.TransferOwnership(ctx, "alice", r.Id, "alice", 0)
	assert.Equal(t, fault.SameOwner, err, "same owner")
	_, _, err = f.ledger.TransferOwnership(ctx, "bob", r.Id, "carol", 0)
	assert.Equal(t, fault.NotLockOwner, err, "non owner")
	_, _, err = f.ledger.TransferOwnership(ctx, "alice", r.Id, "", 0)
	assert.Equal(t, fault.InvalidAddress, err, "empty owner")
	_, _, err = f.ledger.TransferOwnership(ctx, "alice", 99, "bob", 0)
	assert.Equal(t, fault.LockNotFound, err, "unknown lock")
}

func TestFees(t *testing.T) {
	schedule := fee.Schedule{
		Admin:             "admin",
		CreateFee:         10,
		EditFee:           4,
		ReferralAsset:     "UNCX",
		ReferralThreshold: initialBalance + 1,
		ReferralDiscount:  50,
	}
	f := setup(t, schedule, 0)
	defer teardown()

	requests := []ledger.LockRequest{{Owner: "alice", Quantity: 1000, EndEmission: uint64(f.now + 100)}}

	_, err := f.ledger.Create(ctx, "alice", "WETH", requests, false, 9)
	assert.Equal(t, fault.FeeIncorrect, err, "under payment")
	_, err = f.ledger.Create(ctx, "alice", "WETH", requests, false, 11)
	assert.True(t, fault.IsErrFeePayment(err), "over payment")
	assert.Equal(t, uint64(0), f.ledger.FeesCollected(), "rejected fee collected")

	records, err := f.ledger.Create(ctx, "alice", "WETH", requests, false, 10)
	assert.Nil(t, err, "create error")
	r := records[0]

	// withdraw and increment are free
	_, err = f.ledger.Increment(ctx, "bob", r.Id, 100)
	assert.Nil(t, err, "increment error")

	_, err = f.ledger.Relock(ctx, "alice", r.Id, r.EndEmission+1, 0)
	assert.Equal(t, fault.FeeIncorrect, err, "unpaid relock")
	_, err = f.ledger.Relock(ctx, "alice", r.Id, r.EndEmission+1, 4)
	assert.Nil(t, err, "relock error")
	assert.Equal(t, uint64(14), f.ledger.FeesCollected(), "wrong fees collected")

	// one more unit of the referral asset earns the discount
	assert.Nil(t, f.vault.Mint("UNCX", "alice", 1), "mint error")
	_, _, err = f.ledger.Split(ctx, "alice", r.Id, 100, 4)
	assert.Equal(t, fault.FeeIncorrect, err, "undiscounted split")
	_, _, err = f.ledger.Split(ctx, "alice", r.Id, 100, 2)
	assert.Nil(t, err, "split error")
	assert.Equal(t, uint64(16), f.ledger.FeesCollected(), "wrong fees collected")
}

func TestEventsAndCounts(t *testing.T) {
	f := setup(t, noFees, 0)
	defer teardown()

	r := f.lock(t, "WETH", 1000, 100, false)
	_, _, err := f.ledger.TransferOwnership(ctx, "alice", r.Id, "bob", 0)
	assert.Nil(t, err, "transfer error")

	expected := []struct {
		operation string
		lockId    uint64
		owner     lockrecord.Address
	}{
		{ledger.OpCreate, 1, "alice"},
		{ledger.OpTransfer, 1, "alice"},
		{ledger.OpTransfer, 2, "bob"},
	}
	for i, item := range expected {
		select {
		case m := <-f.events:
			e, ok := m.Item.(*ledger.Event)
			if !assert.True(t, ok, "%d: wrong item type: %T", i, m.Item) {
				continue
			}
			assert.Equal(t, item.operation, e.Operation, "%d: wrong operation", i)
			assert.Equal(t, item.lockId, e.LockId, "%d: wrong lock id", i)
			assert.Equal(t, item.owner, e.Owner, "%d: wrong owner", i)
			assert.NotEqual(t, lockrecord.Digest{}, e.Digest, "%d: missing digest", i)
		default:
			t.Errorf("%d: missing event", i)
		}
	}

	// failed operations emit nothing
	_, err = f.ledger.Withdraw(ctx, "alice", 1, 1)
	assert.NotNil(t, err, "retired lock withdraw")
	select {
	case m := <-f.events:
		t.Errorf("unexpected event: %v", m)
	default:
	}

	counts := f.ledger.Counts()
	assert.Equal(t, uint64(1), counts[ledger.OpCreate], "wrong create count")
	assert.Equal(t, uint64(1), counts[ledger.OpTransfer], "wrong transfer count")
	assert.Equal(t, uint64(0), counts[ledger.OpWithdraw], "wrong withdraw count")
}

func TestListLocks(t *testing.T) {
	f := setup(t, noFees, 0)
	defer teardown()

	for i := 0; i < 5; i += 1 {
		f.lock(t, "WETH", 100, 100, false)
	}
	f.lock(t, "FOT", 100, 100, false)

	locks, err := f.ledger.AssetLocks(ctx, "WETH", 0, 3)
	assert.Nil(t, err, "asset locks error")
	assert.Equal(t, 3, len(locks), "wrong page size")
	assert.Equal(t, uint64(1), locks[0].Id, "wrong first id")

	locks, err = f.ledger.AssetLocks(ctx, "WETH", 4, 10)
	assert.Nil(t, err, "asset locks error")
	if assert.Equal(t, 2, len(locks), "wrong second page") {
		assert.Equal(t, uint64(4), locks[0].Id, "wrong first id")
		assert.Equal(t, uint64(5), locks[1].Id, "wrong last id")
	}

	locks, err = f.ledger.OwnerLocks(ctx, "alice", 0, 100)
	assert.Nil(t, err, "owner locks error")
	assert.Equal(t, 6, len(locks), "wrong owner lock count")

	_, err = f.ledger.OwnerLocks(ctx, "alice", 0, 0)
	assert.Equal(t, fault.InvalidCount, err, "zero count")
	_, err = f.ledger.OwnerLocks(ctx, "", 0, 10)
	assert.Equal(t, fault.InvalidAddress, err, "empty owner")
}

// random operations on a fee-on-transfer asset with rebases
func TestSolvency(t *testing.T) {
	f := setup(t, noFees, 0)
	defer teardown()

	random := rand.New(rand.NewSource(42))
	owners := []lockrecord.Address{"alice", "bob"}

	ids := []uint64{}
	for i := 0; i < 4; i += 1 {
		owner := owners[i%2]
		requests := []ledger.LockRequest{{Owner: owner, Quantity: 1000 + uint64(random.Intn(9000)), EndEmission: uint64(f.now + 50)}}
		records, err := f.ledger.Create(ctx, owner, "FOT", requests, 1 == i%2, 0)
		assert.Nil(t, err, "create error")
		ids = append(ids, records[0].Id)
	}

	for i := 0; i < 200; i += 1 {
		id := ids[random.Intn(len(ids))]
		r, err := f.ledger.Get(ctx, id)
		assert.Nil(t, err, "get error")

		pool, _ := f.ledger.Pool(ctx, "FOT")
		before := pool.TotalShares

		switch random.Intn(6) {
		case 0:
			result, err := f.ledger.Increment(ctx, "alice", id, 1+uint64(random.Intn(5000)))
			if nil == err {
				pool, _ = f.ledger.Pool(ctx, "FOT")
				assert.Equal(t, before+result.Shares, pool.TotalShares, "increment total shares")
			}
		case 1:
			w, _ := f.ledger.Withdrawable(ctx, id)
			if 0 != w.Quantity {
				result, err := f.ledger.Withdraw(ctx, r.Owner, id, 1+uint64(random.Int63n(int64(w.Quantity))))
				if assert.Nil(t, err, "withdraw error") {
					pool, _ = f.ledger.Pool(ctx, "FOT")
					assert.Equal(t, before-result.Shares, pool.TotalShares, "withdraw total shares")
				}
			}
		case 2:
			if r.IsCliff() {
				_, split, err := f.ledger.Split(ctx, r.Owner, id, 1+uint64(random.Intn(500)), 0)
				if nil == err {
					ids = append(ids, split.Id)
				}
			}
		case 3:
			_, current, err := f.ledger.TransferOwnership(ctx, r.Owner, id, owners[random.Intn(2)], 0)
			if nil == err {
				ids = append(ids, current.Id)
			}
		case 4:
			balance := f.balance(t, "FOT", custodian)
			rebased := balance/2 + uint64(random.Int63n(int64(balance+1)))
			assert.Nil(t, f.vault.Rebase("FOT", rebased), "rebase error")
		case 5:
			f.now += int64(random.Intn(10))
		}

		checkSolvency(t, f, "FOT")
	}
}
