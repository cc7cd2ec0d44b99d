// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/lockerd/custody/mocks"
	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/fee"
	"github.com/bitmark-inc/lockerd/ledger"
	"github.com/bitmark-inc/lockerd/lockrecord"
	"github.com/bitmark-inc/lockerd/messagebus"
)

func setupMocks(t *testing.T) (*gomock.Controller, *mocks.MockRegistry, *mocks.MockAsset, *ledger.Ledger) {
	setupStorage(t)

	ctl := gomock.NewController(t)
	registry := mocks.NewMockRegistry(ctl)
	asset := mocks.NewMockAsset(ctl)

	fees, _ := fee.New(noFees)
	clock := func() time.Time {
		return time.Unix(startTime, 0)
	}

	l, err := ledger.New(logger.New("ledger"), ledger.Configuration{}, handles(), registry, fees, new(messagebus.BroadcastQueue), clock)
	if nil != err {
		t.Fatalf("new ledger error: %s", err)
	}
	return ctl, registry, asset, l
}

// an asset that calls back into the ledger during a transfer is refused
func TestReentrantCallIsRefused(t *testing.T) {
	ctl, registry, asset, l := setupMocks(t)
	defer ctl.Finish()
	defer teardown()

	requests := []ledger.LockRequest{{Owner: "alice", Quantity: 1000, EndEmission: startTime + 100}}

	registry.EXPECT().Asset(gomock.Any(), lockrecord.Address("EVIL")).Return(asset, nil).Times(1)
	gomock.InOrder(
		asset.EXPECT().Balance(gomock.Any()).Return(uint64(0), nil),
		asset.EXPECT().TransferIn(gomock.Any(), lockrecord.Address("alice"), uint64(1000)).DoAndReturn(
			func(ctx context.Context, from lockrecord.Address, amount uint64) error {
				_, err := l.Create(ctx, "alice", "EVIL", requests, false, 0)
				assert.Equal(t, fault.ReentrantCall, err, "nested create")
				_, err = l.Withdraw(ctx, "alice", 1, 1)
				assert.Equal(t, fault.ReentrantCall, err, "nested withdraw")
				_, err = l.Get(ctx, 1)
				assert.Equal(t, fault.ReentrantCall, err, "nested get")
				return nil
			}),
		asset.EXPECT().Balance(gomock.Any()).Return(uint64(1000), nil),
	)

	records, err := l.Create(ctx, "alice", "EVIL", requests, false, 0)
	assert.Nil(t, err, "create error")
	assert.Equal(t, uint64(1000), records[0].SharesDeposited, "wrong shares")

	// the lock is released afterwards
	r, err := l.Get(ctx, records[0].Id)
	assert.Nil(t, err, "get error")
	assert.Equal(t, records[0], r, "wrong record")
}

// callers on other goroutines wait while a create is inside a custody
// call and go ahead once it has committed
func TestConcurrentCallersWait(t *testing.T) {
	ctl, registry, asset, l := setupMocks(t)
	defer ctl.Finish()
	defer teardown()

	parked := make(chan struct{})
	release := make(chan struct{})

	registry.EXPECT().Asset(gomock.Any(), lockrecord.Address("WETH")).Return(asset, nil).Times(2)
	gomock.InOrder(
		asset.EXPECT().Balance(gomock.Any()).Return(uint64(0), nil),
		asset.EXPECT().TransferIn(gomock.Any(), lockrecord.Address("alice"), uint64(1000)).DoAndReturn(
			func(ctx context.Context, from lockrecord.Address, amount uint64) error {
				close(parked)
				<-release
				return nil
			}),
		asset.EXPECT().Balance(gomock.Any()).Return(uint64(1000), nil),
		asset.EXPECT().Balance(gomock.Any()).Return(uint64(1000), nil),
		asset.EXPECT().TransferIn(gomock.Any(), lockrecord.Address("bob"), uint64(500)).Return(nil),
		asset.EXPECT().Balance(gomock.Any()).Return(uint64(1500), nil),
	)

	first := make(chan error, 1)
	go func() {
		requests := []ledger.LockRequest{{Owner: "alice", Quantity: 1000, EndEmission: startTime + 100}}
		_, err := l.Create(ctx, "alice", "WETH", requests, false, 0)
		first <- err
	}()
	<-parked

	type getResult struct {
		record *lockrecord.Record
		err    error
	}
	type createResult struct {
		records []*lockrecord.Record
		err     error
	}
	got := make(chan getResult, 1)
	created := make(chan createResult, 1)
	go func() {
		r, err := l.Get(ctx, 1)
		got <- getResult{record: r, err: err}
	}()
	go func() {
		requests := []ledger.LockRequest{{Owner: "bob", Quantity: 500, EndEmission: startTime + 200}}
		records, err := l.Create(ctx, "bob", "WETH", requests, false, 0)
		created <- createResult{records: records, err: err}
	}()

	select {
	case g := <-got:
		t.Fatalf("get returned while a create was in progress: %v", g.err)
	case c := <-created:
		t.Fatalf("create returned while a create was in progress: %v", c.err)
	case <-time.After(100 * time.Millisecond):
	}

	close(release)

	assert.Nil(t, <-first, "first create error")

	g := <-got
	assert.Nil(t, g.err, "get error")
	if assert.NotNil(t, g.record, "no record") {
		assert.Equal(t, lockrecord.Address("alice"), g.record.Owner, "wrong owner")
		assert.Equal(t, uint64(1000), g.record.SharesDeposited, "wrong shares")
	}

	c := <-created
	assert.Nil(t, c.err, "second create error")
	if assert.Equal(t, 1, len(c.records), "wrong record count") {
		assert.Equal(t, uint64(2), c.records[0].Id, "wrong id")
		assert.Equal(t, uint64(500), c.records[0].SharesDeposited, "wrong shares")
	}
}

// a failed transfer leaves nothing behind
func TestFailedTransferAborts(t *testing.T) {
	ctl, registry, asset, l := setupMocks(t)
	defer ctl.Finish()
	defer teardown()

	requests := []ledger.LockRequest{{Owner: "alice", Quantity: 1000, EndEmission: startTime + 100}}
	transferError := errors.New("transfer rejected")

	registry.EXPECT().Asset(gomock.Any(), lockrecord.Address("WETH")).Return(asset, nil).Times(1)
	asset.EXPECT().Balance(gomock.Any()).Return(uint64(0), nil).Times(1)
	asset.EXPECT().TransferIn(gomock.Any(), lockrecord.Address("alice"), uint64(1000)).Return(transferError).Times(1)

	_, err := l.Create(ctx, "alice", "WETH", requests, false, 0)
	assert.Equal(t, transferError, err, "wrong error")

	_, err = l.Get(ctx, 1)
	assert.Equal(t, fault.LockNotFound, err, "lock stored after failed transfer")
}

// an asset that delivers nothing cannot create a lock
func TestNothingReceived(t *testing.T) {
	ctl, registry, asset, l := setupMocks(t)
	defer ctl.Finish()
	defer teardown()

	requests := []ledger.LockRequest{{Owner: "alice", Quantity: 1000, EndEmission: startTime + 100}}

	registry.EXPECT().Asset(gomock.Any(), lockrecord.Address("WETH")).Return(asset, nil).Times(1)
	asset.EXPECT().Balance(gomock.Any()).Return(uint64(500), nil).Times(2)
	asset.EXPECT().TransferIn(gomock.Any(), lockrecord.Address("alice"), uint64(1000)).Return(nil).Times(1)

	_, err := l.Create(ctx, "alice", "WETH", requests, false, 0)
	assert.Equal(t, fault.ZeroAmount, err, "wrong error")
}
