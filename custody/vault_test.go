// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package custody_test

import (
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/lockerd/custody"
	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/lockrecord"
	"github.com/bitmark-inc/lockerd/storage"
)

func TestNewVaultInvalid(t *testing.T) {
	_, err := custody.NewVault(nil, custodian, custody.Handles{})
	assert.Equal(t, fault.InvalidLoggerChannel, err, "wrong error")

	_, err = custody.NewVault(logger.New("vault"), "", custody.Handles{})
	assert.Equal(t, fault.InvalidAddress, err, "wrong error")

	_, err = custody.NewVault(logger.New("vault"), custodian, custody.Handles{})
	assert.Equal(t, fault.DatabaseIsNotSet, err, "wrong error")
}

func TestRegister(t *testing.T) {
	v := setup(t)
	defer teardown()

	assert.Equal(t, fault.InvalidTransferFee, v.Register("WETH", custody.MaximumTransferFee), "wrong error")
	assert.Equal(t, fault.InvalidAddress, v.Register("bad asset", 0), "wrong error")

	assert.Nil(t, v.Register("WETH", 0), "register error")
	assert.Nil(t, v.Register("FOT", 100), "register error")

	assets, err := v.Assets()
	assert.Nil(t, err, "assets error")
	assert.Equal(t, 2, len(assets), "wrong asset count")

	fees := map[string]uint64{}
	for _, a := range assets {
		fees[a.Asset.String()] = a.TransferFee
	}
	assert.Equal(t, map[string]uint64{"WETH": 0, "FOT": 100}, fees, "wrong assets")

	_, err = v.Asset(nil, "DAI")
	assert.Equal(t, fault.AssetNotFound, err, "wrong error")
}

func TestMintAndBalance(t *testing.T) {
	v := setup(t)
	defer teardown()

	assert.Equal(t, fault.AssetNotFound, v.Mint("WETH", "alice", 10), "wrong error")

	assert.Nil(t, v.Register("WETH", 0), "register error")
	assert.Equal(t, fault.ZeroAmount, v.Mint("WETH", "alice", 0), "wrong error")
	assert.Nil(t, v.Mint("WETH", "alice", 10), "mint error")
	assert.Nil(t, v.Mint("WETH", "alice", 5), "mint error")

	n, err := v.Balance("WETH", "alice")
	assert.Nil(t, err, "balance error")
	assert.Equal(t, uint64(15), n, "wrong balance")

	n, err = v.Balance("WETH", "bob")
	assert.Nil(t, err, "balance error")
	assert.Equal(t, uint64(0), n, "wrong balance")
}

func TestTransferInAndOut(t *testing.T) {
	v := setup(t)
	defer teardown()

	assert.Nil(t, v.Register("WETH", 0), "register error")
	assert.Nil(t, v.Mint("WETH", "alice", 1000), "mint error")

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction error")

	a, err := v.Asset(trx, "WETH")
	assert.Nil(t, err, "asset error")

	assert.Equal(t, fault.InsufficientBalance, a.TransferIn(ctx, "alice", 1001), "wrong error")
	assert.Nil(t, a.TransferIn(ctx, "alice", 600), "transfer in error")
	assert.Nil(t, a.TransferOut(ctx, "bob", 100), "transfer out error")

	n, _ := a.Balance(ctx)
	assert.Equal(t, uint64(500), n, "wrong pending custodial balance")

	// nothing visible until commit
	n, _ = v.Balance("WETH", custodian)
	assert.Equal(t, uint64(0), n, "pending write visible")

	assert.Nil(t, trx.Commit(), "commit error")

	expected := map[string]uint64{
		"alice":   400,
		"bob":     100,
		custodian: 500,
	}
	for holder, quantity := range expected {
		n, err := v.Balance("WETH", lockrecord.Address(holder))
		assert.Nil(t, err, "balance error")
		assert.Equal(t, quantity, n, "wrong balance for: %s", holder)
	}
}

func TestTransferAbort(t *testing.T) {
	v := setup(t)
	defer teardown()

	assert.Nil(t, v.Register("WETH", 0), "register error")
	assert.Nil(t, v.Mint("WETH", "alice", 1000), "mint error")

	trx, _ := storage.NewDBTransaction()
	a, _ := v.Asset(trx, "WETH")
	assert.Nil(t, a.TransferIn(ctx, "alice", 1000), "transfer in error")
	trx.Abort()

	n, _ := v.Balance("WETH", "alice")
	assert.Equal(t, uint64(1000), n, "abort did not restore balance")
}

func TestTransferFee(t *testing.T) {
	v := setup(t)
	defer teardown()

	// 2.5%
	assert.Nil(t, v.Register("FOT", 250), "register error")
	assert.Nil(t, v.Mint("FOT", "alice", 1000), "mint error")

	trx, _ := storage.NewDBTransaction()
	a, _ := v.Asset(trx, "FOT")
	assert.Nil(t, a.TransferIn(ctx, "alice", 1000), "transfer in error")
	assert.Nil(t, a.TransferOut(ctx, "bob", 100), "transfer out error")
	assert.Nil(t, trx.Commit(), "commit error")

	n, _ := v.Balance("FOT", custodian)
	assert.Equal(t, uint64(875), n, "wrong custodial balance")
	n, _ = v.Balance("FOT", "bob")
	assert.Equal(t, uint64(98), n, "wrong recipient balance")
}

func TestReadOnlyAsset(t *testing.T) {
	v := setup(t)
	defer teardown()

	assert.Nil(t, v.Register("WETH", 0), "register error")
	a, err := v.Asset(nil, "WETH")
	assert.Nil(t, err, "asset error")
	assert.Equal(t, fault.NotAvailableInReadOnly, a.TransferIn(ctx, "alice", 1), "wrong error")
}

func TestRebase(t *testing.T) {
	v := setup(t)
	defer teardown()

	assert.Equal(t, fault.AssetNotFound, v.Rebase("WETH", 1), "wrong error")

	assert.Nil(t, v.Register("WETH", 0), "register error")
	assert.Nil(t, v.Rebase("WETH", 12345), "rebase error")

	n, _ := v.Balance("WETH", v.Custodian())
	assert.Equal(t, uint64(12345), n, "wrong custodial balance")
}
