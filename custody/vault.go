// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package custody

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/lockrecord"
	"github.com/bitmark-inc/lockerd/storage"
	"github.com/bitmark-inc/lockerd/util"
	"github.com/bitmark-inc/logger"
)

// MaximumTransferFee - basis points
const MaximumTransferFee = 10000

// Handles - storage pools used by the vault
type Handles struct {
	Holdings  *storage.PoolHandle
	AssetInfo *storage.PoolHandle
}

// AssetConfiguration - an asset to register at startup
type AssetConfiguration struct {
	Name        string `gluamapper:"name" json:"name"`
	TransferFee uint64 `gluamapper:"transfer_fee_bps" json:"transfer_fee_bps"`
}

// AssetInfo - a registered asset
type AssetInfo struct {
	Asset       lockrecord.Address `json:"asset"`
	TransferFee uint64             `json:"transferFee"`
}

// Vault - token accounts kept in the local database
type Vault struct {
	sync.Mutex

	log       *logger.L
	custodian lockrecord.Address
	pools     Handles
	begin     func() (storage.Transaction, error)
}

// vaultAsset - one asset bound to a transaction
type vaultAsset struct {
	vault       *Vault
	trx         storage.Transaction
	asset       lockrecord.Address
	transferFee uint64
}

// NewVault - create a vault whose own account is custodian
func NewVault(log *logger.L, custodian lockrecord.Address, pools Handles) (*Vault, error) {
	if nil == log {
		return nil, fault.InvalidLoggerChannel
	}
	if err := custodian.Validate(); nil != err {
		return nil, err
	}
	if nil == pools.Holdings || nil == pools.AssetInfo {
		return nil, fault.DatabaseIsNotSet
	}
	return &Vault{
		log:       log,
		custodian: custodian,
		pools:     pools,
		begin:     storage.NewDBTransaction,
	}, nil
}

// Custodian - the vault account that holds locked assets
func (v *Vault) Custodian() lockrecord.Address {
	return v.custodian
}

// Asset - bind an asset to trx
func (v *Vault) Asset(trx storage.Transaction, asset lockrecord.Address) (Asset, error) {
	if err := asset.Validate(); nil != err {
		return nil, err
	}

	var fee uint64
	var found bool
	if nil == trx {
		fee, found = v.pools.AssetInfo.GetN(asset.Bytes())
	} else {
		fee, found = trx.GetN(v.pools.AssetInfo, asset.Bytes())
	}
	if !found {
		return nil, fault.AssetNotFound
	}

	return &vaultAsset{
		vault:       v,
		trx:         trx,
		asset:       asset,
		transferFee: fee,
	}, nil
}

// Register - add an asset, re-registering changes the transfer fee
func (v *Vault) Register(asset lockrecord.Address, transferFee uint64) error {
	if err := asset.Validate(); nil != err {
		return err
	}
	if transferFee >= MaximumTransferFee {
		return fault.InvalidTransferFee
	}

	return v.update(func(trx storage.Transaction) error {
		trx.PutN(v.pools.AssetInfo, asset.Bytes(), transferFee)
		v.log.Infof("register asset: %q  transfer fee: %d", asset, transferFee)
		return nil
	})
}

// Assets - all registered assets
func (v *Vault) Assets() ([]AssetInfo, error) {
	assets := []AssetInfo{}
	err := v.pools.AssetInfo.NewFetchCursor(nil).Map(func(key []byte, value []byte) error {
		if len(key) < 1 || len(value) < 8 {
			return fault.TruncatedRecord
		}
		assets = append(assets, AssetInfo{
			Asset:       lockrecord.Address(key[1:]),
			TransferFee: binary.BigEndian.Uint64(value[:8]),
		})
		return nil
	})
	return assets, err
}

// Mint - create quantity in a holder account
func (v *Vault) Mint(asset lockrecord.Address, holder lockrecord.Address, amount uint64) error {
	if 0 == amount {
		return fault.ZeroAmount
	}
	if err := holder.Validate(); nil != err {
		return err
	}

	return v.update(func(trx storage.Transaction) error {
		a, err := v.Asset(trx, asset)
		if nil != err {
			return err
		}
		va := a.(*vaultAsset)
		if err := va.credit(holder, amount); nil != err {
			return err
		}
		v.log.Infof("mint: %d %q to: %q", amount, asset, holder)
		return nil
	})
}

// Rebase - set the custodial balance of an asset directly
//
// models interest accrual or a negative rebase of the custodied quantity
func (v *Vault) Rebase(asset lockrecord.Address, balance uint64) error {
	return v.update(func(trx storage.Transaction) error {
		if _, err := v.Asset(trx, asset); nil != err {
			return err
		}
		trx.PutN(v.pools.Holdings, holdingKey(asset, v.custodian), balance)
		v.log.Infof("rebase: %q  custodial balance: %d", asset, balance)
		return nil
	})
}

// Balance - committed balance of any holder
func (v *Vault) Balance(asset lockrecord.Address, holder lockrecord.Address) (uint64, error) {
	a, err := v.Asset(nil, asset)
	if nil != err {
		return 0, err
	}
	return a.(*vaultAsset).holding(holder)
}

// run f in its own transaction
func (v *Vault) update(f func(trx storage.Transaction) error) error {
	v.Lock()
	defer v.Unlock()

	trx, err := v.begin()
	if nil != err {
		return err
	}
	if err := f(trx); nil != err {
		trx.Abort()
		return err
	}
	return trx.Commit()
}

func holdingKey(asset lockrecord.Address, holder lockrecord.Address) []byte {
	return append(asset.Bytes(), holder.Bytes()...)
}

func (a *vaultAsset) Balance(ctx context.Context) (uint64, error) {
	return a.holding(a.vault.custodian)
}

func (a *vaultAsset) HolderBalance(ctx context.Context, holder lockrecord.Address) (uint64, error) {
	return a.holding(holder)
}

func (a *vaultAsset) holding(holder lockrecord.Address) (uint64, error) {
	if err := holder.Validate(); nil != err {
		return 0, err
	}
	key := holdingKey(a.asset, holder)
	if nil == a.trx {
		n, _ := a.vault.pools.Holdings.GetN(key)
		return n, nil
	}
	n, _ := a.trx.GetN(a.vault.pools.Holdings, key)
	return n, nil
}

func (a *vaultAsset) TransferIn(ctx context.Context, from lockrecord.Address, amount uint64) error {
	return a.move(from, a.vault.custodian, amount)
}

func (a *vaultAsset) TransferOut(ctx context.Context, to lockrecord.Address, amount uint64) error {
	return a.move(a.vault.custodian, to, amount)
}

// the transfer fee is burned
func (a *vaultAsset) move(from lockrecord.Address, to lockrecord.Address, amount uint64) error {
	if nil == a.trx {
		return fault.NotAvailableInReadOnly
	}
	if 0 == amount {
		return nil
	}

	balance, err := a.holding(from)
	if nil != err {
		return err
	}
	if balance < amount {
		return fault.InsufficientBalance
	}

	fee, _ := util.MulDiv(amount, a.transferFee, MaximumTransferFee)

	a.trx.PutN(a.vault.pools.Holdings, holdingKey(a.asset, from), balance-amount)
	return a.credit(to, amount-fee)
}

func (a *vaultAsset) credit(to lockrecord.Address, amount uint64) error {
	balance, err := a.holding(to)
	if nil != err {
		return err
	}
	if balance+amount < balance {
		return fault.AmountOverflow
	}
	a.trx.PutN(a.vault.pools.Holdings, holdingKey(a.asset, to), balance+amount)
	return nil
}
