// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - RPC handlers for the local custody vault
package asset

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lockerd/custody"
	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/lockrecord"
	"github.com/bitmark-inc/lockerd/rpc/ratelimit"
)

const (
	rateLimitAsset = 200
	rateBurstAsset = 100
)

// Asset - type for RPC
//
// minting and rebasing are only allowed when administration is set
type Asset struct {
	Log            *logger.L
	Limiter        *rate.Limiter
	Vault          *custody.Vault
	Administration bool
}

// New - create the asset handler
func New(log *logger.L, vault *custody.Vault, administration bool) *Asset {
	return &Asset{
		Log:            log,
		Limiter:        rate.NewLimiter(rateLimitAsset, rateBurstAsset),
		Vault:          vault,
		Administration: administration,
	}
}

// MintArguments - arguments for RPC
type MintArguments struct {
	Asset  lockrecord.Address `json:"asset"`
	Holder lockrecord.Address `json:"holder"`
	Amount uint64             `json:"amount,string"`
}

// BalanceReply - a holder balance
type BalanceReply struct {
	Asset   lockrecord.Address `json:"asset"`
	Holder  lockrecord.Address `json:"holder"`
	Balance uint64             `json:"balance,string"`
}

// Mint - create amount of an asset in a holder account
func (asset *Asset) Mint(arguments *MintArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(asset.Limiter); nil != err {
		return err
	}
	if !asset.Administration {
		return fault.NotAvailableOnChain
	}

	asset.Log.Infof("Asset.Mint: asset: %q  holder: %q  amount: %d", arguments.Asset, arguments.Holder, arguments.Amount)

	if err := asset.Vault.Mint(arguments.Asset, arguments.Holder, arguments.Amount); nil != err {
		asset.Log.Warnf("Asset.Mint: error: %s", err)
		return err
	}
	return asset.balance(arguments.Asset, arguments.Holder, reply)
}

// RebaseArguments - arguments for RPC
type RebaseArguments struct {
	Asset   lockrecord.Address `json:"asset"`
	Balance uint64             `json:"balance,string"`
}

// Rebase - set the custodial balance of an asset
func (asset *Asset) Rebase(arguments *RebaseArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(asset.Limiter); nil != err {
		return err
	}
	if !asset.Administration {
		return fault.NotAvailableOnChain
	}

	asset.Log.Infof("Asset.Rebase: asset: %q  balance: %d", arguments.Asset, arguments.Balance)

	if err := asset.Vault.Rebase(arguments.Asset, arguments.Balance); nil != err {
		asset.Log.Warnf("Asset.Rebase: error: %s", err)
		return err
	}
	return asset.balance(arguments.Asset, asset.Vault.Custodian(), reply)
}

// BalanceArguments - arguments for RPC
type BalanceArguments struct {
	Asset  lockrecord.Address `json:"asset"`
	Holder lockrecord.Address `json:"holder"`
}

// Balance - holding of one account
func (asset *Asset) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(asset.Limiter); nil != err {
		return err
	}
	return asset.balance(arguments.Asset, arguments.Holder, reply)
}

// ListArguments - empty arguments for RPC
type ListArguments struct{}

// ListReply - all registered assets
type ListReply struct {
	Custodian lockrecord.Address  `json:"custodian"`
	Assets    []custody.AssetInfo `json:"assets"`
}

// List - registered assets and their transfer fees
func (asset *Asset) List(_ *ListArguments, reply *ListReply) error {
	if err := ratelimit.Limit(asset.Limiter); nil != err {
		return err
	}

	assets, err := asset.Vault.Assets()
	if nil != err {
		return err
	}
	reply.Custodian = asset.Vault.Custodian()
	reply.Assets = assets
	return nil
}

func (asset *Asset) balance(a lockrecord.Address, holder lockrecord.Address, reply *BalanceReply) error {
	n, err := asset.Vault.Balance(a, holder)
	if nil != err {
		return err
	}
	reply.Asset = a
	reply.Holder = holder
	reply.Balance = n
	return nil
}
