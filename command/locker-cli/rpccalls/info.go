// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/lockerd/account"
	"github.com/bitmark-inc/lockerd/fee"
	"github.com/bitmark-inc/lockerd/lockrecord"
	"github.com/bitmark-inc/lockerd/rpc/asset"
	"github.com/bitmark-inc/lockerd/rpc/fees"
	"github.com/bitmark-inc/lockerd/rpc/node"
	"github.com/bitmark-inc/lockerd/rpc/pool"
)

// GetInfo - request status from lockerd
func (c *Client) GetInfo() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := c.call("Node.Info", &node.InfoArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// GetPool - share pool of an asset
func (c *Client) GetPool(a lockrecord.Address) (*pool.GetReply, error) {
	var reply pool.GetReply
	if err := c.call("Pool.Get", &pool.GetArguments{Asset: a}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Convert - current quantity of a number of shares
func (c *Client) Convert(a lockrecord.Address, shares uint64) (*pool.ConvertReply, error) {
	arguments := pool.ConvertArguments{
		Asset:  a,
		Shares: shares,
	}
	var reply pool.ConvertReply
	if err := c.call("Pool.Convert", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Assets - the custodian and its registered assets
func (c *Client) Assets() (*asset.ListReply, error) {
	var reply asset.ListReply
	if err := c.call("Asset.List", &asset.ListArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Balance - holding of one account
func (c *Client) Balance(a lockrecord.Address, holder lockrecord.Address) (*asset.BalanceReply, error) {
	arguments := asset.BalanceArguments{
		Asset:  a,
		Holder: holder,
	}
	var reply asset.BalanceReply
	if err := c.call("Asset.Balance", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Mint - create quantity for a holder, local chain only
func (c *Client) Mint(a lockrecord.Address, holder lockrecord.Address, amount uint64) (*asset.BalanceReply, error) {
	arguments := asset.MintArguments{
		Asset:  a,
		Holder: holder,
		Amount: amount,
	}
	var reply asset.BalanceReply
	if err := c.call("Asset.Mint", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Rebase - set the custodian balance, local chain only
func (c *Client) Rebase(a lockrecord.Address, balance uint64) (*asset.BalanceReply, error) {
	arguments := asset.RebaseArguments{
		Asset:   a,
		Balance: balance,
	}
	var reply asset.BalanceReply
	if err := c.call("Asset.Rebase", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// GetFees - current schedule and collected total
func (c *Client) GetFees() (*fees.GetReply, error) {
	var reply fees.GetReply
	if err := c.call("Fee.Get", &fees.GetArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// SetFees - replace the schedule
func (c *Client) SetFees(key *account.KeyPair, schedule fee.Schedule) (*fees.GetReply, error) {
	arguments := fees.SetArguments{
		Schedule: schedule,
	}
	var reply fees.GetReply
	if err := c.signedCall(key, "Fee.Set", &arguments.Request, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
