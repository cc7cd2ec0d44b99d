// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/lockerd/lockrecord"
)

func runInfo(c *cli.Context) error {

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetInfo()
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runAssets(c *cli.Context) error {

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Assets()
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runBalance(c *cli.Context) error {

	asset, err := requiredString(c, "asset")
	if nil != err {
		return err
	}

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	holder := lockrecord.Address(c.String("holder"))
	if "" == holder {
		holder, err = identity(m)
		if nil != err {
			return err
		}
	}

	response, err := client.Balance(lockrecord.Address(asset), holder)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runMint(c *cli.Context) error {

	asset, err := requiredString(c, "asset")
	if nil != err {
		return err
	}
	holder, err := requiredString(c, "holder")
	if nil != err {
		return err
	}

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Mint(lockrecord.Address(asset), lockrecord.Address(holder), c.Uint64("amount"))
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runRebase(c *cli.Context) error {

	asset, err := requiredString(c, "asset")
	if nil != err {
		return err
	}

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Rebase(lockrecord.Address(asset), c.Uint64("balance"))
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runFees(c *cli.Context) error {

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetFees()
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

// unset flags keep their current value
func runSetFees(c *cli.Context) error {

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	key, err := keyPair(m)
	if nil != err {
		return err
	}

	current, err := client.GetFees()
	if nil != err {
		return err
	}
	schedule := current.Schedule

	if c.IsSet("admin") {
		schedule.Admin = lockrecord.Address(c.String("admin"))
	}
	if c.IsSet("create-fee") {
		schedule.CreateFee = c.Uint64("create-fee")
	}
	if c.IsSet("edit-fee") {
		schedule.EditFee = c.Uint64("edit-fee")
	}
	if c.IsSet("referral-asset") {
		schedule.ReferralAsset = lockrecord.Address(c.String("referral-asset"))
	}
	if c.IsSet("referral-threshold") {
		schedule.ReferralThreshold = c.Uint64("referral-threshold")
	}
	if c.IsSet("referral-discount") {
		schedule.ReferralDiscount = c.Uint64("referral-discount")
	}

	response, err := client.SetFees(key, schedule)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
