// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/lockerd/lockrecord"
)

func runGet(c *cli.Context) error {

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetLock(c.Uint64("id"))
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runWithdrawable(c *cli.Context) error {

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Withdrawable(c.Uint64("id"))
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runOwned(c *cli.Context) error {

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	owner := lockrecord.Address(c.String("owner"))
	if "" == owner {
		owner, err = identity(m)
		if nil != err {
			return err
		}
	}

	response, err := client.Owned(owner, c.Uint64("start"), c.Int("count"))
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runAssetLocks(c *cli.Context) error {

	asset, err := requiredString(c, "asset")
	if nil != err {
		return err
	}

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.AssetLocks(lockrecord.Address(asset), c.Uint64("start"), c.Int("count"))
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runPool(c *cli.Context) error {

	asset, err := requiredString(c, "asset")
	if nil != err {
		return err
	}

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetPool(lockrecord.Address(asset))
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runConvert(c *cli.Context) error {

	asset, err := requiredString(c, "asset")
	if nil != err {
		return err
	}

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Convert(lockrecord.Address(asset), c.Uint64("shares"))
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
