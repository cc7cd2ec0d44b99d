// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/lockerd/command/locker-cli/rpccalls"
	"github.com/bitmark-inc/lockerd/lockrecord"
)

func runCreate(c *cli.Context) error {

	asset, err := requiredString(c, "asset")
	if nil != err {
		return err
	}
	locks, err := parseLocks(c.StringSlice("lock"))
	if nil != err {
		return err
	}

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	key, err := keyPair(m)
	if nil != err {
		return err
	}

	response, err := client.Create(&rpccalls.CreateData{
		Key:     key,
		Asset:   lockrecord.Address(asset),
		Locks:   locks,
		Vesting: c.Bool("vesting"),
		Payment: c.Uint64("payment"),
	})
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runWithdraw(c *cli.Context) error {

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	key, err := keyPair(m)
	if nil != err {
		return err
	}

	response, err := client.Withdraw(key, c.Uint64("id"), c.Uint64("quantity"))
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runIncrement(c *cli.Context) error {

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	key, err := keyPair(m)
	if nil != err {
		return err
	}

	response, err := client.Increment(key, c.Uint64("id"), c.Uint64("quantity"))
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runRelock(c *cli.Context) error {

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	key, err := keyPair(m)
	if nil != err {
		return err
	}

	response, err := client.Relock(key, c.Uint64("id"), c.Uint64("end"), c.Uint64("payment"))
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runSplit(c *cli.Context) error {

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	key, err := keyPair(m)
	if nil != err {
		return err
	}

	response, err := client.Split(key, c.Uint64("id"), c.Uint64("quantity"), c.Uint64("payment"))
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runTransfer(c *cli.Context) error {

	receiver, err := requiredString(c, "receiver")
	if nil != err {
		return err
	}

	m, client, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	key, err := keyPair(m)
	if nil != err {
		return err
	}

	response, err := client.Transfer(key, c.Uint64("id"), lockrecord.Address(receiver), c.Uint64("payment"))
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
