// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/lockerd/account"
	"github.com/bitmark-inc/lockerd/command/locker-cli/rpccalls"
	"github.com/bitmark-inc/lockerd/ledger"
	"github.com/bitmark-inc/lockerd/lockrecord"
)

// open a connection to the configured lockerd
func newClient(c *cli.Context) (*metadata, *rpccalls.Client, error) {
	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return nil, nil, err
	}
	return m, client, nil
}

// the signing key, required for all changes
func keyPair(m *metadata) (*account.KeyPair, error) {
	if "" == m.keyFile {
		return nil, ErrMissingKeyFile
	}
	return account.ReadKeyFile(m.keyFile)
}

// the address of the signing key
func identity(m *metadata) (lockrecord.Address, error) {
	k, err := keyPair(m)
	if nil != err {
		return "", err
	}
	return k.Address(), nil
}

// OWNER:QUANTITY:END
func parseLock(s string) (ledger.LockRequest, error) {
	fields := strings.Split(strings.TrimSpace(s), ":")
	if 3 != len(fields) || "" == fields[0] {
		return ledger.LockRequest{}, ErrInvalidLock
	}

	quantity, err := strconv.ParseUint(fields[1], 10, 64)
	if nil != err {
		return ledger.LockRequest{}, ErrInvalidLock
	}
	end, err := strconv.ParseUint(fields[2], 10, 64)
	if nil != err {
		return ledger.LockRequest{}, ErrInvalidLock
	}

	return ledger.LockRequest{
		Owner:       lockrecord.Address(fields[0]),
		Quantity:    quantity,
		EndEmission: end,
	}, nil
}

func parseLocks(items []string) ([]ledger.LockRequest, error) {
	if 0 == len(items) {
		return nil, ErrMissingLocks
	}
	locks := make([]ledger.LockRequest, 0, len(items))
	for _, s := range items {
		r, err := parseLock(s)
		if nil != err {
			return nil, err
		}
		locks = append(locks, r)
	}
	return locks, nil
}

// a flag that must be given
func requiredString(c *cli.Context, name string) (string, error) {
	s := strings.TrimSpace(c.String(name))
	if "" == s {
		return "", ErrMissingParameter
	}
	return s, nil
}
