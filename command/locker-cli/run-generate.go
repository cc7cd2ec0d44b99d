// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/lockerd/account"
)

type generateReply struct {
	Key  account.RawKeyPair `json:"key"`
	File string             `json:"file,omitempty"`
}

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	k, err := account.MakeKeyPair()
	if nil != err {
		return err
	}

	file := c.String("file")
	if "" == file {
		return printJson(m.w, k.Raw())
	}

	if err := account.WriteKeyFile(file, k); nil != err {
		return err
	}

	// the private key stays in the file
	raw := k.Raw()
	raw.PrivateKey = ""
	return printJson(m.w, generateReply{
		Key:  *raw,
		File: file,
	})
}
