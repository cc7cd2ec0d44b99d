// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect string
	keyFile string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const (
	defaultConnect = "127.0.0.1:2130"
	defaultCount   = 20
)

func idFlag() cli.Flag {
	return cli.Uint64Flag{
		Name:  "id, l",
		Value: 0,
		Usage: "*lock `ID`",
	}
}

func quantityFlag() cli.Flag {
	return cli.Uint64Flag{
		Name:  "quantity, q",
		Value: 0,
		Usage: "*asset `QUANTITY`",
	}
}

func paymentFlag() cli.Flag {
	return cli.Uint64Flag{
		Name:  "payment, p",
		Value: 0,
		Usage: " fee `AMOUNT` paid with the request",
	}
}

func listFlags() []cli.Flag {
	return []cli.Flag{
		cli.Uint64Flag{
			Name:  "start, s",
			Value: 0,
			Usage: " first lock `ID` to return",
		},
		cli.IntFlag{
			Name:  "count, n",
			Value: defaultCount,
			Usage: " maximum locks to return `COUNT`",
		},
	}
}

func main() {

	app := cli.NewApp()
	app.Name = "locker-cli"
	app.Usage = "client for lockerd"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  defaultConnect,
			Usage:  " lockerd host/IP and port, `HOST:PORT`",
			EnvVar: "LOCKER_CONNECT",
		},
		cli.StringFlag{
			Name:   "key-file, i",
			Value:  "",
			Usage:  " sign as the account whose key pair is in `FILE`",
			EnvVar: "LOCKER_KEY_FILE",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "generate",
			Usage: "create a new signing key pair",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: " write the key pair to `FILE` instead of printing it",
				},
			},
			Action: runGenerate,
		},
		{
			Name:      "create",
			Usage:     "lock an asset into one or more new locks",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ADDRESS`",
				},
				cli.StringSliceFlag{
					Name:  "lock, k",
					Usage: "*repeatable `OWNER:QUANTITY:END`",
				},
				cli.BoolFlag{
					Name:  "vesting, V",
					Usage: " release linearly until END (default is a cliff at END)",
				},
				paymentFlag(),
			},
			Action: runCreate,
		},
		{
			Name:      "withdraw",
			Usage:     "release unlocked quantity to the lock owner",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{idFlag(), quantityFlag()},
			Action:    runWithdraw,
		},
		{
			Name:      "increment",
			Usage:     "add quantity to an existing lock",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{idFlag(), quantityFlag()},
			Action:    runIncrement,
		},
		{
			Name:      "relock",
			Usage:     "move the end of a lock later",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				idFlag(),
				cli.Uint64Flag{
					Name:  "end, e",
					Value: 0,
					Usage: "*new end `SECONDS` since the epoch",
				},
				paymentFlag(),
			},
			Action: runRelock,
		},
		{
			Name:      "split",
			Usage:     "move quantity of a cliff lock into a new lock",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{idFlag(), quantityFlag(), paymentFlag()},
			Action:    runSplit,
		},
		{
			Name:      "transfer",
			Usage:     "give a lock to another account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				idFlag(),
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*new owner `ADDRESS`",
				},
				paymentFlag(),
			},
			Action: runTransfer,
		},
		{
			Name:      "get",
			Usage:     "display a lock",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{idFlag()},
			Action:    runGet,
		},
		{
			Name:      "withdrawable",
			Usage:     "display what can be withdrawn from a lock now",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{idFlag()},
			Action:    runWithdrawable,
		},
		{
			Name:      "owned",
			Usage:     "list locks of an owner",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " owner `ADDRESS` (default is the key file account)",
				},
			}, listFlags()...),
			Action: runOwned,
		},
		{
			Name:      "locks",
			Usage:     "list locks of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ADDRESS`",
				},
			}, listFlags()...),
			Action: runAssetLocks,
		},
		{
			Name:      "pool",
			Usage:     "display the share pool of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ADDRESS`",
				},
			},
			Action: runPool,
		},
		{
			Name:      "convert",
			Usage:     "current quantity of a number of shares",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ADDRESS`",
				},
				cli.Uint64Flag{
					Name:  "shares, s",
					Value: 0,
					Usage: "*number of `SHARES`",
				},
			},
			Action: runConvert,
		},
		{
			Name:   "assets",
			Usage:  "list the custodian and its assets",
			Action: runAssets,
		},
		{
			Name:      "balance",
			Usage:     "display an account balance of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "holder, o",
					Value: "",
					Usage: " holder `ADDRESS` (default is the key file account)",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "mint",
			Usage:     "create asset quantity for an account (local chain only)",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "holder, o",
					Value: "",
					Usage: "*holder `ADDRESS`",
				},
				cli.Uint64Flag{
					Name:  "amount, q",
					Value: 0,
					Usage: "*`QUANTITY` to create",
				},
			},
			Action: runMint,
		},
		{
			Name:      "rebase",
			Usage:     "set the custodian balance of an asset (local chain only)",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ADDRESS`",
				},
				cli.Uint64Flag{
					Name:  "balance, b",
					Value: 0,
					Usage: "*new `QUANTITY` held",
				},
			},
			Action: runRebase,
		},
		{
			Name:   "fees",
			Usage:  "display the fee schedule and collected fees",
			Action: runFees,
		},
		{
			Name:      "set-fees",
			Usage:     "change the fee schedule (administrator only)",
			ArgsUsage: "\n   (unset values are not changed)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "admin",
					Usage: " new administrator `ADDRESS`",
				},
				cli.Uint64Flag{
					Name:  "create-fee",
					Usage: " fee `AMOUNT` for create",
				},
				cli.Uint64Flag{
					Name:  "edit-fee",
					Usage: " fee `AMOUNT` for relock, split and transfer",
				},
				cli.StringFlag{
					Name:  "referral-asset",
					Usage: " discount qualifying asset `ADDRESS`",
				},
				cli.Uint64Flag{
					Name:  "referral-threshold",
					Usage: " minimum holding `QUANTITY` for discount",
				},
				cli.Uint64Flag{
					Name:  "referral-discount",
					Usage: " discount in `BASIS-POINTS`",
				},
			},
			Action: runSetFees,
		},
		{
			Name:   "info",
			Usage:  "display lockerd status",
			Action: runInfo,
		},
		{
			Name:      "watch",
			Usage:     "print ledger events from the lockerd publisher",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "broadcast, b",
					Value: "",
					Usage: "*publisher `HOST:PORT`",
				},
				cli.StringFlag{
					Name:  "public-key, k",
					Value: "",
					Usage: " publisher public key `FILE` for encrypted connections",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 0,
					Usage: " stop after `COUNT` events (default is never)",
				},
			},
			Action: runWatch,
		},
		{
			Name:  "version",
			Usage: "display locker-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect: c.GlobalString("connect"),
			keyFile: c.GlobalString("key-file"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
