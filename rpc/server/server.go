// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - register every RPC handler
package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lockerd/chain"
	"github.com/bitmark-inc/lockerd/counter"
	"github.com/bitmark-inc/lockerd/custody"
	"github.com/bitmark-inc/lockerd/fee"
	"github.com/bitmark-inc/lockerd/ledger"
	"github.com/bitmark-inc/lockerd/messagebus"
	"github.com/bitmark-inc/lockerd/rpc/asset"
	"github.com/bitmark-inc/lockerd/rpc/authentication"
	"github.com/bitmark-inc/lockerd/rpc/fees"
	"github.com/bitmark-inc/lockerd/rpc/lock"
	"github.com/bitmark-inc/lockerd/rpc/node"
	"github.com/bitmark-inc/lockerd/rpc/pool"
)

// Services - everything the handlers operate on
type Services struct {
	Chain   string
	Version string
	Ledger  *ledger.Ledger
	Vault   *custody.Vault
	Fees    *fee.Fees
	Events  *messagebus.BroadcastQueue
}

// Create - an RPC server with all handlers registered
func Create(log *logger.L, services Services, rpcCount *counter.Counter) (*rpc.Server, error) {

	start := time.Now().UTC()

	server := rpc.NewServer()

	verifier := authentication.New(authentication.DefaultWindow, nil)

	handlers := []interface{}{
		lock.New(log, services.Ledger, verifier),
		pool.New(log, services.Ledger),
		asset.New(log, services.Vault, chain.AllowsAdministration(services.Chain)),
		fees.New(log, services.Fees, services.Ledger, verifier),
		node.New(log, start, services.Chain, services.Version, rpcCount, services.Ledger, services.Events),
	}
	for _, h := range handlers {
		if err := server.Register(h); nil != err {
			log.Errorf("register error: %s", err)
			return nil, err
		}
	}

	return server, nil
}
