// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - RPC handler for daemon status
package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lockerd/counter"
	"github.com/bitmark-inc/lockerd/ledger"
	"github.com/bitmark-inc/lockerd/messagebus"
	"github.com/bitmark-inc/lockerd/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Chain   string
	Version string
	Ledger  *ledger.Ledger
	Events  *messagebus.BroadcastQueue
	counter *counter.Counter
}

// New - create the node handler
func New(log *logger.L, start time.Time, chain string, version string, rpcCount *counter.Counter, l *ledger.Ledger, events *messagebus.BroadcastQueue) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Chain:   chain,
		Version: version,
		Ledger:  l,
		Events:  events,
		counter: rpcCount,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain         string            `json:"chain"`
	Version       string            `json:"version"`
	Uptime        string            `json:"uptime"`
	RPCs          uint64            `json:"rpcs"`
	Operations    map[string]uint64 `json:"operations"`
	DroppedEvents uint64            `json:"droppedEvents"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Chain = node.Chain
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.RPCs = node.counter.Uint64()
	reply.Operations = node.Ledger.Counts()
	reply.DroppedEvents = node.Events.Dropped()
	return nil
}
