// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package authentication - check the signed header of RPC requests
package authentication

import (
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/lockerd/account"
	"github.com/bitmark-inc/lockerd/fault"
)

// DefaultWindow - how far a request timestamp may be from the server clock
const DefaultWindow = 5 * time.Minute

// Verifier - accepts each signed request once while its timestamp is fresh
type Verifier struct {
	window time.Duration
	clock  func() time.Time
	seen   *cache.Cache
}

// New - create a verifier, a nil clock uses time.Now
func New(window time.Duration, clock func() time.Time) *Verifier {
	if nil == clock {
		clock = time.Now
	}
	return &Verifier{
		window: window,
		clock:  clock,
		seen:   cache.New(2*window, window),
	}
}

// Verify - check that request signs this call of method with arguments
//
// arguments must be the structure that embeds request
func (v *Verifier) Verify(method string, request *account.Request, arguments interface{}) error {
	now := v.clock()
	timestamp := time.Unix(request.Timestamp, 0)
	if timestamp.Before(now.Add(-v.window)) || timestamp.After(now.Add(v.window)) {
		return fault.RequestExpired
	}

	message, err := request.Message(method, arguments)
	if nil != err {
		return err
	}
	if err := account.CheckSignature(request.Caller, message, request.Signature); nil != err {
		return err
	}

	// a signature outlives the window in the cache so a copy is refused
	// until its timestamp is too old anyway
	if err := v.seen.Add(request.Signature.String(), struct{}{}, 2*v.window); nil != err {
		return fault.RequestReplayed
	}
	return nil
}
