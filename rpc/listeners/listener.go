// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - accept TLS connections for the JSON-RPC server
package listeners

// Listener - a started or startable network listener
type Listener interface {
	Serve() error
	Stop()
}
