// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all chains
const (
	Testing = "testing"
	Local   = "local"
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Testing, Local:
		return true
	default:
		return false
	}
}

// AllowsAdministration - true if assets may be minted and rebased
// through the RPC interface
func AllowsAdministration(name string) bool {
	return Local == name
}
