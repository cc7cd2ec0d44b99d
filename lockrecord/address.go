// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lockrecord

import (
	"github.com/bitmark-inc/lockerd/fault"
)

// MaximumAddressLength - longest account or asset identifier
const MaximumAddressLength = 64

// Address - opaque identifier of an account or an asset
type Address string

// Validate - check that address can be stored
func (a Address) Validate() error {
	if 0 == len(a) || len(a) > MaximumAddressLength {
		return fault.InvalidAddress
	}
	for _, c := range []byte(a) {
		if c <= ' ' || c > '~' {
			return fault.InvalidAddress
		}
	}
	return nil
}

// Bytes - length prefixed form used in storage keys
//
// the length prefix stops one address from being a key prefix of a
// longer one
func (a Address) Bytes() []byte {
	b := make([]byte, 1, len(a)+1)
	b[0] = byte(len(a))
	return append(b, a...)
}

// String - for printing
func (a Address) String() string {
	return string(a)
}
