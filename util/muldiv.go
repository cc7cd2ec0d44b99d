// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"math/big"
)

// MulDiv - floor(x * y / d) computed with a full width intermediate
//
// second value is false if d is zero or the quotient does not fit in
// 64 bits
func MulDiv(x uint64, y uint64, d uint64) (uint64, bool) {
	if 0 == d {
		return 0, false
	}

	n := new(big.Int).Mul(new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))
	n.Quo(n, new(big.Int).SetUint64(d))

	if !n.IsUint64() {
		return 0, false
	}
	return n.Uint64(), true
}
