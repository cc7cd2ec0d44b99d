// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sharepool - conversion between pool shares and asset quantity
//
// every asset held in custody has one pool; a lock holds shares of the
// pool, never an absolute quantity, so rebasing or fee skimming of the
// custodial balance is shared fairly between all locks
//
// conversions:
//
//   deposit:   shares   = floor(quantity * totalShares / balanceBefore)  (1:1 for an empty pool)
//   withdraw:  debit    = floor(quantity * totalShares / balance), at least 1
//   value:     quantity = floor(shares * balance / totalShares)
//
// all rounding is in favour of the pool so the sum of the values of
// all outstanding shares never exceeds the custodial balance
package sharepool
