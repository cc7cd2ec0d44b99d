// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vesting - release curve for locked claims
//
// a schedule is a (start, end) pair of unix times in seconds:
//
//   start == 0 or start >= end  - cliff: nothing until after end, then everything
//   start < end                 - linear: proportional release between start and end
//
// the functions are unit agnostic, the total may be a share count or
// an asset quantity
package vesting

import (
	"github.com/bitmark-inc/lockerd/util"
)

// IsCliff - true if the schedule releases everything at once
func IsCliff(start uint64, end uint64) bool {
	return 0 == start || start >= end
}

// WithdrawableAmount - the part of total released at time now
func WithdrawableAmount(start uint64, end uint64, total uint64, now uint64) uint64 {

	if IsCliff(start, end) {
		if now > end {
			return total
		}
		return 0
	}

	if now < start {
		now = start
	} else if now > end {
		now = end
	}

	// cannot overflow: (now - start) <= (end - start)
	amount, _ := util.MulDiv(total, now-start, end-start)
	return amount
}
