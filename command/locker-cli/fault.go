// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/lockerd/fault"
)

// common errors - keep in alphabetic order
const (
	ErrInvalidLock      = fault.InvalidError("lock must be OWNER:QUANTITY:END")
	ErrMissingKeyFile   = fault.InvalidError("key file is required")
	ErrMissingLocks     = fault.InvalidError("at least one lock is required")
	ErrMissingParameter = fault.InvalidError("missing parameter")
)
