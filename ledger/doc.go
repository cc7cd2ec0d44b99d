// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - time locks over share pools
//
// every lock holds shares of its asset's pool; the quantity a share is
// worth is always derived from the live custodial balance so assets
// that rebase or charge a transfer fee are shared out fairly
//
// lock records are append-only: ownership changes and splits create
// new records, nothing is ever deleted
//
// each state change runs under the ledger mutex inside a single
// storage transaction; any error aborts the transaction so a failed
// operation leaves storage unchanged
package ledger
