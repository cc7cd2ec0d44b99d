// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package custody - the boundary between the ledger and the assets it holds
//
// the ledger only needs the custodial balance and the ability to move
// quantities in and out; it never trusts the requested amount of an
// inbound transfer and always measures the balance before and after
//
// Vault is a self-contained implementation that keeps token accounts
// in the local database, it can charge a fee on every transfer and can
// rebase the custodial balance so that the ledger can be exercised
// against awkward assets
package custody
