// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - ed25519 keys as ledger addresses
//
// an account address is the hex encoding of its ed25519 public key;
// state changing requests carry a header signed by that key
package account
