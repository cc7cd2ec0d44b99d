// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the avaiable tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++      = concatenation of byte data
// 3. id      = lock id as big endian uint64 (8 bytes)
// 4. asset   = asset address, length byte ++ bytes
// 5. owner   = account address, length byte ++ bytes
// 6. count   = big endian uint64 (8 bytes)
//
// Ledger:
//
//   L ++ id                    - lock records
//                                data: packed lock record
//   N                          - next lock id
//                                data: count
//   S ++ asset                 - total shares outstanding for an asset
//                                data: count
//   F                          - total of collected fees
//                                data: count
//
// Indexes:
//
//   O ++ owner ++ id           - locks currently owned by an account
//                                data: empty
//   A ++ asset ++ id           - all locks ever created for an asset
//                                data: empty
//
// Custody vault:
//
//   H ++ asset ++ holder       - holder balance
//                                data: count
//   I ++ asset                 - registered asset
//                                data: transfer fee in basis points (count)
//
// Testing:
//   Z ++ key                   - testing data
package storage
