// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package lockrecord - the lock record and its binary form
//
// packed record (all integers big endian):
//
//   version          1 byte (0x01)
//   id               8 bytes
//   shares deposited 8 bytes
//   shares withdrawn 8 bytes
//   start emission   8 bytes
//   end emission     8 bytes
//   asset            1 byte length ++ bytes
//   owner            1 byte length ++ bytes
package lockrecord
