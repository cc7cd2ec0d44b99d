// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command locker-cli - client for the lockerd JSON RPC services
//
// changes are signed with the key pair in the --key-file option and act
// as that key's account; generate makes a new key pair
package main
