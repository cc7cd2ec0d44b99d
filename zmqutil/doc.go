// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package zmqutil - ZeroMQ helpers for the event publisher
//
// curve keys are stored as tagged hex strings:
//   PUBLIC:<64 hex digits>
//   PRIVATE:<64 hex digits>
package zmqutil
