// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package custody

//go:generate mockgen -destination=mocks/custody.go -package=mocks github.com/bitmark-inc/lockerd/custody Asset,Registry

import (
	"context"

	"github.com/bitmark-inc/lockerd/lockrecord"
	"github.com/bitmark-inc/lockerd/storage"
)

// Asset - one asset as seen from the custodian
//
// ctx carries the caller's call chain, an asset that calls back into the
// ledger must pass it on
type Asset interface {
	// quantity held on behalf of the ledger
	Balance(ctx context.Context) (uint64, error)

	// quantity held by any other account
	HolderBalance(ctx context.Context, holder lockrecord.Address) (uint64, error)

	// move quantity from an account into custody, the custodial
	// balance may grow by less than amount
	TransferIn(ctx context.Context, from lockrecord.Address, amount uint64) error

	// move quantity out of custody to an account
	TransferOut(ctx context.Context, to lockrecord.Address, amount uint64) error
}

// Registry - find an asset by address
//
// the returned asset stages its changes in trx so they commit or abort
// together with the ledger; a nil trx gives a read-only asset
type Registry interface {
	Asset(trx storage.Transaction, asset lockrecord.Address) (Asset, error)
}
