// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sharepool

import (
	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/util"
	"github.com/bitmark-inc/logger"
)

// Pool - snapshot of one asset pool
//
// Balance is the live custodial balance read just before the snapshot
// was taken, it is advanced by Mint and Burn so that a sequence of
// conversions inside one operation sees a consistent running balance
type Pool struct {
	TotalShares uint64 `json:"totalShares"`
	Balance     uint64 `json:"balance"`
}

// QuantityToShares - shares minted for a deposit of quantity
//
// the first deposit into an empty pool defines the exchange rate 1:1
func QuantityToShares(totalShares uint64, quantity uint64, balanceBefore uint64) (uint64, error) {
	if 0 == quantity {
		return 0, fault.ZeroAmount
	}
	if 0 == totalShares {
		return quantity, nil
	}
	if 0 == balanceBefore {
		return 0, fault.PoolDrained
	}

	shares, ok := util.MulDiv(quantity, totalShares, balanceBefore)
	if !ok {
		return 0, fault.AmountOverflow
	}
	if 0 == shares {
		return 0, fault.ZeroShares
	}
	return shares, nil
}

// SharesToQuantity - value of shares at the current balance
//
// an empty pool has no value
func SharesToQuantity(totalShares uint64, shares uint64, balance uint64) (uint64, error) {
	if 0 == totalShares {
		return 0, nil
	}
	quantity, ok := util.MulDiv(shares, balance, totalShares)
	if !ok {
		return 0, fault.AmountOverflow
	}
	return quantity, nil
}

// WithdrawalDebit - shares to burn to release quantity
//
// rounds a non-zero request that floors to zero shares up to a single
// share, the withdrawer pays for the rounding
func WithdrawalDebit(totalShares uint64, quantity uint64, balance uint64) (uint64, error) {
	if 0 == quantity {
		return 0, fault.ZeroAmount
	}
	if 0 == balance {
		return 0, fault.InsufficientBalance
	}

	debit, ok := util.MulDiv(quantity, totalShares, balance)
	if !ok {
		return 0, fault.AmountOverflow
	}
	if 0 == debit {
		debit = 1
	}
	return debit, nil
}

// Shares - shares for a deposit of quantity at the running balance
func (p Pool) Shares(quantity uint64) (uint64, error) {
	return QuantityToShares(p.TotalShares, quantity, p.Balance)
}

// Quantity - value of shares at the running balance
func (p Pool) Quantity(shares uint64) (uint64, error) {
	return SharesToQuantity(p.TotalShares, shares, p.Balance)
}

// Debit - shares to burn to release quantity at the running balance
func (p Pool) Debit(quantity uint64) (uint64, error) {
	return WithdrawalDebit(p.TotalShares, quantity, p.Balance)
}

// IsDust - true if a single share is worth nothing at the running balance
func (p Pool) IsDust() bool {
	q, err := p.Quantity(1)
	return nil == err && 0 == q
}

// Mint - account for a deposit of quantity that has already been
// received, returns the shares created
func (p *Pool) Mint(quantity uint64) (uint64, error) {
	shares, err := p.Shares(quantity)
	if nil != err {
		return 0, err
	}

	totalShares := p.TotalShares + shares
	balance := p.Balance + quantity
	if totalShares < p.TotalShares || balance < p.Balance {
		return 0, fault.AmountOverflow
	}

	p.TotalShares = totalShares
	p.Balance = balance
	return shares, nil
}

// Burn - remove shares from the pool, returns the quantity to release
func (p *Pool) Burn(shares uint64) (uint64, error) {
	if shares > p.TotalShares {
		logger.Panicf("sharepool: burn: %d exceeds total shares: %d", shares, p.TotalShares)
	}

	quantity, err := p.Quantity(shares)
	if nil != err {
		return 0, err
	}

	p.TotalShares -= shares
	p.Balance -= quantity
	return quantity, nil
}
