// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lockrecord

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/vesting"
	"github.com/bitmark-inc/logger"
)

const (
	currentVersion = 0x01
	fixedLength    = 1 + 5*8
)

// Record - one lock
//
// records are never deleted, a change of owner creates a new record
// and retires the old one
type Record struct {
	Id              uint64  `json:"id,string"`
	Asset           Address `json:"asset"`
	Owner           Address `json:"owner"`
	SharesDeposited uint64  `json:"sharesDeposited,string"`
	SharesWithdrawn uint64  `json:"sharesWithdrawn,string"`
	StartEmission   uint64  `json:"startEmission"`
	EndEmission     uint64  `json:"endEmission"`
}

// Packed - binary form of a record
type Packed []byte

// Digest - SHA3-256 of a packed record
type Digest [32]byte

// IsCliff - true for an all-or-nothing (type 1) lock
func (r *Record) IsCliff() bool {
	return vesting.IsCliff(r.StartEmission, r.EndEmission)
}

// Remaining - shares not yet withdrawn
func (r *Record) Remaining() uint64 {
	if r.SharesWithdrawn > r.SharesDeposited {
		logger.Panicf("lock: %d withdrawn: %d exceeds deposited: %d", r.Id, r.SharesWithdrawn, r.SharesDeposited)
	}
	return r.SharesDeposited - r.SharesWithdrawn
}

// IsConsumed - all deposited shares have been withdrawn, split off or transferred
func (r *Record) IsConsumed() bool {
	return r.SharesWithdrawn == r.SharesDeposited
}

// WithdrawableShares - shares that may be withdrawn at time now
func (r *Record) WithdrawableShares(now uint64) uint64 {
	if r.IsCliff() {
		return vesting.WithdrawableAmount(r.StartEmission, r.EndEmission, r.Remaining(), now)
	}

	released := vesting.WithdrawableAmount(r.StartEmission, r.EndEmission, r.SharesDeposited, now)
	if r.SharesWithdrawn >= released {
		return 0
	}
	return released - r.SharesWithdrawn
}

// Pack - convert a record to binary
func (r *Record) Pack() (Packed, error) {
	if err := r.Asset.Validate(); nil != err {
		return nil, err
	}
	if err := r.Owner.Validate(); nil != err {
		return nil, err
	}

	buffer := make([]byte, fixedLength, fixedLength+len(r.Asset)+len(r.Owner)+2)
	buffer[0] = currentVersion
	binary.BigEndian.PutUint64(buffer[1:], r.Id)
	binary.BigEndian.PutUint64(buffer[9:], r.SharesDeposited)
	binary.BigEndian.PutUint64(buffer[17:], r.SharesWithdrawn)
	binary.BigEndian.PutUint64(buffer[25:], r.StartEmission)
	binary.BigEndian.PutUint64(buffer[33:], r.EndEmission)
	buffer = append(buffer, r.Asset.Bytes()...)
	buffer = append(buffer, r.Owner.Bytes()...)

	return buffer, nil
}

// Unpack - convert binary to a record
func (packed Packed) Unpack() (*Record, error) {
	if len(packed) < fixedLength {
		return nil, fault.TruncatedRecord
	}
	if currentVersion != packed[0] {
		return nil, fault.UnknownRecordVersion
	}

	r := &Record{
		Id:              binary.BigEndian.Uint64(packed[1:]),
		SharesDeposited: binary.BigEndian.Uint64(packed[9:]),
		SharesWithdrawn: binary.BigEndian.Uint64(packed[17:]),
		StartEmission:   binary.BigEndian.Uint64(packed[25:]),
		EndEmission:     binary.BigEndian.Uint64(packed[33:]),
	}

	n := fixedLength
	asset, n, err := unpackAddress(packed, n)
	if nil != err {
		return nil, err
	}
	owner, n, err := unpackAddress(packed, n)
	if nil != err {
		return nil, err
	}
	if n != len(packed) {
		return nil, fault.InvalidItem
	}

	r.Asset = asset
	r.Owner = owner
	return r, nil
}

// Digest - fingerprint of the packed record
func (packed Packed) Digest() Digest {
	return sha3.Sum256(packed)
}

// String - hex form of a digest
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// MarshalText - hex form for JSON
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func unpackAddress(packed Packed, n int) (Address, int, error) {
	if n >= len(packed) {
		return "", 0, fault.TruncatedRecord
	}
	length := int(packed[n])
	n += 1
	if n+length > len(packed) {
		return "", 0, fault.TruncatedRecord
	}
	a := Address(packed[n : n+length])
	return a, n + length, a.Validate()
}
