// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/lockrecord"
)

// Address - the ledger address of a public key
func Address(publicKey ed25519.PublicKey) lockrecord.Address {
	return lockrecord.Address(hex.EncodeToString(publicKey))
}

// PublicKey - decode an address back to its public key
func PublicKey(a lockrecord.Address) (ed25519.PublicKey, error) {
	if hex.EncodedLen(ed25519.PublicKeySize) != len(a) {
		return nil, fault.InvalidAddress
	}
	b, err := hex.DecodeString(string(a))
	if nil != err {
		return nil, fault.InvalidAddress
	}
	return ed25519.PublicKey(b), nil
}

// CheckSignature - check the signature of a message by an address
func CheckSignature(a lockrecord.Address, message []byte, signature Signature) error {
	publicKey, err := PublicKey(a)
	if nil != err {
		return fault.InvalidSignature
	}

	if ed25519.SignatureSize != len(signature) {
		return fault.InvalidSignature
	}

	if !ed25519.Verify(publicKey, message, signature) {
		return fault.InvalidSignature
	}
	return nil
}
