// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"os"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/lockrecord"
)

// KeyPair - an ed25519 signing key
type KeyPair struct {
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
}

// RawKeyPair - the key file form
type RawKeyPair struct {
	Address    lockrecord.Address `json:"address"`
	PublicKey  string             `json:"public_key"`
	PrivateKey string             `json:"private_key"`
}

// MakeKeyPair - a new random key pair
func MakeKeyPair() (*KeyPair, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &KeyPair{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}, nil
}

// KeyPairFromSeed - the key pair of a 32 byte seed
func KeyPairFromSeed(seed []byte) (*KeyPair, error) {
	if ed25519.SeedSize != len(seed) {
		return nil, fault.InvalidPrivateKeyFile
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	return &KeyPair{
		PublicKey:  privateKey.Public().(ed25519.PublicKey),
		PrivateKey: privateKey,
	}, nil
}

// Address - the account address of this key
func (k *KeyPair) Address() lockrecord.Address {
	return Address(k.PublicKey)
}

// Sign - sign a message
func (k *KeyPair) Sign(message []byte) Signature {
	return ed25519.Sign(k.PrivateKey, message)
}

// Raw - hex form for a key file
func (k *KeyPair) Raw() *RawKeyPair {
	return &RawKeyPair{
		Address:    k.Address(),
		PublicKey:  hex.EncodeToString(k.PublicKey),
		PrivateKey: hex.EncodeToString(k.PrivateKey),
	}
}

// KeyPair - decode and check a key file form
//
// the private key must regenerate the stored public key
func (raw *RawKeyPair) KeyPair() (*KeyPair, error) {
	privateKey, err := hex.DecodeString(raw.PrivateKey)
	if nil != err || ed25519.PrivateKeySize != len(privateKey) {
		return nil, fault.InvalidPrivateKeyFile
	}
	publicKey, err := hex.DecodeString(raw.PublicKey)
	if nil != err || ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.InvalidPublicKeyFile
	}

	k, err := KeyPairFromSeed(ed25519.PrivateKey(privateKey).Seed())
	if nil != err {
		return nil, err
	}
	if !bytes.Equal(k.PrivateKey, privateKey) || !bytes.Equal(k.PublicKey, publicKey) {
		return nil, fault.InvalidPrivateKeyFile
	}
	return k, nil
}

// ReadKeyFile - load a key pair written by WriteKeyFile
func ReadKeyFile(name string) (*KeyPair, error) {
	data, err := ioutil.ReadFile(name)
	if nil != err {
		return nil, err
	}
	var raw RawKeyPair
	if err := json.Unmarshal(data, &raw); nil != err {
		return nil, fault.InvalidPrivateKeyFile
	}
	return raw.KeyPair()
}

// WriteKeyFile - store a key pair readable only by its owner
//
// an existing file is never overwritten
func WriteKeyFile(name string, k *KeyPair) error {
	data, err := json.MarshalIndent(k.Raw(), "", "  ")
	if nil != err {
		return err
	}

	fd, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if os.IsExist(err) {
		return fault.KeyFileAlreadyExists
	}
	if nil != err {
		return err
	}
	defer fd.Close()

	_, err = fd.Write(append(data, '\n'))
	return err
}
