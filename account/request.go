// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/bitmark-inc/lockerd/lockrecord"
)

// Request - the signed header embedded in state changing RPC arguments
//
// the signature covers the method name and the JSON of the whole
// argument structure with the signature itself left empty
type Request struct {
	Caller    lockrecord.Address `json:"caller"`
	Timestamp int64              `json:"timestamp,string"`
	Nonce     uint64             `json:"nonce,string"`
	Signature Signature          `json:"signature"`
}

// Message - the bytes signed for a call of method with arguments
//
// arguments must be the structure that embeds r
func (r *Request) Message(method string, arguments interface{}) ([]byte, error) {
	signature := r.Signature
	r.Signature = nil
	defer func() {
		r.Signature = signature
	}()

	payload, err := json.Marshal(arguments)
	if nil != err {
		return nil, err
	}

	message := make([]byte, 0, len(method)+1+len(payload))
	message = append(message, method...)
	message = append(message, 0)
	return append(message, payload...), nil
}

// Sign - fill in the header of arguments as a call by key at time now
func (r *Request) Sign(key *KeyPair, method string, arguments interface{}, now time.Time) error {
	nonce := make([]byte, 8)
	if _, err := rand.Read(nonce); nil != err {
		return err
	}

	r.Caller = key.Address()
	r.Timestamp = now.Unix()
	r.Nonce = binary.BigEndian.Uint64(nonce)

	message, err := r.Message(method, arguments)
	if nil != err {
		return err
	}
	r.Signature = key.Sign(message)
	return nil
}
