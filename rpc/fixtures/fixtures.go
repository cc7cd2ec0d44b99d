// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for the RPC handler tests
package fixtures

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lockerd/account"
	"github.com/bitmark-inc/lockerd/custody"
	"github.com/bitmark-inc/lockerd/fee"
	"github.com/bitmark-inc/lockerd/ledger"
	"github.com/bitmark-inc/lockerd/lockrecord"
	"github.com/bitmark-inc/lockerd/messagebus"
	"github.com/bitmark-inc/lockerd/rpc/certificate"
	"github.com/bitmark-inc/lockerd/storage"
)

const (
	dir              = "testing"
	databaseFileName = "testing/test.leveldb"

	// LogCategory - logger channel for tests
	LogCategory = "testing"

	// Custodian - vault account holding locked assets
	Custodian = "locker"

	// StartTime - initial clock of every environment
	StartTime = 1600000000

	// InitialBalance - what alice and bob hold of each asset
	InitialBalance = 1000000
)

// fixed keys, Administrator is the default fee administrator
var (
	Alice         = seededKey(1)
	Bob           = seededKey(2)
	Carol         = seededKey(3)
	Administrator = seededKey(4)
)

func seededKey(b byte) *account.KeyPair {
	k, err := account.KeyPairFromSeed(bytes.Repeat([]byte{b}, 32))
	if nil != err {
		panic(err)
	}
	return k
}

// Sign - fill in the signed header of arguments as a call by k
func Sign(t *testing.T, k *account.KeyPair, method string, request *account.Request, arguments interface{}) {
	if err := request.Sign(k, method, arguments, time.Now()); nil != err {
		t.Fatalf("sign error: %s", err)
	}
}

// SetupTestLogger - logger writing to the testing directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop the logger and remove its files
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(dir)
}

// Environment - a ledger over a vault in a fresh database
//
// the vault holds WETH (no transfer fee) and FOT (1% transfer fee),
// Alice and Bob each hold InitialBalance of both
type Environment struct {
	Ledger *ledger.Ledger
	Vault  *custody.Vault
	Fees   *fee.Fees
	Events *messagebus.BroadcastQueue
	Now    int64
}

// NewEnvironment - create an environment, the caller must Close it
func NewEnvironment(t *testing.T, schedule fee.Schedule) *Environment {
	_ = os.RemoveAll(databaseFileName)
	if err := storage.Initialise(databaseFileName, storage.ReadWrite); nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	v, err := custody.NewVault(logger.New(LogCategory), Custodian, custody.Handles{
		Holdings:  storage.Pool.Holdings,
		AssetInfo: storage.Pool.AssetInfo,
	})
	if nil != err {
		t.Fatalf("new vault error: %s", err)
	}

	for asset, transferFee := range map[lockrecord.Address]uint64{"WETH": 0, "FOT": 100} {
		if err := v.Register(asset, transferFee); nil != err {
			t.Fatalf("register error: %s", err)
		}
		for _, holder := range []lockrecord.Address{Alice.Address(), Bob.Address()} {
			if err := v.Mint(asset, holder, InitialBalance); nil != err {
				t.Fatalf("mint error: %s", err)
			}
		}
	}

	if "" == schedule.Admin {
		schedule.Admin = Administrator.Address()
	}
	fees, err := fee.New(schedule)
	if nil != err {
		t.Fatalf("fee schedule error: %s", err)
	}

	e := &Environment{
		Vault:  v,
		Fees:   fees,
		Events: new(messagebus.BroadcastQueue),
		Now:    StartTime,
	}
	clock := func() time.Time {
		return time.Unix(e.Now, 0)
	}

	pools := ledger.Handles{
		Locks:         storage.Pool.Locks,
		LockNextId:    storage.Pool.LockNextId,
		TotalShares:   storage.Pool.TotalShares,
		FeesCollected: storage.Pool.FeesCollected,
		OwnerLocks:    storage.Pool.OwnerLocks,
		AssetLocks:    storage.Pool.AssetLocks,
	}
	e.Ledger, err = ledger.New(logger.New(LogCategory), ledger.Configuration{}, pools, v, fees, e.Events, clock)
	if nil != err {
		t.Fatalf("new ledger error: %s", err)
	}
	return e
}

// Close - release the database
func (e *Environment) Close() {
	e.Events.Release()
	storage.Finalise()
	_ = os.RemoveAll(databaseFileName)
}

// Certificate - a fresh self-signed certificate and key in PEM form
func Certificate(t *testing.T) (string, string) {
	certificateFileName := filepath.Join(dir, "rpc.crt")
	keyFileName := filepath.Join(dir, "rpc.key")
	_ = os.Remove(certificateFileName)
	_ = os.Remove(keyFileName)

	err := certificate.MakeSelfSigned("test", certificateFileName, keyFileName, false, []string{"127.0.0.1"})
	if nil != err {
		t.Fatalf("make certificate error: %s", err)
	}

	cert, err := ioutil.ReadFile(certificateFileName)
	if nil != err {
		t.Fatalf("read certificate error: %s", err)
	}
	key, err := ioutil.ReadFile(keyFileName)
	if nil != err {
		t.Fatalf("read key error: %s", err)
	}
	return string(cert), string(key)
}
