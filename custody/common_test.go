// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package custody_test

import (
	"context"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lockerd/custody"
	"github.com/bitmark-inc/lockerd/storage"
)

const (
	dir              = "testing"
	databaseFileName = "testing/test.leveldb"
	custodian        = "locker"
)

var ctx = context.Background()

func removeFiles() {
	_ = os.RemoveAll(dir)
}

func setupTestLogger() {
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

func TestMain(m *testing.M) {
	setupTestLogger()
	rc := m.Run()
	logger.Finalise()
	removeFiles()
	os.Exit(rc)
}

func setup(t *testing.T) *custody.Vault {
	_ = os.RemoveAll(databaseFileName)
	if err := storage.Initialise(databaseFileName, storage.ReadWrite); nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	v, err := custody.NewVault(logger.New("vault"), custodian, custody.Handles{
		Holdings:  storage.Pool.Holdings,
		AssetInfo: storage.Pool.AssetInfo,
	})
	if nil != err {
		t.Fatalf("new vault error: %s", err)
	}
	return v
}

func teardown() {
	storage.Finalise()
	_ = os.RemoveAll(databaseFileName)
}
