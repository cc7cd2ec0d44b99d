// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/lockerd/fault"
	"github.com/bitmark-inc/lockerd/util"
)

func TestCanonical(t *testing.T) {
	testData := []struct {
		in       string
		expected string
	}{
		{"127.0.0.1:1234", "127.0.0.1:1234"},
		{"127.0.0.1:1", "127.0.0.1:1"},
		{" 127.0.0.1:1 ", "127.0.0.1:1"},
		{"127.0.0.1:65535", "127.0.0.1:65535"},
		{"0.0.0.0:1234", "0.0.0.0:1234"},
		{"[::1]:1234", "[::1]:1234"},
		{"[::]:1234", "[::]:1234"},
		{"[0:0::0:0]:1234", "[::]:1234"},
		{"[0:0:0:0::1]:1234", "[::1]:1234"},
	}

	for i, d := range testData {
		c, err := util.CanonicalIPandPort("tcp://", d.in)
		assert.Nil(t, err, "item: %d", i)
		assert.Equal(t, "tcp://"+d.expected, c, "item: %d", i)
	}
}

func TestCanonicalIP(t *testing.T) {
	testData := []string{
		"127.1:1234",
		"256.0.0.0:1234",
		"0.256.0.0:1234",
		"0.0.256.0:1234",
		"0.0.0.256:1234",
		"0:0:1234",
		"[]:1234",
		"[as34::]:1234",
		"[1ffff::]:1234",
		"*:1234",
	}

	for i, d := range testData {
		_, err := util.CanonicalIPandPort("", d)
		assert.Equal(t, fault.InvalidIPAddress, err, "item: %d  %q", i, d)
	}
}

func TestCanonicalPort(t *testing.T) {
	testData := []string{
		"127.0.0.1:0",
		"127.0.0.1:65536",
		"127.0.0.1:-1",
		"127.0.0.1:x",
	}

	for i, d := range testData {
		_, err := util.CanonicalIPandPort("", d)
		assert.Equal(t, fault.InvalidPortNumber, err, "item: %d  %q", i, d)
	}
}

func TestConnectionIPv6(t *testing.T) {
	c, err := util.NewConnection("[::1]:2139")
	assert.Nil(t, err)
	s, v6 := c.CanonicalIPandPort("tcp://")
	assert.True(t, v6)
	assert.Equal(t, "tcp://[::1]:2139", s)

	_, err = util.NewConnections(nil)
	assert.Equal(t, fault.InvalidCount, err)
}
