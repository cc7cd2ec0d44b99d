// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/lockerd/counter"
)

// test incrementing/decrementing a counter
func TestCounter(t *testing.T) {
	var c1 counter.Counter

	assert.True(t, c1.IsZero(), "counter is not zero at start")

	for i := 0; i < 5; i += 1 {
		c1.Increment()
	}
	assert.Equal(t, uint64(5), c1.Uint64(), "counter after incrementing")

	for i := 0; i < 5; i += 1 {
		c1.Decrement()
	}
	assert.True(t, c1.IsZero(), "counter did not return to zero")

	// check against underflow, i.e. twos complement -1
	c1.Decrement()
	assert.Equal(t, ^uint64(0), c1.Uint64(), "counter did not underflow")
}

func TestSet(t *testing.T) {
	s := counter.NewSet("withdraw", "create")

	var wg sync.WaitGroup
	for i := 0; i < 10; i += 1 {
		wg.Add(1)
		go func() {
			s.Increment("create")
			s.Increment("unknown")
			wg.Done()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(10), s.Get("create"), "create count")
	assert.Equal(t, uint64(0), s.Get("withdraw"), "withdraw count")
	assert.Equal(t, uint64(0), s.Get("unknown"), "unknown count")
	assert.Equal(t, []string{"create", "withdraw"}, s.Names(), "names")
	assert.Equal(t, map[string]uint64{"create": 10, "withdraw": 0}, s.Snapshot(), "snapshot")
}
