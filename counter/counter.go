// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - atomic counters for connections and operations
package counter

import (
	"sort"
	"sync/atomic"
)

// Counter - type to denote a counter that can be synchronously increments or decremented
// just a 64 bit unsigned integer
type Counter uint64

// Increment - add 1 to a counter, returns new value
func (ic *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(ic), 1)
}

// Decrement - subtract 1 from a counter, returns new value
func (ic *Counter) Decrement() uint64 {
	return atomic.AddUint64((*uint64)(ic), ^uint64(0))
}

// Uint64 - returns current value
func (ic *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(ic))
}

// IsZero - check if zero
func (ic *Counter) IsZero() bool {
	return 0 == ic.Uint64()
}

// Set - a fixed set of named counters
//
// the names are fixed at creation so no lock is needed
type Set struct {
	counters map[string]*Counter
}

// NewSet - create a counter for each name
func NewSet(names ...string) *Set {
	s := &Set{
		counters: make(map[string]*Counter, len(names)),
	}
	for _, name := range names {
		s.counters[name] = new(Counter)
	}
	return s
}

// Increment - add 1 to a named counter, unknown names are ignored
func (s *Set) Increment(name string) {
	if c, ok := s.counters[name]; ok {
		c.Increment()
	}
}

// Get - current value of a named counter
func (s *Set) Get(name string) uint64 {
	if c, ok := s.counters[name]; ok {
		return c.Uint64()
	}
	return 0
}

// Names - sorted counter names
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.counters))
	for name := range s.counters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot - all current values
func (s *Set) Snapshot() map[string]uint64 {
	values := make(map[string]uint64, len(s.counters))
	for name, c := range s.counters {
		values[name] = c.Uint64()
	}
	return values
}
