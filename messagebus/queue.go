// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"
	"sync/atomic"
)

// internal constants
const (
	defaultQueueSize = 1000
)

// Message - a command and its item
type Message struct {
	Command string
	Item    interface{}
}

// BroadcastQueue - deliver each message to all listeners
type BroadcastQueue struct {
	dropped uint64 // first for 64 bit alignment

	sync.RWMutex
	listeners []chan Message
}

type busses struct {
	Events *BroadcastQueue
}

// Bus - all available message queues
var Bus = busses{
	Events: new(BroadcastQueue),
}

// Send - queue a message for every listener
//
// returns the number of listeners that missed it
func (queue *BroadcastQueue) Send(command string, item interface{}) int {
	m := Message{
		Command: command,
		Item:    item,
	}

	queue.RLock()
	defer queue.RUnlock()

	missed := 0
	for _, c := range queue.listeners {
		select {
		case c <- m:
		default:
			missed += 1
		}
	}
	if missed > 0 {
		atomic.AddUint64(&queue.dropped, uint64(missed))
	}
	return missed
}

// Chan - add a listener, size <= 0 gives the default queue size
func (queue *BroadcastQueue) Chan(size int) <-chan Message {
	if size <= 0 {
		size = defaultQueueSize
	}
	c := make(chan Message, size)

	queue.Lock()
	queue.listeners = append(queue.listeners, c)
	queue.Unlock()

	return c
}

// Unsubscribe - close and remove one listener
func (queue *BroadcastQueue) Unsubscribe(listener <-chan Message) {
	queue.Lock()
	defer queue.Unlock()

	for i, c := range queue.listeners {
		if listener == (<-chan Message)(c) {
			close(c)
			queue.listeners = append(queue.listeners[:i], queue.listeners[i+1:]...)
			return
		}
	}
}

// Release - close and remove all listeners
func (queue *BroadcastQueue) Release() {
	queue.Lock()
	defer queue.Unlock()

	for _, c := range queue.listeners {
		close(c)
	}
	queue.listeners = nil
}

// Dropped - total number of messages missed by listeners
func (queue *BroadcastQueue) Dropped() uint64 {
	return atomic.LoadUint64(&queue.dropped)
}
