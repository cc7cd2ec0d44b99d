// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"syscall"
	"time"

	zmq "github.com/pebbe/zmq4"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/lockerd/zmqutil"
)

const (
	watchTimeout = 2 * time.Minute
)

// print published ledger events until the count is reached
func runWatch(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	broadcast, err := requiredString(c, "broadcast")
	if nil != err {
		return err
	}

	serverPublicKey := []byte(nil)
	if keyFile := c.String("public-key"); "" != keyFile {
		serverPublicKey, err = zmqutil.ReadPublicKeyFile(keyFile)
		if nil != err {
			return err
		}
	}

	socket, err := zmqutil.NewSubscriber(broadcast, serverPublicKey, watchTimeout)
	if nil != err {
		return err
	}
	defer socket.Close()

	count := c.Int("count")
	for n := 0; 0 == count || n < count; n += 1 {
		data, err := socket.RecvMessageBytes(0)
		if nil != err {
			if zmq.Errno(syscall.EAGAIN) == zmq.AsErrno(err) {
				if m.verbose {
					fmt.Fprintf(m.e, "no events for: %s\n", watchTimeout)
				}
				continue
			}
			return err
		}
		if len(data) < 2 {
			continue
		}

		var item interface{}
		if err := json.Unmarshal(data[1], &item); nil != err {
			return err
		}
		event := struct {
			Command string      `json:"command"`
			Item    interface{} `json:"item"`
		}{
			Command: string(data[0]),
			Item:    item,
		}
		if err := printJson(m.w, event); nil != err {
			return err
		}
	}
	return nil
}
