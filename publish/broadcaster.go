// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/json"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/lockerd/messagebus"
	"github.com/bitmark-inc/lockerd/util"
	"github.com/bitmark-inc/lockerd/zmqutil"
)

const (
	broadcasterZapDomain = "broadcaster"
)

type broadcaster struct {
	log     *logger.L
	events  <-chan messagebus.Message
	socket4 *zmq.Socket
	socket6 *zmq.Socket
}

// initialise the broadcaster
func (brdc *broadcaster) initialise(log *logger.L, privateKey []byte, publicKey []byte, broadcast []string, events <-chan messagebus.Message) error {

	brdc.log = log
	brdc.events = events

	log.Info("initialising…")

	c, err := util.NewConnections(broadcast)
	if nil != err {
		log.Errorf("ip and port error: %s", err)
		return err
	}

	brdc.socket4, brdc.socket6, err = zmqutil.NewBind(log, zmq.PUB, broadcasterZapDomain, privateKey, publicKey, c)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return err
	}

	return nil
}

// Run - forward events until shutdown or the bus is released
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {

	log := brdc.log

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item, ok := <-brdc.events:
			if !ok {
				break loop
			}
			parts, err := encode(item)
			if nil != err {
				log.Errorf("encode: %q  error: %s", item.Command, err)
				continue loop
			}
			log.Debugf("sending: %s  data: %s", parts[0], parts[1])
			brdc.send(brdc.socket4, parts)
			brdc.send(brdc.socket6, parts)
		}
	}

	if nil != brdc.socket4 {
		_ = brdc.socket4.Close()
	}
	if nil != brdc.socket6 {
		_ = brdc.socket6.Close()
	}
	log.Info("stopped")
}

// encode - the command followed by the JSON item
func encode(item messagebus.Message) ([][]byte, error) {
	data, err := json.Marshal(item.Item)
	if nil != err {
		return nil, err
	}
	return [][]byte{[]byte(item.Command), data}, nil
}

// a slow subscriber loses messages rather than blocking the ledger
func (brdc *broadcaster) send(socket *zmq.Socket, parts [][]byte) {
	if nil == socket {
		return
	}

	_, err := socket.SendMessageDontwait(parts)
	if nil != err {
		brdc.log.Warnf("send error: %s", err)
	}
}
