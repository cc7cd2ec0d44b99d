// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"time"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/lockerd/util"
)

const (
	heartbeatInterval = 15 * time.Second
	heartbeatTimeout  = 60 * time.Second
	heartbeatTTL      = 120 * time.Second
)

// NewBind - bind a list of addresses
//
// creates up to 2 sockets for separate IPv4 and IPv6 traffic, an empty
// private key gives sockets without curve encryption
func NewBind(log *logger.L, socketType zmq.Type, zapDomain string, privateKey []byte, publicKey []byte, listen []*util.Connection) (*zmq.Socket, *zmq.Socket, error) {

	socket4 := (*zmq.Socket)(nil) // IPv4 traffic
	socket6 := (*zmq.Socket)(nil) // IPv6 traffic

	err := error(nil)

	for i, address := range listen {
		bindTo, v6 := address.CanonicalIPandPort("tcp://")
		if v6 {
			if nil == socket6 {
				socket6, err = NewServerSocket(socketType, zapDomain, privateKey, publicKey, v6)
			}
		} else {
			if nil == socket4 {
				socket4, err = NewServerSocket(socketType, zapDomain, privateKey, publicKey, v6)
			}
		}
		if nil != err {
			goto fail
		}

		if v6 {
			err = socket6.Bind(bindTo)
		} else {
			err = socket4.Bind(bindTo)
		}
		if nil != err {
			log.Errorf("cannot bind[%d]: %q  error: %s", i, bindTo, err)
			goto fail
		}
		log.Infof("bind[%d]: %q  IPv6: %t", i, bindTo, v6)
	}
	return socket4, socket6, nil

fail:
	if nil != socket4 {
		_ = socket4.Close()
	}
	if nil != socket6 {
		_ = socket6.Close()
	}
	return nil, nil, err
}

// NewServerSocket - create a socket suitable for a server side connection
func NewServerSocket(socketType zmq.Type, zapDomain string, privateKey []byte, publicKey []byte, v6 bool) (*zmq.Socket, error) {

	socket, err := zmq.NewSocket(socketType)
	if nil != err {
		return nil, err
	}

	if 0 != len(privateKey) {
		// allow any client to connect
		zmq.AuthCurveAdd(zapDomain, zmq.CURVE_ALLOW_ANY)

		_ = socket.SetCurveServer(1)
		_ = socket.SetCurveSecretkey(string(privateKey))
		_ = socket.SetZapDomain(zapDomain)
		_ = socket.SetIdentity(string(publicKey))
	}

	_ = socket.SetIpv6(v6)
	_ = socket.SetLinger(0)

	_ = socket.SetHeartbeatIvl(heartbeatInterval)
	_ = socket.SetHeartbeatTimeout(heartbeatTimeout)
	_ = socket.SetHeartbeatTtl(heartbeatTTL)

	return socket, nil
}

// NewSubscriber - connect a SUB socket receiving every topic
//
// a non-empty server key enables curve encryption with a fresh client
// keypair
func NewSubscriber(connect string, serverPublicKey []byte, timeout time.Duration) (*zmq.Socket, error) {
	c, err := util.NewConnection(connect)
	if nil != err {
		return nil, err
	}
	address, v6 := c.CanonicalIPandPort("tcp://")

	socket, err := zmq.NewSocket(zmq.SUB)
	if nil != err {
		return nil, err
	}

	if 0 != len(serverPublicKey) {
		public, private, err := zmq.NewCurveKeypair()
		if nil != err {
			_ = socket.Close()
			return nil, err
		}
		_ = socket.SetCurveServerkey(string(serverPublicKey))
		_ = socket.SetCurvePublickey(public)
		_ = socket.SetCurveSecretkey(private)
	}

	_ = socket.SetIpv6(v6)
	_ = socket.SetLinger(0)
	if timeout > 0 {
		_ = socket.SetRcvtimeo(timeout)
	}

	err = socket.SetSubscribe("")
	if nil == err {
		err = socket.Connect(address)
	}
	if nil != err {
		_ = socket.Close()
		return nil, err
	}
	return socket, nil
}
