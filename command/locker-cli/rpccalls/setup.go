// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"crypto/tls"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"github.com/bitmark-inc/lockerd/account"
	"github.com/bitmark-inc/lockerd/fault"
)

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a lockerd
func NewClient(connect string, verbose bool, handle io.Writer) (*Client, error) {

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if err != nil {
		return nil, err
	}

	return NewClientFromConn(conn, verbose, handle), nil
}

// NewClientFromConn - use an already open connection
func NewClientFromConn(conn net.Conn, verbose bool, handle io.Writer) *Client {
	return &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
	}
}

// Close - shutdown the lockerd connection
func (c *Client) Close() {
	c.client.Close()
	c.conn.Close()
}

// call with optional request tracing
func (c *Client) call(method string, arguments interface{}, reply interface{}) error {
	_ = c.printJson(method+" Request", arguments)
	if err := c.client.Call(method, arguments, reply); nil != err {
		return err
	}
	return c.printJson(method+" Reply", reply)
}

// sign the header of arguments with key then call
func (c *Client) signedCall(key *account.KeyPair, method string, request *account.Request, arguments interface{}, reply interface{}) error {
	if nil == key {
		return fault.MissingParameters
	}
	if err := request.Sign(key, method, arguments, time.Now()); nil != err {
		return err
	}
	return c.call(method, arguments, reply)
}
