// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/bitmark-inc/pegd/fault"
)

// for encoding the RPC arguments
type rpcArguments struct {
	Id     uint64        `json:"id"`
	Method string        `json:"method"`
	Params []interface{} `json:"params"`
}

// the RPC error response
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// for decoding the RPC reply
type rpcReply struct {
	Id     uint64      `json:"id"`
	Result interface{} `json:"result"`
	Error  *rpcError   `json:"error"`
}

// Call - issue one positional parameter RPC and decode its result
//
// a failed transport or unparseable reply is an error; the caller
// treats it as no data this round and retries later
func (c *Client) Call(method string, params []interface{}, reply interface{}) error {
	c.Lock()
	defer c.Unlock()

	if nil == params {
		params = []interface{}{}
	}

	c.id += 1

	arguments := rpcArguments{
		Id:     c.id,
		Method: method,
		Params: params,
	}
	response := rpcReply{
		Result: reply,
	}
	err := c.rpc(&arguments, &response)
	if nil != err {
		c.log.Tracef("rpc returned error: %s", err)
		return err
	}

	if nil != response.Error {
		return fault.ProcessError(c.symbol + " RPC error: " + response.Error.Message)
	}
	return nil
}

// basic RPC - only use from Call while locked
// because the HTTP RPC cannot interleave calls and responses
func (c *Client) rpc(arguments *rpcArguments, reply *rpcReply) error {

	s, err := json.Marshal(arguments)
	if nil != err {
		return err
	}

	c.log.Tracef("rpc send: %s", s)

	postData := bytes.NewBuffer(s)

	request, err := http.NewRequest("POST", c.url, postData)
	if nil != err {
		return err
	}
	request.SetBasicAuth(c.username, c.password)

	response, err := c.client.Do(request)
	if nil != err {
		return err
	}
	defer response.Body.Close()
	body, err := ioutil.ReadAll(response.Body)
	if nil != err {
		return err
	}

	c.log.Tracef("rpc response body: %s", body)

	return json.Unmarshal(body, reply)
}
