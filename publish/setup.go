// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - fan out newly recorded peg requests
//
// every request the scanners add to the ledger is announced on a zmq
// PUB socket as a topic frame followed by a JSON frame; the
// downstream notary consensus layer subscribes to these
//
// with no bind address configured the package initialises to a
// disabled state and announcements are discarded
package publish

import (
	"encoding/json"
	"sync"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pegd/fault"
	"github.com/bitmark-inc/pegd/ledger"
)

// WithdrawTopic - topic frame preceding every announcement
const WithdrawTopic = "pax.withdraw"

// Configuration - publishing block from the configuration file
type Configuration struct {
	Bind string `gluamapper:"bind" json:"bind"`
}

// globals for background process
type publishData struct {
	sync.Mutex // PUB sockets are not safe for concurrent sends

	log    *logger.L
	socket *zmq.Socket

	// set once during initialise
	initialised bool
}

// global data
var globalData publishData

// Initialise - bind the announcement socket
func Initialise(configuration *Configuration) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("publish")
	globalData.log.Info("starting…")

	if "" == configuration.Bind {
		globalData.log.Info("no bind address, announcements disabled")
		globalData.initialised = true
		return nil
	}

	socket, err := zmq.NewSocket(zmq.PUB)
	if nil != err {
		return err
	}

	if err := socket.Bind(configuration.Bind); nil != err {
		socket.Close()
		globalData.log.Errorf("bind: %q  error: %s", configuration.Bind, err)
		return err
	}
	globalData.log.Infof("publishing on: %q", configuration.Bind)

	globalData.socket = socket
	globalData.initialised = true
	return nil
}

// Finalise - close the announcement socket
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	if nil != globalData.socket {
		globalData.socket.Close()
		globalData.socket = nil
	}
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

// Announce - publish one ledger entry
//
// a send failure is logged and dropped; announcements carry no
// delivery guarantee
func Announce(entry ledger.PegTransaction) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised || nil == globalData.socket {
		return
	}

	data, err := json.Marshal(entry)
	if nil != err {
		globalData.log.Errorf("marshal: %s  error: %s", entry.TxID, err)
		return
	}

	if _, err := globalData.socket.SendMessage(WithdrawTopic, data); nil != err {
		globalData.log.Errorf("send: %s  error: %s", entry.TxID, err)
		return
	}
	globalData.log.Debugf("announced: %s", entry.TxID)
}

// Hook - adapter so scanners can announce without importing this
// package's globals directly
type Hook struct{}

// Announce - forward one entry to the socket
func (Hook) Announce(entry ledger.PegTransaction) {
	Announce(entry)
}
