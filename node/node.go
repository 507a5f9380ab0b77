// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pegd/fault"
)

// Configuration - one coin's access block from the configuration file
type Configuration struct {
	Symbol   string `gluamapper:"symbol" json:"symbol"`
	URL      string `gluamapper:"url" json:"url"`
	Username string `gluamapper:"username" json:"username"`
	Password string `gluamapper:"password" json:"password"`
	Mode     string `gluamapper:"mode" json:"mode"`
}

// ScriptPubKey - output script part of a decoded transaction document
type ScriptPubKey struct {
	Hex       string   `json:"hex"`
	Addresses []string `json:"addresses"`
}

// Vout - one output of a decoded transaction document
type Vout struct {
	Value        json.RawMessage `json:"value"`
	N            int             `json:"n"`
	ScriptPubKey ScriptPubKey    `json:"scriptPubKey"`
}

// Transaction - decoded transaction document
type Transaction struct {
	TxID string `json:"txid"`
	Vout []Vout `json:"vout"`
}

// Block - parsed block document
type Block struct {
	Hash              string   `json:"hash"`
	Height            uint64   `json:"height"`
	Time              int64    `json:"time"`
	Tx                []string `json:"tx"`
	PreviousBlockHash string   `json:"previousblockhash"`
}

// Unspent - one listunspent entry
type Unspent struct {
	TxID          string          `json:"txid"`
	Vout          int             `json:"vout"`
	Address       string          `json:"address"`
	ScriptPubKey  string          `json:"scriptPubKey"`
	Amount        json.RawMessage `json:"amount"`
	Confirmations uint64          `json:"confirmations"`
	Spendable     bool            `json:"spendable"`
}

// InputMeta - prevout data needed to sign one input
type InputMeta struct {
	TxID         string `json:"txid"`
	Vout         int    `json:"vout"`
	ScriptPubKey string `json:"scriptPubKey"`
}

// Embedded - read and broadcast access to a locally embedded node
//
// only consulted in the embedded modes
type Embedded interface {
	BestBlockHash() (string, error)
	Height() (uint64, error)
	BlockHash(height uint64) (string, error)
	Block(hash string) (*Block, error)
	Transaction(txid string) (*Transaction, error)
	ListUnspent(address string) ([]Unspent, error)
	SignRawTransaction(rawTx string, vins []InputMeta, privateKeys []string) (string, bool, error)
	SendRawTransaction(signedTx string) (string, error)
}

// Keystore - resolve the spending key for an address
//
// the wallet is an external collaborator; keys never pass through
// any other part of this daemon
type Keystore interface {
	PrivateKeyWIF(address string) (string, bool)
}

// Client - handle to one coin's chain
type Client struct {
	sync.Mutex // the HTTP RPC cannot interleave calls and responses

	symbol      string
	mode        Mode
	addressType byte

	client   *http.Client
	url      string
	username string
	password string
	id       uint64

	embedded Embedded
	keystore Keystore

	log *logger.L
}

// New - create a client for one coin
//
// the mode is resolved once here and is stable for the client's
// lifetime
func New(configuration *Configuration, embedded Embedded, keystore Keystore) (*Client, error) {

	if "" == configuration.Symbol {
		return nil, fault.ErrInvalidCoinSymbol
	}

	mode, err := ParseMode(configuration.Mode)
	if nil != err {
		return nil, err
	}

	if RemoteOnly == mode && "" == configuration.URL {
		return nil, fault.ErrMissingParameters
	}
	if mode.IsEmbedded() && nil == embedded {
		return nil, fault.ErrNoEmbeddedNode
	}

	c := &Client{
		symbol:      configuration.Symbol,
		mode:        mode,
		addressType: 60, // peg chain p2pkh version
		client:      &http.Client{},
		url:         configuration.URL,
		username:    configuration.Username,
		password:    configuration.Password,
		embedded:    embedded,
		keystore:    keystore,
		log:         logger.New("node-" + configuration.Symbol),
	}
	c.log.Infof("mode: %s  url: %q", mode, configuration.URL)

	return c, nil
}

// Symbol - the coin this client serves
func (c *Client) Symbol() string {
	return c.symbol
}

// Mode - the resolved access mode
func (c *Client) Mode() Mode {
	return c.mode
}
