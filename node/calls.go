// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"encoding/hex"
	"strconv"

	"github.com/bitmark-inc/pegd/fault"
	"github.com/bitmark-inc/pegd/peg"
)

// BestBlockHash - hash of the best block, or error if unknown
func (c *Client) BestBlockHash() (string, error) {
	if c.mode.IsEmbedded() {
		return c.embedded.BestBlockHash()
	}

	var hash string
	if err := c.Call("getbestblockhash", nil, &hash); nil != err {
		return "", err
	}
	if hex.EncodedLen(32) != len(hash) {
		return "", fault.ErrInvalidStructure
	}
	return hash, nil
}

// Height - current chain height from getinfo
func (c *Client) Height() (uint64, error) {
	if c.mode.IsEmbedded() {
		return c.embedded.Height()
	}

	var reply struct {
		Blocks uint64 `json:"blocks"`
	}
	if err := c.Call("getinfo", nil, &reply); nil != err {
		return 0, err
	}
	return reply.Blocks, nil
}

// BlockHash - hash of the block at a height
func (c *Client) BlockHash(height uint64) (string, error) {
	if c.mode.IsEmbedded() {
		return c.embedded.BlockHash(height)
	}

	var hash string
	if err := c.Call("getblockhash", []interface{}{height}, &hash); nil != err {
		return "", err
	}
	if hex.EncodedLen(32) != len(hash) {
		return "", fault.ErrInvalidStructure
	}
	return hash, nil
}

// GetBlock - parsed block document for a hash
func (c *Client) GetBlock(hash string) (*Block, error) {
	if c.mode.IsEmbedded() {
		return c.embedded.Block(hash)
	}

	var block Block
	if err := c.Call("getblock", []interface{}{hash}, &block); nil != err {
		return nil, err
	}
	return &block, nil
}

// GetTransaction - decoded transaction document for a txid
func (c *Client) GetTransaction(txid string) (*Transaction, error) {
	if c.mode.IsEmbedded() {
		return c.embedded.Transaction(txid)
	}

	var tx Transaction
	if err := c.Call("getrawtransaction", []interface{}{txid, 1}, &tx); nil != err {
		return nil, err
	}
	return &tx, nil
}

// DecodeRawTransaction - decode an existing binary transaction
func (c *Client) DecodeRawTransaction(rawTx string) (*Transaction, error) {

	var tx Transaction
	if err := c.Call("decoderawtransaction", []interface{}{rawTx}, &tx); nil != err {
		return nil, err
	}
	return &tx, nil
}

// ListUnspent - unspent outputs at one address
func (c *Client) ListUnspent(address string) ([]Unspent, error) {
	if c.mode.IsEmbedded() {
		return c.embedded.ListUnspent(address)
	}

	var unspent []Unspent
	err := c.Call("listunspent", []interface{}{0, 99999999, []string{address}}, &unspent)
	if nil != err {
		return nil, err
	}
	return unspent, nil
}

// SignRawTransaction - sign a raw transaction
//
// remote-only delegates signing entirely to the remote node's own
// wallet; the embedded modes resolve each input's spending key
// through the keystore collaborator first
func (c *Client) SignRawTransaction(rawTx string, vins []InputMeta) (string, bool, error) {

	if !c.mode.IsEmbedded() {
		var reply struct {
			Hex      string `json:"hex"`
			Complete bool   `json:"complete"`
		}
		err := c.Call("signrawtransaction", []interface{}{rawTx, vins}, &reply)
		if nil != err {
			return "", false, err
		}
		return reply.Hex, reply.Complete, nil
	}

	// resolve a key per input; an unknown input contributes an empty
	// key and the embedded node reports an incomplete signature
	privateKeys := make([]string, len(vins))
	for i, vin := range vins {
		script, err := hex.DecodeString(vin.ScriptPubKey)
		if nil != err {
			continue
		}
		address, ok := peg.ScriptAddress(c.addressType, script)
		if !ok {
			continue
		}
		if nil == c.keystore {
			continue
		}
		if wif, ok := c.keystore.PrivateKeyWIF(address); ok {
			privateKeys[i] = wif
		}
	}

	return c.embedded.SignRawTransaction(rawTx, vins, privateKeys)
}

// SendRawTransaction - broadcast a signed transaction, returning the
// resulting transaction id
func (c *Client) SendRawTransaction(signedTx string) (string, error) {
	if c.mode.IsEmbedded() {
		return c.embedded.SendRawTransaction(signedTx)
	}

	var txid string
	if err := c.Call("sendrawtransaction", []interface{}{signedTx}, &txid); nil != err {
		return "", err
	}
	return txid, nil
}

// heightString - the peg daemon expects heights as strings in some
// calls
func heightString(height uint64) string {
	return strconv.FormatUint(height, 10)
}
