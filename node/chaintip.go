// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"github.com/bitmark-inc/pegd/peg"
)

// ChainTip - point in time snapshot of the best block
type ChainTip struct {
	Hash   string
	Height uint64
	Time   int64
	TxIDs  []peg.TxID
}

// Tip - snapshot the current best block
//
// the caller bounds how many transaction ids are collected; excess
// ids in the block are dropped, not an error
func (c *Client) Tip(maximumTx int) (*ChainTip, error) {

	hash, err := c.BestBlockHash()
	if nil != err {
		return nil, err
	}

	block, err := c.GetBlock(hash)
	if nil != err {
		return nil, err
	}

	tip := &ChainTip{
		Hash:   hash,
		Height: block.Height,
		Time:   block.Time,
		TxIDs:  make([]peg.TxID, 0, maximumTx),
	}

	for i, s := range block.Tx {
		if i >= maximumTx {
			break
		}
		txid, err := peg.TxIDFromHexString(s)
		if nil != err {
			c.log.Errorf("tip tx: %d invalid txid: %q", i, s)
			continue
		}
		tip.TxIDs = append(tip.TxIDs, txid)
	}

	return tip, nil
}
