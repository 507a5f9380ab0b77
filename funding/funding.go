// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package funding - notary funding utxo watcher
//
// settlement transactions spend exact denomination outputs held at
// notary addresses; the watcher reports whether an address currently
// has one and picks among candidates at random so that concurrent
// notaries drawing from a shared pool do not all pick the same output
package funding

import (
	"encoding/hex"
	"math/rand"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pegd/node"
	"github.com/bitmark-inc/pegd/peg"
	"github.com/bitmark-inc/pegd/satoshi"
)

// a funding output is always the 35 byte pay-to-pubkey form
const fundingScriptBytes = 35

// Watcher - periodic funding check over a set of notary addresses
type Watcher struct {
	coin      *node.Client
	addresses []string
	rnd       *rand.Rand
	log       *logger.L
}

// New - create a watcher
//
// the random source is injectable so selection is testable
func New(coin *node.Client, addresses []string, rnd *rand.Rand) *Watcher {
	return &Watcher{
		coin:      coin,
		addresses: addresses,
		rnd:       rnd,
		log:       logger.New("funding-" + coin.Symbol()),
	}
}

// HaveUTXO - find a spendable funding output at an address
//
// returns the number of eligible candidates and one chosen at random
// among them; vout is -1 when none qualify
func (w *Watcher) HaveUTXO(address string) (count int, txID peg.TxID, vout int, err error) {

	vout = -1

	unspent, err := w.coin.ListUnspent(address)
	if nil != err {
		return 0, txID, vout, err
	}

	n := len(unspent)
	for _, u := range unspent {

		if peg.FundingDenomination != satoshi.FromByteString(u.Amount) {
			continue
		}
		if address != u.Address {
			continue
		}
		if hex.EncodedLen(fundingScriptBytes) != len(u.ScriptPubKey) {
			continue
		}

		candidate, err := peg.TxIDFromHexString(u.TxID)
		if nil != err || candidate.IsZero() || u.Vout < 0 {
			continue
		}

		// keep the first, then replace with decreasing probability
		// so every candidate has a chance of selection
		if vout < 0 || 0 == w.rnd.Intn(n/2+1) {
			txID = candidate
			vout = u.Vout
		}
		count += 1
	}

	if 0 == count {
		w.log.Debugf("no funding utxo at: %s", address)
	}
	return count, txID, vout, nil
}
