// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pegd/fault"
	"github.com/bitmark-inc/pegd/peg"
	"github.com/bitmark-inc/pegd/satoshi"
	"github.com/bitmark-inc/pegd/storage"
)

// PegTransaction - one observed request
type PegTransaction struct {
	TxID        peg.TxID // transaction that carried the request
	Vout        int      // output index of the tagged script
	Symbol      string   // fiat unit
	CoinAddress string   // refund/destination address on the fiat chain
	Fiatoshis   int64    // fiat amount, negative for a short
	Peggedoshis uint64   // pegged unit equivalent at the priced height
	Short       bool     // recorded sign of the request
	Hash160     [20]byte // address hash carried in the pseudo-key
	Height      uint64   // peg chain height of first sighting
	Marked      uint64   // zero while pending, else settlement or void height
}

// globals for background process
type globalDataType struct {
	sync.RWMutex // to allow locking

	log     *logger.L
	entries map[peg.TxID]*PegTransaction

	// set once during initialise
	initialised bool
}

var globalData globalDataType

// Initialise - load any persisted entries and get ready for updates
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("ledger")
	globalData.log.Info("starting…")

	globalData.entries = make(map[peg.TxID]*PegTransaction)

	if err := loadFromStorage(); nil != err {
		return err
	}

	globalData.initialised = true
	return nil
}

// Finalise - drop the in-memory ledger
func Finalise() error {
	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.Lock()
	globalData.entries = nil
	globalData.initialised = false
	globalData.Unlock()

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

// fill the map from the persisted pool, if one is open
func loadFromStorage() error {
	if nil == storage.Pool.Pegs {
		return nil
	}

	cursor := storage.Pool.Pegs.NewFetchCursor()
	for {
		elements, err := cursor.Fetch(100)
		if nil != err {
			return err
		}
		if 0 == len(elements) {
			break
		}
		for _, e := range elements {
			entry, err := unpackRecord(e.Key, e.Value)
			if nil != err {
				globalData.log.Errorf("discard bad record: %x  error: %s", e.Key, err)
				continue
			}
			globalData.entries[entry.TxID] = entry
		}
	}
	globalData.log.Infof("loaded: %d entries", len(globalData.entries))
	return nil
}

// write one entry through to the persisted pool, if one is open
func save(entry *PegTransaction) {
	if nil == storage.Pool.Pegs {
		return
	}
	storage.Pool.Pegs.Put(entry.TxID[:], packRecord(entry))
}

// Find - snapshot of one entry
func Find(txID peg.TxID) (PegTransaction, bool) {
	globalData.RLock()
	defer globalData.RUnlock()

	entry, ok := globalData.entries[txID]
	if !ok {
		return PegTransaction{}, false
	}
	return *entry, true
}

// Mark - set the settlement height of a request
//
// the mark value is set unconditionally; zero returns a settled entry
// to pending; an unseen transaction creates a bare marked entry so
// that a later sighting of the request itself cannot double issue
func Mark(txID peg.TxID, vout int, markValue uint64) PegTransaction {
	globalData.Lock()
	defer globalData.Unlock()

	entry, ok := globalData.entries[txID]
	if !ok {
		entry = &PegTransaction{
			TxID: txID,
			Vout: vout,
		}
		globalData.entries[txID] = entry
	}
	entry.Marked = markValue
	save(entry)
	globalData.log.Debugf("mark: %s:%d → %d", txID, vout, markValue)
	return *entry
}

// Withdraw - record a newly observed request
//
// an empty coin address is a pure mark: the sighting is recorded so
// the transaction is never processed again, but carries no amounts
func Withdraw(coinAddress string, fiatoshis int64, short bool, symbol string, peggedoshis uint64, hash160 [20]byte, txID peg.TxID, vout int, height uint64) {
	globalData.Lock()
	defer globalData.Unlock()

	entry, ok := globalData.entries[txID]
	if !ok {
		entry = &PegTransaction{}
		globalData.entries[txID] = entry
	}

	// a replace keeps the settlement height of the old record
	marked := entry.Marked

	if "" == coinAddress {
		entry.TxID = txID
		entry.Vout = vout
		entry.Height = height
		entry.Marked = height
		save(entry)
		globalData.log.Infof("mark withdraw: %s:%d at height: %d", txID, vout, height)
		return
	}

	*entry = PegTransaction{
		TxID:        txID,
		Vout:        vout,
		Symbol:      symbol,
		CoinAddress: coinAddress,
		Fiatoshis:   fiatoshis,
		Peggedoshis: peggedoshis,
		Short:       short,
		Hash160:     hash160,
		Height:      height,
		Marked:      marked,
	}
	save(entry)

	state := "add"
	if 0 != marked {
		state = "replace marked"
	}
	globalData.log.Infof("%s withdraw: %s %s to: %s txid: %s pegged: %s at height: %d",
		state, symbol, satoshi.String(magnitude(fiatoshis)), coinAddress, txID, satoshi.String(peggedoshis), height)
}

// Total - sum of all pending (unmarked) fiat magnitudes
func Total() uint64 {
	globalData.RLock()
	defer globalData.RUnlock()

	total := uint64(0)
	for _, entry := range globalData.entries {
		if 0 != entry.Marked {
			continue
		}
		total += magnitude(entry.Fiatoshis)
	}
	return total
}

// Pending - snapshot of all unmarked entries
func Pending() []PegTransaction {
	globalData.RLock()
	defer globalData.RUnlock()

	pending := make([]PegTransaction, 0, len(globalData.entries))
	for _, entry := range globalData.entries {
		if 0 != entry.Marked {
			continue
		}
		pending = append(pending, *entry)
	}
	return pending
}

func magnitude(fiatoshis int64) uint64 {
	if fiatoshis < 0 {
		return uint64(-fiatoshis)
	}
	return uint64(fiatoshis)
}
