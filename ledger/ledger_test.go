// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pegd/ledger"
	"github.com/bitmark-inc/pegd/peg"
)

const dir = "testing"

func TestMain(m *testing.M) {
	_ = os.Mkdir(dir, 0700)
	logging := logger.Configuration{
		Directory: dir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	err := ledger.Initialise()
	if nil != err {
		logger.Panicf("ledger initialise error: %s", err)
	}

	rc := m.Run()

	ledger.Finalise()
	logger.Finalise()
	os.RemoveAll(dir)
	os.Exit(rc)
}

func makeTxID(fill byte) peg.TxID {
	txID := peg.TxID{}
	for i := range txID {
		txID[i] = fill
	}
	return txID
}

var testHash160 = [20]byte{
	0xf1, 0xdc, 0xe4, 0x18, 0x2f, 0xce, 0x87, 0x57, 0x48, 0xc4,
	0x98, 0x6b, 0x24, 0x0f, 0xf7, 0xd7, 0xbc, 0x3f, 0xff, 0xb0,
}

func TestWithdrawAndFind(t *testing.T) {

	txID := makeTxID(0x01)

	_, found := ledger.Find(txID)
	assert.False(t, found, "unexpected entry")

	ledger.Withdraw("RXL3YXG2ceaB6C5hfJcN4fvmLH2C34knhA", 500000000, false, "EUR", 250000000, testHash160, txID, 1, 777)

	entry, found := ledger.Find(txID)
	assert.True(t, found, "entry missing")
	assert.Equal(t, "EUR", entry.Symbol, "symbol")
	assert.Equal(t, int64(500000000), entry.Fiatoshis, "fiatoshis")
	assert.Equal(t, uint64(250000000), entry.Peggedoshis, "peggedoshis")
	assert.Equal(t, uint64(777), entry.Height, "height")
	assert.Zero(t, entry.Marked, "new entry must be pending")
}

// an empty coin address records the sighting without any amounts
func TestWithdrawPureMark(t *testing.T) {

	txID := makeTxID(0x02)

	ledger.Withdraw("", 0, false, "USD", 0, [20]byte{}, txID, 2, 888)

	entry, found := ledger.Find(txID)
	assert.True(t, found, "entry missing")
	assert.Equal(t, uint64(888), entry.Marked, "pure mark carries the height")
	assert.Equal(t, int64(0), entry.Fiatoshis, "no amount")
}

// marking an unseen transaction creates a bare marked entry
func TestMarkUnseen(t *testing.T) {

	txID := makeTxID(0x03)

	snapshot := ledger.Mark(txID, 0, 950)

	entry, found := ledger.Find(txID)
	assert.True(t, found, "entry missing")
	assert.Equal(t, uint64(950), entry.Marked, "mark height")
	assert.Equal(t, int64(0), entry.Fiatoshis, "bare entry has no amount")
	assert.Equal(t, entry, snapshot, "mark must return the stored entry")
}

func TestTotalSkipsMarked(t *testing.T) {

	a := makeTxID(0x04)
	b := makeTxID(0x05)
	c := makeTxID(0x06)

	before := ledger.Total()

	ledger.Withdraw("RXL3YXG2ceaB6C5hfJcN4fvmLH2C34knhA", 100000000, false, "EUR", 50000000, testHash160, a, 1, 900)
	ledger.Withdraw("RXL3YXG2ceaB6C5hfJcN4fvmLH2C34knhA", -200000000, true, "JPY", 100000000, testHash160, b, 1, 901)
	ledger.Withdraw("RXL3YXG2ceaB6C5hfJcN4fvmLH2C34knhA", 400000000, false, "GBP", 200000000, testHash160, c, 1, 902)

	assert.Equal(t, before+700000000, ledger.Total(), "pending total")

	ledger.Mark(c, 1, 903)
	assert.Equal(t, before+300000000, ledger.Total(), "total after mark")

	// a zero mark returns the entry to pending
	ledger.Mark(c, 1, 0)
	assert.Equal(t, before+700000000, ledger.Total(), "total after unmark")
}

// find returns a copy, not a live reference
func TestFindSnapshot(t *testing.T) {

	txID := makeTxID(0x07)

	ledger.Withdraw("RXL3YXG2ceaB6C5hfJcN4fvmLH2C34knhA", 100000000, false, "EUR", 50000000, testHash160, txID, 1, 910)

	entry, _ := ledger.Find(txID)
	entry.Marked = 1
	entry.Fiatoshis = 1

	again, _ := ledger.Find(txID)
	assert.Zero(t, again.Marked, "stored entry modified through snapshot")
	assert.Equal(t, int64(100000000), again.Fiatoshis, "stored amount modified through snapshot")
}

func TestPending(t *testing.T) {

	txID := makeTxID(0x08)
	ledger.Withdraw("RXL3YXG2ceaB6C5hfJcN4fvmLH2C34knhA", 100000000, false, "CAD", 50000000, testHash160, txID, 1, 920)

	pending := ledger.Pending()
	found := false
	for _, entry := range pending {
		assert.Zero(t, entry.Marked, "pending entry marked")
		if entry.TxID == txID {
			found = true
		}
	}
	assert.True(t, found, "new entry missing from pending")
}

// replacing a settled entry keeps its settlement height
func TestWithdrawKeepsMarkHeight(t *testing.T) {

	txID := makeTxID(0x09)

	ledger.Withdraw("RXL3YXG2ceaB6C5hfJcN4fvmLH2C34knhA", 100000000, false, "EUR", 50000000, testHash160, txID, 1, 930)
	ledger.Mark(txID, 1, 940)

	ledger.Withdraw("RXL3YXG2ceaB6C5hfJcN4fvmLH2C34knhA", 100000000, false, "EUR", 50000000, testHash160, txID, 1, 930)

	entry, found := ledger.Find(txID)
	assert.True(t, found, "entry missing")
	assert.Equal(t, uint64(940), entry.Marked, "settlement height lost on replace")
}
