// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package funding_test

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pegd/funding"
	"github.com/bitmark-inc/pegd/node"
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
	rc := m.Run()
	logger.Finalise()
	os.RemoveAll(dir)
	os.Exit(rc)
}

const (
	notaryAddress = "RXL3YXG2ceaB6C5hfJcN4fvmLH2C34knhA"
	p2pkScript    = "21020e46e79a2a8d12b9b5d12c7a91adb4e454edfae43c0a0cb805427d2ac7613fd9ac"
)

func unspentDaemon(t *testing.T, unspent []node.Unspent) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			Id     uint64            `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&request), "request decode")
		assert.Equal(t, "listunspent", request.Method, "method")

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     request.Id,
			"result": unspent,
			"error":  nil,
		})
	}))
}

func newWatcher(t *testing.T, url string) *funding.Watcher {
	coin, err := node.New(&node.Configuration{Symbol: "KMD", URL: url, Mode: "remote"}, nil, nil)
	assert.NoError(t, err, "node create")
	return funding.New(coin, []string{notaryAddress}, rand.New(rand.NewSource(1)))
}

func eligible(fill string) node.Unspent {
	return node.Unspent{
		TxID:         strings.Repeat(fill, 32),
		Vout:         1,
		Address:      notaryAddress,
		ScriptPubKey: p2pkScript,
		Amount:       json.RawMessage(`"0.00010000"`),
	}
}

func TestHaveUTXOSingle(t *testing.T) {

	daemon := unspentDaemon(t, []node.Unspent{eligible("aa")})
	defer daemon.Close()

	w := newWatcher(t, daemon.URL)
	count, txID, vout, err := w.HaveUTXO(notaryAddress)
	assert.NoError(t, err, "have utxo")
	assert.Equal(t, 1, count, "candidates")
	assert.Equal(t, strings.Repeat("aa", 32), txID.String(), "txid")
	assert.Equal(t, 1, vout, "vout")
}

func TestHaveUTXOFilters(t *testing.T) {

	wrongAmount := eligible("bb")
	wrongAmount.Amount = json.RawMessage(`"3.00000000"`)

	wrongAddress := eligible("cc")
	wrongAddress.Address = "RFBmvBaRybj9io1UpgWM4pzgufc3E4yza7"

	wrongScript := eligible("dd")
	wrongScript.ScriptPubKey = "76a914f1dce4182fce875748c4986b240ff7d7bc3fffb088ac"

	zeroTxID := eligible("00")

	only := eligible("ee")

	daemon := unspentDaemon(t, []node.Unspent{wrongAmount, wrongAddress, wrongScript, zeroTxID, only})
	defer daemon.Close()

	w := newWatcher(t, daemon.URL)
	count, txID, vout, err := w.HaveUTXO(notaryAddress)
	assert.NoError(t, err, "have utxo")
	assert.Equal(t, 1, count, "only one candidate may qualify")
	assert.Equal(t, strings.Repeat("ee", 32), txID.String(), "txid")
	assert.Equal(t, 1, vout, "vout")
}

// with several candidates the selection is one of them, never absent
func TestHaveUTXOSelectsAmongCandidates(t *testing.T) {

	daemon := unspentDaemon(t, []node.Unspent{eligible("aa"), eligible("bb"), eligible("cc")})
	defer daemon.Close()

	w := newWatcher(t, daemon.URL)
	count, txID, vout, err := w.HaveUTXO(notaryAddress)
	assert.NoError(t, err, "have utxo")
	assert.Equal(t, 3, count, "candidates")
	assert.Equal(t, 1, vout, "vout")
	assert.Contains(t, []string{
		strings.Repeat("aa", 32),
		strings.Repeat("bb", 32),
		strings.Repeat("cc", 32),
	}, txID.String(), "selection outside candidate set")
}

func TestHaveUTXONone(t *testing.T) {

	daemon := unspentDaemon(t, []node.Unspent{})
	defer daemon.Close()

	w := newWatcher(t, daemon.URL)
	count, txID, vout, err := w.HaveUTXO(notaryAddress)
	assert.NoError(t, err, "have utxo")
	assert.Equal(t, 0, count, "candidates")
	assert.Equal(t, -1, vout, "no selection")
	assert.True(t, txID.IsZero(), "no selection")
}

func TestHaveUTXOOutage(t *testing.T) {

	w := newWatcher(t, "http://127.0.0.1:1")
	_, _, _, err := w.HaveUTXO(notaryAddress)
	assert.Error(t, err, "expected transport error")
}
