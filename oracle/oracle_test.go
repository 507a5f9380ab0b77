// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package oracle_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pegd/node"
	"github.com/bitmark-inc/pegd/oracle"
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
	rc := m.Run()
	logger.Finalise()
	os.RemoveAll(dir)
	os.Exit(rc)
}

const fundingAddress = "RXL3YXG2ceaB6C5hfJcN4fvmLH2C34knhA"

func priceDaemon(t *testing.T, price string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			Id     uint64            `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&request), "request decode")
		assert.Equal(t, "paxprice", request.Method, "method")
		assert.Equal(t, 4, len(request.Params), "param count")

		// height and volume travel as strings
		var heightString, volumeString string
		assert.NoError(t, json.Unmarshal(request.Params[2], &heightString), "height param")
		assert.NoError(t, json.Unmarshal(request.Params[3], &volumeString), "volume param")
		assert.Equal(t, "777", heightString, "height")
		assert.Equal(t, "5.00000000", volumeString, "volume")

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     request.Id,
			"result": map[string]string{"price": price},
			"error":  nil,
		})
	}))
}

func newOracle(t *testing.T, url string) *oracle.Client {
	c, err := node.New(&node.Configuration{Symbol: "KMD", URL: url, Mode: "remote"}, nil, nil)
	assert.NoError(t, err, "node create")
	return oracle.New(c)
}

func TestPrice(t *testing.T) {

	server := priceDaemon(t, "12.34567890")
	defer server.Close()

	o := newOracle(t, server.URL)
	price := o.Price(777, "EUR", "KMD", 500000000)
	assert.Equal(t, uint64(1234567890), price, "price")
}

// a dead daemon prices at zero, not a failure
func TestPriceOutage(t *testing.T) {

	o := newOracle(t, "http://127.0.0.1:1")
	price := o.Price(777, "EUR", "KMD", 500000000)
	assert.Equal(t, uint64(0), price, "price")
}

// the native unit is never re-priced
func TestFiatDestinationNative(t *testing.T) {

	o := newOracle(t, "http://127.0.0.1:1")
	destination, err := o.FiatDestination(true, fundingAddress, 777, "kmd", 500000000)
	assert.NoError(t, err, "fiat destination")
	assert.Nil(t, destination, "native unit must not convert")
}

func TestFiatDestination(t *testing.T) {

	server := priceDaemon(t, "2.00000000")
	defer server.Close()

	o := newOracle(t, server.URL)
	destination, err := o.FiatDestination(true, fundingAddress, 777, "eur", 500000000)
	assert.NoError(t, err, "fiat destination")
	assert.NotNil(t, destination, "destination")
	assert.Equal(t, uint64(200000000), destination.Peggedoshis, "pegged equivalent")
	assert.False(t, destination.Short, "short flag")

	// the key must decode back to the priced request
	decoded := peg.DecodeKey(destination.Pubkey)
	assert.Equal(t, "EUR", decoded.Symbol, "symbol")
	assert.Equal(t, int64(200000000), decoded.Fiatoshis, "key amount")
	assert.NotEmpty(t, destination.Address, "derived address")
}

// a negative request records the short flag and prices the magnitude
func TestFiatDestinationShort(t *testing.T) {

	server := priceDaemon(t, "2.00000000")
	defer server.Close()

	o := newOracle(t, server.URL)
	destination, err := o.FiatDestination(false, fundingAddress, 777, "EUR", -500000000)
	assert.NoError(t, err, "fiat destination")
	assert.True(t, destination.Short, "short flag")
	assert.Equal(t, byte(0x03), destination.Pubkey[0], "flag byte")

	decoded := peg.DecodeKey(destination.Pubkey)
	assert.Equal(t, int64(-200000000), decoded.Fiatoshis, "key amount")
}

func TestFiatDestinationBadAddress(t *testing.T) {

	server := priceDaemon(t, "2.00000000")
	defer server.Close()

	o := newOracle(t, server.URL)
	_, err := o.FiatDestination(true, "not-an-address", 777, "EUR", 500000000)
	assert.Error(t, err, "expected address error")
}
