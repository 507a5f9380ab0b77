// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// price oracle client
//
// resolves the pegged unit equivalent of a fiat denominated request
// at a given peg chain height
package oracle

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pegd/node"
	"github.com/bitmark-inc/pegd/peg"
	"github.com/bitmark-inc/pegd/satoshi"
)

// Client - price queries against the peg chain daemon
type Client struct {
	pegChain *node.Client
	log      *logger.L
}

// Destination - result of one fiat conversion
type Destination struct {
	Peggedoshis uint64             // pegged unit equivalent, 1e8 fixed point
	Pubkey      [peg.KeyLength]byte // freshly encoded pseudo-key
	Address     string             // address derived from the pseudo-key
	Short       bool               // recorded sign of the request
}

// New - create a price client on an existing peg chain connection
func New(pegChain *node.Client) *Client {
	return &Client{
		pegChain: pegChain,
		log:      logger.New("oracle"),
	}
}

// Price - pegged unit equivalent of a fiat volume at a height
//
// any failure yields zero; the caller treats zero as no price this
// round
func (c *Client) Price(height uint64, base string, quote string, volume uint64) uint64 {

	params := []interface{}{
		base,
		quote,
		strconv.FormatUint(height, 10),
		satoshi.String(volume),
	}

	var reply struct {
		Price json.RawMessage `json:"price"`
	}
	if err := c.pegChain.Call("paxprice", params, &reply); nil != err {
		c.log.Errorf("paxprice: %s/%s height: %d  error: %s", base, quote, height, err)
		return 0
	}

	price := satoshi.FromByteString(reply.Price)
	c.log.Debugf("paxprice: %s/%s height: %d volume: %s → %s", base, quote, height, satoshi.String(volume), satoshi.String(price))
	return price
}

// FiatDestination - price a fiat request and encode its pseudo-key
//
// the native unit maps one to one and is never re-priced: a request
// in the peg's own symbol returns a nil destination with no error
//
// toPegged selects which amount the key carries: the pegged
// equivalent (issuance side) or the original fiat magnitude
func (c *Client) FiatDestination(toPegged bool, coinAddress string, height uint64, base string, fiatoshis int64) (*Destination, error) {

	if 3 <= len(base) {
		base = base[:3]
	}
	base = strings.ToUpper(base)
	if peg.NativeSymbol == base {
		return nil, nil
	}

	short := false
	if fiatoshis < 0 {
		short = true
		fiatoshis = -fiatoshis
	}

	peggedoshis := c.Price(height, base, peg.NativeSymbol, uint64(fiatoshis))

	addressType, hash160, err := peg.AddressToHash160(coinAddress)
	if nil != err {
		return nil, err
	}

	amount := fiatoshis
	if toPegged {
		amount = int64(peggedoshis)
	}

	key := peg.Key{
		Short:       short,
		Symbol:      base,
		Fiatoshis:   amount,
		AddressType: addressType,
		Hash160:     hash160,
	}
	pubkey := key.Encode()

	return &Destination{
		Peggedoshis: peggedoshis,
		Pubkey:      pubkey,
		Address:     peg.PubkeyToAddress(peg.AddressVersion, pubkey[:]),
		Short:       short,
	}, nil
}
