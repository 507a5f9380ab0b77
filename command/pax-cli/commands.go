// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pegd/fault"
	"github.com/bitmark-inc/pegd/funding"
	"github.com/bitmark-inc/pegd/node"
	"github.com/bitmark-inc/pegd/oracle"
	"github.com/bitmark-inc/pegd/peg"
	"github.com/bitmark-inc/pegd/satoshi"
)

// network commands log to a throwaway directory
func bootstrapLogger() (string, error) {
	dir, err := ioutil.TempDir("", "pax-cli")
	if nil != err {
		return "", err
	}
	err = logger.Initialise(logger.Configuration{
		Directory: dir,
		File:      "pax-cli.log",
		Size:      1048576,
		Count:     2,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	if nil != err {
		os.RemoveAll(dir)
		return "", err
	}
	return dir, nil
}

func pegChainClient(c *cli.Context) (*node.Client, func(), error) {
	dir, err := bootstrapLogger()
	if nil != err {
		return nil, nil, err
	}
	cleanup := func() {
		logger.Finalise()
		os.RemoveAll(dir)
	}

	client, err := node.New(&node.Configuration{
		Symbol:   peg.NativeSymbol,
		URL:      c.GlobalString("url"),
		Username: c.GlobalString("username"),
		Password: c.GlobalString("password"),
		Mode:     "remote",
	}, nil, nil)
	if nil != err {
		cleanup()
		return nil, nil, err
	}
	return client, cleanup, nil
}

// decode a data carrier script supplied as hex
func runDecode(c *cli.Context) error {

	hexScript := c.Args().First()
	if "" == hexScript {
		return fault.ErrMissingParameters
	}

	script, err := hex.DecodeString(hexScript)
	if nil != err {
		return err
	}
	if 0 == len(script) || peg.OpReturn != script[0] {
		return fault.ErrInvalidStructure
	}

	dataLength, prefixLength, err := peg.ScriptItemLength(script[1:])
	if nil != err {
		return err
	}
	data := script[1+prefixLength:]
	if len(data) < dataLength || 0 == dataLength {
		return fault.ErrInvalidStructure
	}
	data = data[:dataLength]

	fmt.Fprintf(c.App.Writer, "tag: %c\n", data[0])

	if peg.TagWithdraw != data[0] || 1+peg.KeyLength+4 != dataLength {
		return nil
	}

	var packed [peg.KeyLength]byte
	copy(packed[:], data[1:1+peg.KeyLength])
	key := peg.DecodeKey(packed)

	declaredHeight := binary.LittleEndian.Uint32(data[1+peg.KeyLength:])

	fmt.Fprintf(c.App.Writer, "symbol: %s\n", key.Symbol)
	fmt.Fprintf(c.App.Writer, "short: %t\n", key.Short)
	fmt.Fprintf(c.App.Writer, "fiatoshis: %d\n", key.Fiatoshis)
	fmt.Fprintf(c.App.Writer, "address: %s\n", peg.Hash160ToAddress(key.AddressType, key.Hash160))
	fmt.Fprintf(c.App.Writer, "height: %d\n", declaredHeight)
	return nil
}

// query the pegged equivalent of a fiat volume at a height
func runPrice(c *cli.Context) error {

	if 3 != c.NArg() {
		return fault.ErrMissingParameters
	}

	base := c.Args().Get(0)
	height, err := strconv.ParseUint(c.Args().Get(1), 10, 64)
	if nil != err {
		return err
	}
	volume, err := strconv.ParseUint(c.Args().Get(2), 10, 64)
	if nil != err {
		return err
	}

	client, cleanup, err := pegChainClient(c)
	if nil != err {
		return err
	}
	defer cleanup()

	price := oracle.New(client).Price(height, base, peg.NativeSymbol, volume)
	if 0 == price {
		return fault.ErrConnectFail
	}

	fmt.Fprintf(c.App.Writer, "%s\n", satoshi.String(price))
	return nil
}

// check one notary address for a spendable funding output
func runUTXO(c *cli.Context) error {

	address := c.Args().First()
	if "" == address {
		return fault.ErrMissingParameters
	}

	client, cleanup, err := pegChainClient(c)
	if nil != err {
		return err
	}
	defer cleanup()

	watcher := funding.New(client, []string{address}, rand.New(rand.NewSource(time.Now().UnixNano())))
	count, txID, vout, err := watcher.HaveUTXO(address)
	if nil != err {
		return err
	}

	fmt.Fprintf(c.App.Writer, "candidates: %d\n", count)
	if count > 0 {
		fmt.Fprintf(c.App.Writer, "selected: %s:%d\n", txID, vout)
	}
	return nil
}

// show the best block and its leading transaction ids
func runTip(c *cli.Context) error {

	client, cleanup, err := pegChainClient(c)
	if nil != err {
		return err
	}
	defer cleanup()

	tip, err := client.Tip(10)
	if nil != err {
		return err
	}

	fmt.Fprintf(c.App.Writer, "height: %d\n", tip.Height)
	fmt.Fprintf(c.App.Writer, "hash: %s\n", tip.Hash)
	fmt.Fprintf(c.App.Writer, "time: %d\n", tip.Time)
	for _, txID := range tip.TxIDs {
		fmt.Fprintf(c.App.Writer, "tx: %s\n", txID)
	}
	return nil
}
