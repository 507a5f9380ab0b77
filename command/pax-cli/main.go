// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/exitwithstatus"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "pax-cli"
	app.Usage = "inspect peg requests and funding state"
	app.Version = version

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "url, u",
			Value: "http://127.0.0.1:7771",
			Usage: " daemon RPC `URL`",
		},
		cli.StringFlag{
			Name:  "username",
			Value: "",
			Usage: " RPC `USERNAME`",
		},
		cli.StringFlag{
			Name:  "password",
			Value: "",
			Usage: " RPC `PASSWORD`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "decode",
			Usage:     "decode a data carrier script",
			ArgsUsage: "HEX-SCRIPT",
			Action:    runDecode,
		},
		{
			Name:      "price",
			Usage:     "query the pegged equivalent of a fiat volume",
			ArgsUsage: "BASE HEIGHT VOLUME",
			Action:    runPrice,
		},
		{
			Name:      "utxo",
			Usage:     "check an address for a spendable funding output",
			ArgsUsage: "ADDRESS",
			Action:    runUTXO,
		},
		{
			Name:   "tip",
			Usage:  "show the best block of the peg chain",
			Action: runTip,
		},
	}

	if err := app.Run(os.Args); nil != err {
		exitwithstatus.Message("error: %s", err)
	}
}
