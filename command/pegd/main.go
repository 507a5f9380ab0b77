// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pegd/background"
	"github.com/bitmark-inc/pegd/fault"
	"github.com/bitmark-inc/pegd/funding"
	"github.com/bitmark-inc/pegd/ledger"
	"github.com/bitmark-inc/pegd/node"
	"github.com/bitmark-inc/pegd/oracle"
	"github.com/bitmark-inc/pegd/publish"
	"github.com/bitmark-inc/pegd/scanner"
	"github.com/bitmark-inc/pegd/storage"
)

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, _, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [--version]", program)
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// last chance logging for panics
	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// general info
	log.Infof("database: %q", theConfiguration.databasePath())
	log.Infof("peg chain: %q", theConfiguration.PegChain.URL)
	log.Infof("coins: %d", len(theConfiguration.Coins))

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.databasePath())
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// the ledger reloads persisted entries from storage
	log.Info("initialise ledger")
	err = ledger.Initialise()
	if nil != err {
		log.Criticalf("ledger initialise error: %s", err)
		exitwithstatus.Message("ledger initialise error: %s", err)
	}
	defer ledger.Finalise()

	// announcement socket for downstream consensus
	log.Info("initialise publish")
	err = publish.Initialise(&theConfiguration.Publishing)
	if nil != err {
		log.Criticalf("publish initialise error: %s", err)
		exitwithstatus.Message("publish initialise error: %s", err)
	}
	defer publish.Finalise()

	// peg chain connection shared by the oracle and the funding watcher
	pegChain, err := node.New(&theConfiguration.PegChain, nil, nil)
	if nil != err {
		log.Criticalf("peg chain connect error: %s", err)
		exitwithstatus.Message("peg chain connect error: %s", err)
	}

	priceOracle := oracle.New(pegChain)

	// one scanner per configured coin
	processes := background.Processes{}

	for i := range theConfiguration.Coins {
		coin, err := node.New(&theConfiguration.Coins[i], nil, nil)
		if nil != err {
			log.Criticalf("coin: %q connect error: %s", theConfiguration.Coins[i].Symbol, err)
			exitwithstatus.Message("coin: %q connect error: %s", theConfiguration.Coins[i].Symbol, err)
		}

		s := scanner.New(coin, priceOracle, publish.Hook{})
		s.SetShort(theConfiguration.Short)
		processes = append(processes, s)
	}

	// funding watcher over the peg chain
	if len(theConfiguration.Funding.Addresses) > 0 {
		watcher := funding.New(pegChain, theConfiguration.Funding.Addresses, rand.New(rand.NewSource(time.Now().UnixNano())))
		processes = append(processes, watcher)
	}

	log.Info("start background processes")
	backgrounds := background.Start(processes, nil)
	defer backgrounds.Stop()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}
