// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pegd/configuration"
	"github.com/bitmark-inc/pegd/node"
	"github.com/bitmark-inc/pegd/peg"
	"github.com/bitmark-inc/pegd/publish"
	"github.com/bitmark-inc/pegd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "pegd"

	defaultLogDirectory = "log"
	defaultLogFile      = "pegd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// path expanded or calculated defaults
var defaultLogLevels = map[string]string{
	logger.DefaultTag: "critical",
}

// DatabaseType - where the ledger store lives
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// FundingType - notary funding watch list
type FundingType struct {
	Addresses []string `gluamapper:"addresses" json:"addresses"`
}

// Configuration - the daemon configuration
type Configuration struct {
	DataDirectory string                `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string                `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType          `gluamapper:"database" json:"database"`
	PegChain      node.Configuration    `gluamapper:"peg_chain" json:"peg_chain"`
	Short         bool                  `gluamapper:"short" json:"short"`
	Coins         []node.Configuration  `gluamapper:"coins" json:"coins"`
	Funding       FundingType           `gluamapper:"funding" json:"funding"`
	Publishing    publish.Configuration `gluamapper:"publishing" json:"publishing"`
	Logging       logger.Configuration  `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		PegChain: node.Configuration{
			Symbol: peg.NativeSymbol,
			Mode:   "remote",
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	if "" == options.PegChain.URL {
		return nil, fmt.Errorf("peg_chain.url cannot be blank")
	}
	if 0 == len(options.Coins) {
		return nil, fmt.Errorf("at least one coin must be configured")
	}
	for i, coin := range options.Coins {
		if "" == coin.Symbol {
			return nil, fmt.Errorf("coins[%d].symbol cannot be blank", i)
		}
		if peg.NativeSymbol == coin.Symbol {
			return nil, fmt.Errorf("coins[%d] cannot be the native unit %q", i, peg.NativeSymbol)
		}
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = util.EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	// fail if the database name is not a simple file name
	switch filepath.Dir(options.Database.Name) {
	case "", ".":
	default:
		return nil, fmt.Errorf("database name: %q is not a plain name", options.Database.Name)
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Logging.Directory,
		&options.Database.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// the full path prefix handed to the storage pool
func (c *Configuration) databasePath() string {
	return filepath.Join(c.Database.Directory, c.Database.Name)
}
