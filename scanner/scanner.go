// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scanner

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pegd/ledger"
	"github.com/bitmark-inc/pegd/node"
	"github.com/bitmark-inc/pegd/oracle"
	"github.com/bitmark-inc/pegd/peg"
	"github.com/bitmark-inc/pegd/satoshi"
	"github.com/bitmark-inc/pegd/storage"
)

// at most this many heights are processed per iteration
const maximumHeightsPerIteration = 1000

// pacing of per-block RPC requests during catch-up
const blockFetchesPerSecond = 100

// a 'W' payload is tag + packed key + little endian declared height
const withdrawPayloadLength = 1 + peg.KeyLength + 4

// Announcer - sink for freshly recorded requests
type Announcer interface {
	Announce(entry ledger.PegTransaction)
}

// Scanner - walks one external chain
type Scanner struct {
	coin     *node.Client
	oracle   *oracle.Client
	announce Announcer

	symbol string // fiat unit this chain pegs
	short  bool   // configured request direction

	scanHeight uint64
	limiter    *rate.Limiter

	log *logger.L
}

// New - create a scanner for one coin
//
// announce may be nil when nothing downstream listens; the scan
// position resumes from the database when one is open
func New(coin *node.Client, priceOracle *oracle.Client, announce Announcer) *Scanner {
	s := &Scanner{
		coin:     coin,
		oracle:   priceOracle,
		announce: announce,
		symbol:   coin.Symbol(),
		limiter:  rate.NewLimiter(blockFetchesPerSecond, 1),
		log:      logger.New("scanner-" + coin.Symbol()),
	}
	if nil != storage.Pool.State {
		if height, found := storage.Pool.State.GetN(s.stateKey()); found {
			s.scanHeight = height
			s.log.Infof("resuming from height: %d", height)
		}
	}
	return s
}

// database key for this chain's scan position
func (s *Scanner) stateKey() []byte {
	return []byte("scan:" + s.symbol)
}

// SetShort - configure the request direction this scanner records
func (s *Scanner) SetShort(short bool) {
	s.short = short
}

// SetLimiter - replace the block fetch pacing
func (s *Scanner) SetLimiter(limiter *rate.Limiter) {
	s.limiter = limiter
}

// ScanHeight - next height to be processed
func (s *Scanner) ScanHeight() uint64 {
	return s.scanHeight
}

// Iterate - catch up a bounded number of heights
//
// returns the realtime timestamp when the chain tip was reached, or
// zero while still catching up; the scan height only advances past
// heights whose every transaction was fetched and examined
func (s *Scanner) Iterate() (realtime int64, err error) {

	if s.scanHeight <= 0 {
		s.scanHeight = 1
	}

	targetHeight, err := s.coin.Height()
	if nil != err {
		s.log.Warnf("height unavailable: %s", err)
		return 0, err
	}

	startHeight := s.scanHeight

	for i := 0; i < maximumHeightsPerIteration && s.scanHeight <= targetHeight; i += 1 {
		if err := s.limiter.Wait(context.Background()); nil != err {
			return 0, err
		}
		if err := s.processHeight(s.scanHeight); nil != err {
			s.log.Warnf("height: %d error: %s", s.scanHeight, err)
			s.saveHeight(startHeight)
			return 0, err
		}
		s.scanHeight += 1
	}
	s.saveHeight(startHeight)

	if s.scanHeight >= targetHeight {
		return time.Now().Unix(), nil
	}
	return 0, nil
}

// record the scan position when it advanced and a database is open
func (s *Scanner) saveHeight(startHeight uint64) {
	if s.scanHeight > startHeight && nil != storage.Pool.State {
		storage.Pool.State.PutN(s.stateKey(), s.scanHeight)
	}
}

// fetch and examine every transaction of one block
func (s *Scanner) processHeight(height uint64) error {

	hash, err := s.coin.BlockHash(height)
	if nil != err {
		return err
	}

	block, err := s.coin.GetBlock(hash)
	if nil != err {
		return err
	}

	for i, txid := range block.Tx {
		tx, err := s.coin.GetTransaction(txid)
		if nil != err {
			return err
		}
		s.processTransaction(height, i, tx)
	}
	return nil
}

// examine every output of one transaction
//
// malformed outputs are skipped with a diagnostic; they never abort
// the enclosing block
func (s *Scanner) processTransaction(height uint64, txi int, tx *node.Transaction) {

	txID, err := peg.TxIDFromHexString(tx.TxID)
	if nil != err {
		s.log.Errorf("height: %d txi: %d bad txid: %q", height, txi, tx.TxID)
		return
	}

	isSpecial := false

	for _, vout := range tx.Vout {

		hexScript := vout.ScriptPubKey.Hex

		// vout 0 paying the shared notary key carries no metadata
		if 0 == vout.N && peg.IsNotaryFundingScript(hexScript) {
			isSpecial = true
			continue
		}

		if len(hexScript)>>1 > peg.MaximumScriptBytes {
			s.log.Debugf("height: %d txid: %s vout: %d oversized script: %d bytes", height, txID, vout.N, len(hexScript)>>1)
			continue
		}

		script, err := hex.DecodeString(hexScript)
		if nil != err {
			s.log.Debugf("height: %d txid: %s vout: %d bad script hex", height, txID, vout.N)
			continue
		}

		s.voutUpdate(height, txID, isSpecial, &vout, script)
	}
}

// decode one data carrier output
func (s *Scanner) voutUpdate(height uint64, txID peg.TxID, isSpecial bool, vout *node.Vout, script []byte) {

	if 0 == len(script) || peg.OpReturn != script[0] {
		return
	}

	dataLength, prefixLength, err := peg.ScriptItemLength(script[1:])
	if nil != err {
		s.log.Debugf("height: %d txid: %s vout: %d push data: %s", height, txID, vout.N, err)
		return
	}

	data := script[1+prefixLength:]
	if len(data) < dataLength {
		s.log.Debugf("height: %d txid: %s vout: %d push data exceeds script", height, txID, vout.N)
		return
	}
	data = data[:dataLength]
	if 0 == len(data) {
		return
	}

	switch data[0] {

	case peg.TagWithdraw:
		if peg.NativeSymbol == s.symbol {
			return
		}
		if withdrawPayloadLength != dataLength {
			s.log.Debugf("height: %d txid: %s vout: %d withdraw payload: %d", height, txID, vout.N, dataLength)
			return
		}
		s.withdraw(height, txID, isSpecial, vout, data)

	case peg.TagIssued:
		// reserved for a rescan-from-height flow
		s.log.Infof("issued marker at height: %d txid: %s vout: %d", height, txID, vout.N)
	}
}

// handle one withdraw request payload
func (s *Scanner) withdraw(height uint64, txID peg.TxID, isSpecial bool, vout *node.Vout, data []byte) {

	var packed [peg.KeyLength]byte
	copy(packed[:], data[1:1+peg.KeyLength])
	key := peg.DecodeKey(packed)

	declaredHeight := uint64(binary.LittleEndian.Uint32(data[1+peg.KeyLength:]))

	if key.Symbol != s.symbol {
		s.log.Debugf("height: %d txid: %s vout: %d foreign unit: %q", height, txID, vout.N, key.Symbol)
		return
	}

	fiatoshis := key.Fiatoshis
	if fiatoshis < 0 {
		fiatoshis = -fiatoshis
	}

	coinAddress := peg.Hash160ToAddress(key.AddressType, key.Hash160)

	destination, err := s.oracle.FiatDestination(true, coinAddress, declaredHeight, key.Symbol, fiatoshis)
	if nil != err || nil == destination {
		s.log.Errorf("height: %d txid: %s vout: %d destination error: %s", height, txID, vout.N, err)
		return
	}

	if key.Short != s.short {
		return
	}

	value := satoshi.FromByteString(vout.Value)

	if key.Short {
		// validated but intentionally not recorded: the settlement
		// side of a short has no issuance step here
		if value >= uint64(fiatoshis) {
			s.log.Infof("short request at height: %d txid: %s vout: %d value: %d declared: %d", height, txID, vout.N, value, fiatoshis)
		} else {
			s.log.Warnf("underfunded short at height: %d txid: %s vout: %d value: %d declared: %d", height, txID, vout.N, value, fiatoshis)
		}
		return
	}

	s.log.Infof("withdraw at height: %d txid: %s vout: %d special: %t value: %d declared: %d dest: %s",
		height, txID, vout.N, isSpecial, value, fiatoshis, destination.Address)

	if value > uint64(fiatoshis) {
		s.log.Warnf("height: %d txid: %s vout: %d value: %d exceeds declared: %d", height, txID, vout.N, value, fiatoshis)
		return
	}

	if _, found := ledger.Find(txID); found {
		return
	}

	ledger.Withdraw(coinAddress, fiatoshis, key.Short, key.Symbol, destination.Peggedoshis, key.Hash160, txID, vout.N, declaredHeight)

	if nil != s.announce {
		if entry, found := ledger.Find(txID); found {
			s.announce.Announce(entry)
		}
	}
}
