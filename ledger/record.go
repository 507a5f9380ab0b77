// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/pegd/fault"
	"github.com/bitmark-inc/pegd/peg"
	"github.com/bitmark-inc/pegd/util"
)

// record flag bits
const (
	flagShort = 0x01
)

// pack an entry for the storage pool
//
// layout:
//   flags        1 byte
//   vout         varint
//   height       varint
//   marked       varint (settlement height, zero while pending)
//   fiatoshis    varint (magnitude, sign in flags)
//   peggedoshis  varint
//   hash160      20 bytes
//   symbol       varint length + bytes
//   coin address varint length + bytes
//
// the txid is the pool key and is not repeated in the value
func packRecord(entry *PegTransaction) []byte {

	flags := byte(0)
	if entry.Short {
		flags |= flagShort
	}

	buffer := make([]byte, 1, 64)
	buffer[0] = flags
	buffer = append(buffer, util.ToVarint64(uint64(entry.Vout))...)
	buffer = append(buffer, util.ToVarint64(entry.Height)...)
	buffer = append(buffer, util.ToVarint64(entry.Marked)...)
	buffer = append(buffer, util.ToVarint64(magnitude(entry.Fiatoshis))...)
	buffer = append(buffer, util.ToVarint64(entry.Peggedoshis)...)
	buffer = append(buffer, entry.Hash160[:]...)
	buffer = append(buffer, util.ToVarint64(uint64(len(entry.Symbol)))...)
	buffer = append(buffer, entry.Symbol...)
	buffer = append(buffer, util.ToVarint64(uint64(len(entry.CoinAddress)))...)
	buffer = append(buffer, entry.CoinAddress...)
	return buffer
}

// unpack a stored value back into an entry
func unpackRecord(key []byte, buffer []byte) (*PegTransaction, error) {

	if peg.TxIDLength != len(key) || len(buffer) < 1 {
		return nil, fault.ErrInvalidStructure
	}

	entry := &PegTransaction{}
	copy(entry.TxID[:], key)

	flags := buffer[0]
	entry.Short = 0 != flags&flagShort
	buffer = buffer[1:]

	vout, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.ErrInvalidStructure
	}
	entry.Vout = int(vout)
	buffer = buffer[n:]

	height, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.ErrInvalidStructure
	}
	entry.Height = height
	buffer = buffer[n:]

	marked, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.ErrInvalidStructure
	}
	entry.Marked = marked
	buffer = buffer[n:]

	fiatoshis, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.ErrInvalidStructure
	}
	entry.Fiatoshis = int64(fiatoshis)
	if entry.Short {
		entry.Fiatoshis = -entry.Fiatoshis
	}
	buffer = buffer[n:]

	peggedoshis, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.ErrInvalidStructure
	}
	entry.Peggedoshis = peggedoshis
	buffer = buffer[n:]

	if len(buffer) < len(entry.Hash160) {
		return nil, fault.ErrInvalidStructure
	}
	copy(entry.Hash160[:], buffer)
	buffer = buffer[len(entry.Hash160):]

	symbol, buffer, err := unpackString(buffer)
	if nil != err {
		return nil, err
	}
	entry.Symbol = symbol

	coinAddress, buffer, err := unpackString(buffer)
	if nil != err {
		return nil, err
	}
	entry.CoinAddress = coinAddress

	if 0 != len(buffer) {
		return nil, fault.ErrInvalidStructure
	}

	return entry, nil
}

func unpackString(buffer []byte) (string, []byte, error) {
	length, n := util.FromVarint64(buffer)
	if 0 == n {
		return "", nil, fault.ErrInvalidStructure
	}
	buffer = buffer[n:]
	if uint64(len(buffer)) < length {
		return "", nil, fault.ErrInvalidStructure
	}
	return string(buffer[:length]), buffer[length:], nil
}
