// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peg

import (
	"encoding/binary"
	"strings"
)

// KeyLength - packed size of a peg pseudo-key
const KeyLength = 33

// field offsets inside the packed key
const (
	flagOffset    = 0
	symbolOffset  = 1
	amountOffset  = 4
	typeOffset    = 12
	hash160Offset = 13
)

// Key - one decoded peg request pseudo-key
type Key struct {
	Short       bool     // short position flag from byte 0
	Symbol      string   // three character fiat ticker
	Fiatoshis   int64    // 1e8 fixed point, negative when short
	AddressType byte     // address version of the requester
	Hash160     [20]byte // hash of the requester's public key
}

// Encode - pack a key into its 33 byte wire form
//
// only the magnitude of Fiatoshis is stored; the sign is carried by
// the flag in byte 0
func (k Key) Encode() [KeyLength]byte {
	packed := [KeyLength]byte{}

	packed[flagOffset] = 0x02
	if k.Short {
		packed[flagOffset] |= 0x01
	}

	symbol := strings.ToUpper(k.Symbol)
	copy(packed[symbolOffset:symbolOffset+3], symbol)

	amount := k.Fiatoshis
	if amount < 0 {
		amount = -amount
	}
	binary.LittleEndian.PutUint64(packed[amountOffset:amountOffset+8], uint64(amount))

	packed[typeOffset] = k.AddressType
	copy(packed[hash160Offset:], k.Hash160[:])

	return packed
}

// DecodeKey - unpack a 33 byte wire form
//
// the amount is negated when the short flag is set
func DecodeKey(packed [KeyLength]byte) Key {
	k := Key{
		Short:       0x03 == packed[flagOffset],
		Symbol:      strings.TrimRight(string(packed[symbolOffset:symbolOffset+3]), "\x00"),
		Fiatoshis:   int64(binary.LittleEndian.Uint64(packed[amountOffset : amountOffset+8])),
		AddressType: packed[typeOffset],
	}
	if k.Short {
		k.Fiatoshis = -k.Fiatoshis
	}
	copy(k.Hash160[:], packed[hash160Offset:])
	return k
}
