// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peg

import (
	"encoding/hex"

	"github.com/bitmark-inc/pegd/fault"
)

// TxIDLength - number of bytes in a transaction id
const TxIDLength = 32

// TxID - a 256 bit transaction id
type TxID [TxIDLength]byte

// TxIDFromHexString - convert a 64 character hex string to a TxID
func TxIDFromHexString(s string) (TxID, error) {
	txid := TxID{}
	if hex.EncodedLen(len(txid)) != len(s) {
		return txid, fault.ErrInvalidStructure
	}
	if _, err := hex.Decode(txid[:], []byte(s)); nil != err {
		return txid, err
	}
	return txid, nil
}

// String - convert a TxID to its hex string
func (txid TxID) String() string {
	return hex.EncodeToString(txid[:])
}

// MarshalText - hex encode for JSON and logging
func (txid TxID) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(txid)))
	hex.Encode(buffer, txid[:])
	return buffer, nil
}

// UnmarshalText - decode a 64 character hex string
func (txid *TxID) UnmarshalText(s []byte) error {
	t, err := TxIDFromHexString(string(s))
	if nil != err {
		return err
	}
	*txid = t
	return nil
}

// IsZero - check for the all zero id
func (txid TxID) IsZero() bool {
	for _, b := range txid {
		if 0 != b {
			return false
		}
	}
	return true
}
