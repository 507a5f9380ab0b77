// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peg

import (
	"github.com/bitmark-inc/pegd/fault"
)

// push data markers
const (
	pushData1 = 0x4c // next byte is the length
	pushData2 = 0x4d // next two bytes are the length, high byte first
)

// ScriptItemLength - read the variable width push data length at the
// start of a script fragment
//
// returns the data length and the number of prefix bytes consumed;
// the high byte comes first in the two byte form
func ScriptItemLength(script []byte) (dataLength int, prefixLength int, err error) {
	if 0 == len(script) {
		return 0, 0, fault.ErrInvalidPushData
	}

	length := int(script[0])
	consumed := 1
	if length >= pushData1 {
		switch length {
		case pushData1:
			if len(script) < 2 {
				return 0, 0, fault.ErrInvalidPushData
			}
			length = int(script[1])
			consumed = 2
		case pushData2:
			if len(script) < 3 {
				return 0, 0, fault.ErrInvalidPushData
			}
			length = int(script[1])<<8 | int(script[2])
			consumed = 3
		}
	}
	return length, consumed, nil
}

// AppendPushData - append a push data prefix and the data itself to a
// script under construction
func AppendPushData(script []byte, data []byte) []byte {
	length := len(data)
	switch {
	case length < pushData1:
		script = append(script, byte(length))
	case length <= 0xff:
		script = append(script, pushData1, byte(length))
	default:
		script = append(script, pushData2, byte(length>>8), byte(length))
	}
	return append(script, data...)
}
