// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// fixed point amounts
//
// all amounts on the wire are decimal strings with 8 fractional
// digits; internally they are 64 bit integers scaled by 1e8
package satoshi

import (
	"fmt"
)

// Scale - the fixed point scale factor
const Scale = 100000000

// FromByteString - convert a string to a Satoshi value
//
// i.e. "0.00000001" will convert to uint64(1)
//
// Note: Invalid characters are simply ignored and the conversion
//       simply stops after 8 decimal places have been processed.
//       Extra decimal points will also be ignored.
func FromByteString(amount []byte) uint64 {

	s := uint64(0)
	point := false
	decimals := 0

get_digits:
	for _, b := range amount {
		if b >= '0' && b <= '9' {
			s *= 10
			s += uint64(b - '0')
			if point {
				decimals += 1
				if decimals >= 8 {
					break get_digits
				}
			}
		} else if '.' == b {
			point = true
		}
	}
	for decimals < 8 {
		s *= 10
		decimals += 1
	}

	return s
}

// String - format a Satoshi value as a decimal string
//
// i.e. uint64(1) will format as "0.00000001"
func String(s uint64) string {
	return fmt.Sprintf("%d.%08d", s/Scale, s%Scale)
}
