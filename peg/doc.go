// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// peg request wire format
//
// a peg request is carried inside an OP_RETURN output as a tag byte
// followed by a 33 byte block packed to look like a compressed
// public key:
//
//   byte  0      0x02 or 0x03, the low bit is the short position flag
//   bytes 1-3    three character fiat ticker, uppercase ASCII
//   bytes 4-11   amount magnitude, 1e8 fixed point, little endian
//   byte  12     address type byte
//   bytes 13-32  20 byte hash of the requester's public key
//
// the sign of the amount is carried only by the flag in byte 0; a
// trailing 4 byte little endian field gives the peg chain height the
// request prices against
//
// this layout interoperates with existing peers, so byte order and
// field widths must not change
package peg
