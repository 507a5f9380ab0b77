// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package scanner - issuance scanner
//
// one scanner walks one external chain looking for data carrier
// outputs tagged as peg requests; each iteration catches up a bounded
// number of blocks so a long-offline chain cannot monopolise a run
//
// fetch failures are transient: the failed height is simply retried
// on the next iteration, which is safe because ledger writes are
// keyed by transaction id and checked before writing
package scanner
