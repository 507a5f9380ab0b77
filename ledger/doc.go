// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - record of observed peg requests
//
// every fiat denominated request discovered by a scanner is recorded
// here exactly once, keyed by its transaction id; a later sighting of
// the same transaction only updates the mark flag
//
// entries persist across restarts when the storage pools are open
package ledger
