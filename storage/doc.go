// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// a single LevelDB database divided into key-prefixed pools; all
// exported pools are created by Initialise and must not be used
// before that call or after Finalise
//
// recently written values are kept in an expiring cache so that a
// read immediately after a write does not touch the disk
package storage
