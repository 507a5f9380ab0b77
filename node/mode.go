// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"github.com/bitmark-inc/pegd/fault"
)

// Mode - how the daemon reaches a coin's chain
type Mode int

// possible modes, stable for a client's lifetime
const (
	RemoteOnly Mode = iota // no embedded node, JSON-RPC passthrough
	EmbeddedFull
	EmbeddedValidating
)

// ParseMode - convert a configuration string to a Mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "remote":
		return RemoteOnly, nil
	case "full":
		return EmbeddedFull, nil
	case "validating":
		return EmbeddedValidating, nil
	default:
		return RemoteOnly, fault.ErrInvalidMode
	}
}

// String - configuration string form of a Mode
func (m Mode) String() string {
	switch m {
	case RemoteOnly:
		return "remote"
	case EmbeddedFull:
		return "full"
	case EmbeddedValidating:
		return "validating"
	default:
		return "unknown"
	}
}

// IsEmbedded - true for both embedded modes
func (m Mode) IsEmbedded() bool {
	return RemoteOnly != m
}
