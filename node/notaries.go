// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"encoding/hex"
)

// MaximumNotaries - capacity of a notary set
const MaximumNotaries = 64

// NotaryKey - one compressed public key from the notary registry
type NotaryKey [33]byte

// Notaries - the notary set elected at a height
//
// a response with more than MaximumNotaries entries is clamped with a
// warning, not treated as an error; entries that fail to decode are
// skipped with a diagnostic
func (c *Client) Notaries(height uint64) ([]NotaryKey, error) {

	var reply struct {
		Notaries []struct {
			Pubkey string `json:"pubkey"`
		} `json:"notaries"`
	}
	err := c.Call("notaries", []interface{}{heightString(height)}, &reply)
	if nil != err {
		return nil, err
	}

	count := len(reply.Notaries)
	if count > MaximumNotaries {
		c.log.Warnf("notary count: %d exceeds: %d  clamping", count, MaximumNotaries)
		count = MaximumNotaries
	}

	keys := make([]NotaryKey, 0, count)
	for i := 0; i < count; i += 1 {
		pubkey := reply.Notaries[i].Pubkey
		if hex.EncodedLen(33) != len(pubkey) {
			c.log.Errorf("notary: %d of %d invalid pubkey: %q", i, count, pubkey)
			continue
		}
		key := NotaryKey{}
		if _, err := hex.Decode(key[:], []byte(pubkey)); nil != err {
			c.log.Errorf("notary: %d of %d pubkey hex error: %s", i, count, err)
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}
