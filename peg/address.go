// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peg

import (
	"bytes"
	"crypto/sha256"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160"

	"github.com/bitmark-inc/pegd/fault"
)

// Hash160 - RIPEMD160(SHA256(data)), the hash form of a public key
func Hash160(data []byte) [20]byte {
	s := sha256.Sum256(data)
	r := ripemd160.New()
	r.Write(s[:])
	h := [20]byte{}
	copy(h[:], r.Sum(nil))
	return h
}

// Hash160ToAddress - base58check encode a version byte and key hash
func Hash160ToAddress(addressType byte, hash160 [20]byte) string {
	payload := make([]byte, 0, 25)
	payload = append(payload, addressType)
	payload = append(payload, hash160[:]...)
	return base58.Encode(append(payload, checksum(payload)...))
}

// PubkeyToAddress - address of a raw public key
func PubkeyToAddress(addressType byte, pubkey []byte) string {
	return Hash160ToAddress(addressType, Hash160(pubkey))
}

// AddressToHash160 - decode an address back to its version byte and
// key hash, verifying the checksum
func AddressToHash160(address string) (byte, [20]byte, error) {
	hash160 := [20]byte{}

	decoded, err := base58.Decode(address)
	if nil != err {
		return 0, hash160, err
	}
	if 25 != len(decoded) {
		return 0, hash160, fault.ErrInvalidPegAddress
	}
	if !bytes.Equal(checksum(decoded[:21]), decoded[21:]) {
		return 0, hash160, fault.ErrInvalidPegAddress
	}

	copy(hash160[:], decoded[1:21])
	return decoded[0], hash160, nil
}

// ScriptAddress - derive the paying address of a spendable output
// script
//
// handles the pay-to-pubkey and pay-to-pubkey-hash forms; anything
// else has no single address
func ScriptAddress(addressType byte, script []byte) (string, bool) {
	switch {
	case 35 == len(script) && 33 == script[0] && 0xac == script[34]:
		return PubkeyToAddress(addressType, script[1:34]), true

	case 25 == len(script) && 0x76 == script[0] && 0xa9 == script[1] &&
		20 == script[2] && 0x88 == script[23] && 0xac == script[24]:
		hash160 := [20]byte{}
		copy(hash160[:], script[3:23])
		return Hash160ToAddress(addressType, hash160), true
	}
	return "", false
}

// first four bytes of a double SHA256
func checksum(payload []byte) []byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return second[0:4]
}
