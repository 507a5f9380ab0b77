// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peg_test

import (
	"encoding/hex"
	"testing"

	"github.com/bitmark-inc/pegd/peg"
)

// the well known notary funding key and its derived forms
const (
	fundingPubkey  = "020e46e79a2a8d12b9b5d12c7a91adb4e454edfae43c0a0cb805427d2ac7613fd9"
	fundingHash160 = "f1dce4182fce875748c4986b240ff7d7bc3fffb0"
	fundingAddress = "RXL3YXG2ceaB6C5hfJcN4fvmLH2C34knhA"
)

func TestHash160(t *testing.T) {

	pubkey, err := hex.DecodeString(fundingPubkey)
	if nil != err {
		t.Fatalf("hex error: %s", err)
	}

	h := peg.Hash160(pubkey)
	if hex.EncodeToString(h[:]) != fundingHash160 {
		t.Fatalf("hash160: %x  expected: %s", h, fundingHash160)
	}
}

func TestPubkeyToAddress(t *testing.T) {

	pubkey, err := hex.DecodeString(fundingPubkey)
	if nil != err {
		t.Fatalf("hex error: %s", err)
	}

	address := peg.PubkeyToAddress(peg.AddressVersion, pubkey)
	if fundingAddress != address {
		t.Fatalf("address: %q  expected: %q", address, fundingAddress)
	}
}

func TestAddressRoundTrip(t *testing.T) {

	hash160 := [20]byte{}
	hb, _ := hex.DecodeString(fundingHash160)
	copy(hash160[:], hb)

	address := peg.Hash160ToAddress(peg.AddressVersion, hash160)
	if fundingAddress != address {
		t.Fatalf("address: %q  expected: %q", address, fundingAddress)
	}

	addressType, decoded, err := peg.AddressToHash160(address)
	if nil != err {
		t.Fatalf("decode error: %s", err)
	}
	if peg.AddressVersion != addressType {
		t.Fatalf("address type: %d  expected: %d", addressType, peg.AddressVersion)
	}
	if decoded != hash160 {
		t.Fatalf("hash160: %x  expected: %x", decoded, hash160)
	}
}

func TestAddressBadChecksum(t *testing.T) {

	// last character changed
	_, _, err := peg.AddressToHash160("RXL3YXG2ceaB6C5hfJcN4fvmLH2C34knhB")
	if nil == err {
		t.Fatalf("no error for corrupted address")
	}
}

func TestScriptAddress(t *testing.T) {

	pubkey, _ := hex.DecodeString(fundingPubkey)
	hash160, _ := hex.DecodeString(fundingHash160)

	// pay-to-pubkey: 21 <pubkey33> ac
	p2pk := append(append([]byte{33}, pubkey...), 0xac)
	address, ok := peg.ScriptAddress(peg.AddressVersion, p2pk)
	if !ok || fundingAddress != address {
		t.Fatalf("p2pk address: %q, %v  expected: %q", address, ok, fundingAddress)
	}

	// pay-to-pubkey-hash: 76 a9 14 <hash160> 88 ac
	p2pkh := append(append([]byte{0x76, 0xa9, 20}, hash160...), 0x88, 0xac)
	address, ok = peg.ScriptAddress(peg.AddressVersion, p2pkh)
	if !ok || fundingAddress != address {
		t.Fatalf("p2pkh address: %q, %v  expected: %q", address, ok, fundingAddress)
	}

	// op_return is not addressable
	_, ok = peg.ScriptAddress(peg.AddressVersion, []byte{0x6a, 0x01, 0x00})
	if ok {
		t.Fatalf("address derived from op_return script")
	}
}

func TestIsNotaryFundingScript(t *testing.T) {

	p2pk := "21" + fundingPubkey + "ac"
	if !peg.IsNotaryFundingScript(p2pk) {
		t.Fatalf("p2pk funding script not recognised")
	}

	p2pkh := "76a914" + fundingHash160 + "88ac"
	if !peg.IsNotaryFundingScript(p2pkh) {
		t.Fatalf("p2pkh funding script not recognised")
	}

	if peg.IsNotaryFundingScript("6a0100") {
		t.Fatalf("op_return recognised as funding script")
	}
	if peg.IsNotaryFundingScript("21" + fundingPubkey[:64] + "00ac") {
		t.Fatalf("wrong key recognised as funding script")
	}
}
