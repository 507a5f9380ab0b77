// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peg

// global constants for the peg protocol
const (
	// NativeSymbol - ticker of the peg chain's own unit; requests
	// denominated in this are never re-priced
	NativeSymbol = "KMD"

	// AddressVersion - pay-to-pubkey-hash version byte on the peg chain
	AddressVersion byte = 60

	// FundingDenomination - exact output value (1e8 fixed point) a
	// notary funding utxo must hold to be spendable for settlement
	FundingDenomination uint64 = 10000

	// MaximumScriptBytes - outputs with larger scripts are skipped
	MaximumScriptBytes = 10000

	// OpReturn - opcode starting a data carrier output script
	OpReturn byte = 0x6a

	// tag bytes immediately after the push data length
	TagWithdraw byte = 'W' // withdraw / mint request
	TagIssued   byte = 'X' // already issued marker
)

// the shared notary funding key; vout 0 of a funding transaction pays
// to this key (or its hash) and is excluded from metadata scanning
const (
	fundingPubkeyHex  = "020e46e79a2a8d12b9b5d12c7a91adb4e454edfae43c0a0cb805427d2ac7613fd9"
	fundingHash160Hex = "f1dce4182fce875748c4986b240ff7d7bc3fffb0"
)

// IsNotaryFundingScript - check a hex script for the hard coded
// notary funding signature
//
// matches either the pay-to-pubkey form (35 byte script, key at byte
// offset 1) or the pay-to-pubkey-hash form (25 byte script, hash at
// byte offset 3)
func IsNotaryFundingScript(hexScript string) bool {
	switch len(hexScript) >> 1 {
	case 35:
		return hexScript[2:68] == fundingPubkeyHex
	case 25:
		return hexScript[6:46] == fundingHash160Hex
	}
	return false
}
