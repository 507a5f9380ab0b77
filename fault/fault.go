// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// error instances
//
// Provides a single instance of errors to allow easy comparison
package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised      = ExistsError("already initialised")
	ErrConnectFail             = ProcessError("connect fail")
	ErrInvalidChain            = InvalidError("invalid chain")
	ErrInvalidCoinSymbol       = InvalidError("invalid coin symbol")
	ErrInvalidCount            = InvalidError("invalid count")
	ErrInvalidCursor           = InvalidError("invalid cursor")
	ErrInvalidLoggerChannel    = InvalidError("invalid logger channel")
	ErrInvalidMode             = InvalidError("invalid node mode")
	ErrInvalidNotaryPubkey     = InvalidError("invalid notary public key")
	ErrInvalidPegAddress       = InvalidError("invalid peg address")
	ErrInvalidPegKey           = InvalidError("invalid peg pseudo-key")
	ErrInvalidPushData         = InvalidError("invalid push data")
	ErrInvalidStructure        = InvalidError("invalid structure")
	ErrKeyNotFound             = NotFoundError("key not found")
	ErrMissingParameters       = InvalidError("missing parameters")
	ErrNoEmbeddedNode          = ProcessError("no embedded node attached")
	ErrNotInitialised          = NotFoundError("not initialised")
	ErrPegAddressMissing       = InvalidError("peg address is missing")
	ErrRateLimiting            = ProcessError("rate limiting")
	ErrTransactionNotFound     = NotFoundError("transaction not found")
	ErrWrongNetworkForPegChain = InvalidError("wrong network for peg chain")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
