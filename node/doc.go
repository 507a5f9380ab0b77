// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// uniform query and broadcast facade over one tracked coin daemon
//
// a client is created in one of three modes and the mode never
// changes for the client's lifetime: remote-only translates every
// operation into a JSON-RPC request to a configured external node;
// the two embedded modes read the locally attached node's state
// through the Embedded collaborator and resolve signing keys through
// the Keystore collaborator
package node
