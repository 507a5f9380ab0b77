// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package funding

import (
	"time"

	"github.com/bitmark-inc/pegd/ledger"
)

const checkInterval = 60 * time.Second

// Run - polling loop for the background processor
//
// each cycle checks every configured notary address and logs the
// funding state against the pending issuance total
func (w *Watcher) Run(args interface{}, shutdown <-chan struct{}) {

	w.log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(checkInterval):
			w.checkAll()
		}
	}

	w.log.Info("finished")
}

func (w *Watcher) checkAll() {

	funded := 0
	for _, address := range w.addresses {
		count, txID, vout, err := w.HaveUTXO(address)
		if nil != err {
			w.log.Warnf("address: %s  error: %s", address, err)
			continue
		}
		if count > 0 {
			w.log.Infof("address: %s candidates: %d selected: %s:%d", address, count, txID, vout)
			funded += 1
		}
	}
	w.log.Infof("funded: %d/%d addresses  pending issuance: %d", funded, len(w.addresses), ledger.Total())
}
