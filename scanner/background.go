// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scanner

import (
	"time"
)

const (
	catchupDelay      = 100 * time.Millisecond // between bounded iterations
	retryDelay        = 3 * time.Second        // after a coin level failure
	realtimePollDelay = 60 * time.Second       // once the tip is reached
)

// Run - polling loop for the background processor
func (s *Scanner) Run(args interface{}, shutdown <-chan struct{}) {

	s.log.Info("starting…")

loop:
	for {
		delay := catchupDelay

		realtime, err := s.Iterate()
		if nil != err {
			delay = retryDelay
		} else if 0 != realtime {
			s.log.Debugf("realtime at: %d height: %d", realtime, s.scanHeight)
			delay = realtimePollDelay
		}

		select {
		case <-shutdown:
			break loop
		case <-time.After(delay):
		}
	}

	s.log.Info("finished")
}
