// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/bitmark-inc/pegd/background"
)

type counter struct {
	started int32
	stopped int32
}

func (c *counter) Run(args interface{}, shutdown <-chan struct{}) {
	atomic.AddInt32(&c.started, 1)
	<-shutdown
	atomic.AddInt32(&c.stopped, 1)
}

func TestStartStop(t *testing.T) {

	c1 := &counter{}
	c2 := &counter{}

	processes := background.Processes{c1, c2}

	bg := background.Start(processes, nil)

	// allow goroutines to start
	time.Sleep(20 * time.Millisecond)

	if 1 != atomic.LoadInt32(&c1.started) || 1 != atomic.LoadInt32(&c2.started) {
		t.Fatalf("processes did not start")
	}

	bg.Stop()

	if 1 != atomic.LoadInt32(&c1.stopped) || 1 != atomic.LoadInt32(&c2.stopped) {
		t.Fatalf("processes did not stop")
	}
}

func TestStopNil(t *testing.T) {
	var bg *background.T
	bg.Stop() // must not panic
}
