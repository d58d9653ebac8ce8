// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock is the time source for everything in keepsake that reads the
// wall clock or schedules work: the countdown ticker and the
// post-generate highlight. Production code uses Real(); tests use
// Fake() and move time with Advance.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// NewTicker returns a Ticker delivering ticks on C every d.
	// Panics if d <= 0.
	NewTicker(d time.Duration) *Ticker

	// AfterFunc calls f once d has elapsed. The returned Timer can
	// cancel the call. If d <= 0, f runs immediately (in a new
	// goroutine for Real, synchronously for Fake).
	AfterFunc(d time.Duration, f func()) *Timer
}

// Ticker delivers periodic ticks on C. C has capacity 1; a consumer
// that falls behind loses ticks instead of queueing them.
type Ticker struct {
	C <-chan time.Time

	stopFunc func()
}

// Stop turns the ticker off. C is not closed.
func (ticker *Ticker) Stop() { ticker.stopFunc() }

// Timer is a pending AfterFunc call.
type Timer struct {
	stopFunc func() bool
}

// Stop cancels the pending call. Returns false if the call already
// ran or the timer was already stopped.
func (timer *Timer) Stop() bool { return timer.stopFunc() }
