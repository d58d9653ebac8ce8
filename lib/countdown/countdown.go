// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package countdown formats the time left until the event and owns
// the repeating tick that keeps that text current.
//
// Format and FormatMillis are pure: they recompute from scratch on
// every call and can be called redundantly. The Ticker is the only
// resource in the package; whoever starts one stops it.
package countdown

import (
	"fmt"
	"sync"
	"time"

	"github.com/bureau-foundation/keepsake/lib/clock"
)

// Terminal is the text shown once the target time has been reached.
const Terminal = "now"

// DefaultInterval is the tick period used by the interactive view.
const DefaultInterval = time.Second

const (
	minuteMillis = int64(60 * 1000)
	hourMillis   = 60 * minuteMillis
	dayMillis    = 24 * hourMillis
)

// FormatMillis returns "<days>d <HH>h <MM>m" for the time remaining
// between two Unix millisecond timestamps, or Terminal when none is
// left. Days are 24 hours; there is no calendar arithmetic. Seconds
// are truncated.
func FormatMillis(nowMillis, targetMillis int64) string {
	remaining := targetMillis - nowMillis
	if remaining <= 0 {
		return Terminal
	}
	days := remaining / dayMillis
	hours := (remaining % dayMillis) / hourMillis
	minutes := (remaining % hourMillis) / minuteMillis
	return fmt.Sprintf("%dd %02dh %02dm", days, hours, minutes)
}

// Format is FormatMillis over time.Time values.
func Format(now, target time.Time) string {
	return FormatMillis(now.UnixMilli(), target.UnixMilli())
}

// Ticker recomputes the countdown text on every tick of a clock and
// publishes it on C. Start emits the current text immediately, so the
// first value is available before the first period elapses.
//
// Stop must be called exactly once by the owner; further calls are
// no-ops.
type Ticker struct {
	clock  clock.Clock
	target time.Time
	ticker *clock.Ticker

	values   chan string
	done     chan struct{}
	stopOnce sync.Once
	stopped  chan struct{}
}

// Start acquires a clock ticker firing every interval and begins
// publishing countdown text toward target.
func Start(source clock.Clock, target time.Time, interval time.Duration) *Ticker {
	countdown := &Ticker{
		clock:   source,
		target:  target,
		ticker:  source.NewTicker(interval),
		values:  make(chan string, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	countdown.publish(Format(source.Now(), target))
	go countdown.run()
	return countdown
}

// C returns the channel carrying countdown text. It holds at most one
// value; a slow reader sees the latest text, never a backlog. C is
// never closed.
func (countdown *Ticker) C() <-chan string {
	return countdown.values
}

// Target returns the time being counted down to.
func (countdown *Ticker) Target() time.Time {
	return countdown.target
}

// Stop releases the clock ticker and ends the publishing goroutine.
// It returns after the goroutine has exited.
func (countdown *Ticker) Stop() {
	countdown.stopOnce.Do(func() {
		countdown.ticker.Stop()
		close(countdown.done)
	})
	<-countdown.stopped
}

func (countdown *Ticker) run() {
	defer close(countdown.stopped)
	for {
		select {
		case <-countdown.done:
			return
		case <-countdown.ticker.C:
			countdown.publish(Format(countdown.clock.Now(), countdown.target))
		}
	}
}

// publish replaces any unread value with text. Only the run goroutine
// and Start (before run begins) publish, so the drain-then-send cannot
// race with another sender.
func (countdown *Ticker) publish(text string) {
	select {
	case <-countdown.values:
	default:
	}
	countdown.values <- text
}
