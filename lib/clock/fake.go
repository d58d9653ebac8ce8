// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake returns a FakeClock frozen at initial. Time only moves when
// Advance is called.
func Fake(initial time.Time) *FakeClock {
	fake := &FakeClock{current: initial}
	fake.registered = sync.NewCond(&fake.mu)
	return fake
}

// FakeClock is a deterministic Clock. Safe for concurrent use.
//
// AfterFunc callbacks run synchronously inside Advance, in deadline
// order. Calling Advance from a callback deadlocks.
type FakeClock struct {
	mu         sync.Mutex
	current    time.Time
	pending    []*pendingEvent
	registered *sync.Cond
}

// pendingEvent is a registered ticker or AfterFunc call.
type pendingEvent struct {
	deadline time.Time

	// ticks is set for tickers, callback for AfterFunc.
	ticks    chan time.Time
	callback func()

	period  time.Duration
	stopped bool
	fired   bool
}

// Now returns the fake current time.
func (fake *FakeClock) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.current
}

// NewTicker registers a ticker firing every d of fake time.
func (fake *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()

	ticks := make(chan time.Time, 1)
	event := &pendingEvent{
		deadline: fake.current.Add(d),
		ticks:    ticks,
		period:   d,
	}
	fake.pending = append(fake.pending, event)
	fake.registered.Broadcast()

	return &Ticker{
		C: ticks,
		stopFunc: func() {
			fake.mu.Lock()
			defer fake.mu.Unlock()
			event.stopped = true
		},
	}
}

// AfterFunc registers f to run once fake time passes d.
func (fake *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	if d <= 0 {
		f()
		return &Timer{stopFunc: func() bool { return false }}
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()

	event := &pendingEvent{
		deadline: fake.current.Add(d),
		callback: f,
	}
	fake.pending = append(fake.pending, event)
	fake.registered.Broadcast()

	return &Timer{
		stopFunc: func() bool {
			fake.mu.Lock()
			defer fake.mu.Unlock()
			if event.stopped || event.fired {
				return false
			}
			event.stopped = true
			return true
		},
	}
}

// Advance moves time forward by d and fires every ticker and
// callback whose deadline is reached, in deadline order. A ticker
// spanning several periods fires once per period; ticks that do not
// fit in its buffer are dropped, as with time.Ticker.
func (fake *FakeClock) Advance(d time.Duration) {
	fake.mu.Lock()
	fake.current = fake.current.Add(d)
	target := fake.current
	fake.mu.Unlock()

	for {
		due := fake.takeDue(target)
		if len(due) == 0 {
			return
		}
		sort.Slice(due, func(i, j int) bool {
			return due[i].deadline.Before(due[j].deadline)
		})
		for _, event := range due {
			if event.callback != nil {
				event.callback()
				continue
			}
			select {
			case event.ticks <- target:
			default:
			}
		}
	}
}

// takeDue removes due events from the pending list, re-arms tickers
// for their next period and returns what should fire now.
func (fake *FakeClock) takeDue(target time.Time) []*pendingEvent {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	var due, remaining []*pendingEvent
	for _, event := range fake.pending {
		switch {
		case event.stopped:
		case !event.deadline.After(target):
			due = append(due, event)
		default:
			remaining = append(remaining, event)
		}
	}
	for _, event := range due {
		if event.period > 0 {
			event.deadline = event.deadline.Add(event.period)
			remaining = append(remaining, event)
		} else {
			event.fired = true
		}
	}
	fake.pending = remaining
	return due
}

// WaitForTimers blocks until at least n tickers or timers are
// pending.
func (fake *FakeClock) WaitForTimers(n int) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	for fake.pendingLocked() < n {
		fake.registered.Wait()
	}
}

// PendingCount returns how many tickers and timers are registered
// and not stopped.
func (fake *FakeClock) PendingCount() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.pendingLocked()
}

func (fake *FakeClock) pendingLocked() int {
	count := 0
	for _, event := range fake.pending {
		if !event.stopped {
			count++
		}
	}
	return count
}
