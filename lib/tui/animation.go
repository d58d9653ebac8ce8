// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"
)

// PulseDuration is how long a pulse highlight lasts. Intensity starts
// at 1.0 and decays linearly to 0.0 over this duration.
const PulseDuration = 900 * time.Millisecond

// PulseTickInterval is the re-render interval while a pulse is
// active. 50ms gives ~20fps for a smooth fade.
const PulseTickInterval = 50 * time.Millisecond

// Pulse is a one-shot highlight that fades out. Igniting it again
// restarts the fade. The zero value is idle.
type Pulse struct {
	ignition time.Time
	duration time.Duration
}

// NewPulse creates an idle pulse that fades over duration. A
// non-positive duration uses [PulseDuration].
func NewPulse(duration time.Duration) Pulse {
	if duration <= 0 {
		duration = PulseDuration
	}
	return Pulse{duration: duration}
}

// Ignite starts (or restarts) the pulse at now.
func (pulse *Pulse) Ignite(now time.Time) {
	if pulse.duration <= 0 {
		pulse.duration = PulseDuration
	}
	pulse.ignition = now
}

// Intensity returns 1.0 at ignition, decaying linearly to 0.0 at the
// end of the duration. An idle pulse returns 0.0.
func (pulse Pulse) Intensity(now time.Time) float64 {
	if pulse.ignition.IsZero() {
		return 0.0
	}
	elapsed := now.Sub(pulse.ignition)
	if elapsed < 0 {
		return 1.0
	}
	if elapsed >= pulse.duration {
		return 0.0
	}
	return 1.0 - float64(elapsed)/float64(pulse.duration)
}

// Active reports whether the pulse still has intensity, meaning the
// tick timer should keep running.
func (pulse Pulse) Active(now time.Time) bool {
	return pulse.Intensity(now) > 0
}
