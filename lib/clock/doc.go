// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Structs that need time hold a Clock field. The command wires
// Real(); tests wire Fake(start) and drive time explicitly:
//
//	fake := clock.Fake(time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC))
//	ticker := countdown.Start(fake, target, time.Second)
//	fake.Advance(time.Second) // exactly one tick, no sleeping
//
// WaitForTimers blocks until a goroutine has registered its ticker or
// timer, which removes the race between registration and Advance.
package clock
