// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package keepsake is the ticket view-model: the name fields, the
// chosen theme and layout, the generated ticket, and the countdown
// text shown on the card.
//
// The [ViewModel] is a two-state machine. It starts Idle; a
// successful [ViewModel.Generate] moves it to Generated, and later
// generations re-enter Generated with the new record. Field edits and
// theme or layout changes never touch the ticket. Editing a name after
// generation leaves the ticket in place and marks it [ViewModel.Stale]
// so the caller can prompt for regeneration.
//
// Side effects live in [Exporter], which works from an immutable
// [Snapshot]: rendering and rasterizing through a [Renderer], writing
// the PNG to disk, and handing results to the platform capabilities
// (share sheet, link opener, clipboard). A snapshot taken on the UI
// thread can be exported on another goroutine without racing later
// edits.
//
//	model := keepsake.New(keepsake.Options{Event: keepsake.DefaultEvent()})
//	model.SetFirstName("Ayşe")
//	model.SetLastName("yılmaz") // stored as "YILMAZ"
//	ticket, err := model.Generate()
package keepsake
