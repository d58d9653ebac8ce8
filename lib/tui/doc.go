// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal building blocks keepsake's
// interactive editor is assembled from: the chrome color theme,
// dropdown pickers with fuzzy narrowing, ANSI-aware overlay splicing,
// and the fade timing used to flash a freshly generated ticket.
//
// Components are plain values driven by the owning bubbletea model.
// None of them issue commands or read the clock; the model passes
// time in and decides when to re-render.
package tui
