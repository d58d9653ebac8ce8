// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package keepsakeui is the interactive terminal editor for keepsake
// tickets, built on bubbletea.
//
// The Model owns a [keepsake.ViewModel] and is its only writer: name
// inputs, theme and format pickers and the generate action all mutate
// it from Update. Export and share run as tea.Cmds over a
// [keepsake.Snapshot] taken when the key is pressed, so a slow share
// sheet never observes a half-edited name. Their outcomes come back
// as messages and surface as status-bar notices that fade on their
// own.
//
// The countdown arrives on a channel owned by a [countdown.Ticker];
// the model re-arms a listener after every value and never touches the
// ticker itself. The caller stops it when the program exits.
//
// [RenderCard] draws the terminal rendition of the ticket. The model
// uses it for the preview pane and the CLI uses it for one-shot
// printing.
package keepsakeui
