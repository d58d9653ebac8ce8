// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package capability abstracts the platform services the keepsake
// view hands its output to: a native share sheet, a URL/file opener,
// and image and text clipboards.
//
// Each service is wrapped in a [Capability] that is either Available
// with an implementation or Unavailable. [Detect] probes the host once
// at startup; the resulting [Set] is injected into the view-model,
// which never checks the platform itself. Tests inject fakes built
// from the Func adapters or [None].
//
// Implementations:
//
//   - [CommandSharer] pipes share text into a share command such as
//     termux-share (Android share sheet).
//   - [BrowserOpener] opens links and files with the desktop handler.
//   - [CommandClipboard] pipes PNG bytes into wl-copy or xclip.
//   - [OSC52] copies text through the terminal's OSC 52 escape.
package capability
