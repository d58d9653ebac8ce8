// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package render paints keepsake cards as PNG images.
//
// [CardRenderer] implements [keepsake.Renderer]. Render captures a
// snapshot and fixes the logical layout size (840x360 for the wide
// card, 432x768 for the story card); Rasterize paints it at the
// requested scale and encodes it. Layout is expressed in logical
// units and multiplied by the scale at paint time, so the story card
// at scale 2.5 lands on 1080x1920 pixels.
//
// Text uses the Go font family, which covers the Turkish letters
// (ş, ı, ğ, İ) and the punctuation the card prints. Fonts are parsed
// once per process; faces are created per rasterization because
// opentype faces carry mutable glyph buffers and exports may run
// concurrently.
package render
