// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay lines placed at (anchorX, anchorY) in screen coordinates.
// Truncation is ANSI-aware, so escape sequences in the view survive
// on both sides of the overlay. Lines that fall outside the view are
// dropped.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}
	if anchorX < 0 {
		anchorX = 0
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for offset, overlayLine := range overlayLines {
		row := anchorY + offset
		if row < 0 || row >= len(viewLines) {
			continue
		}

		viewLine := viewLines[row]
		viewLineWidth := ansi.StringWidth(viewLine)

		var result strings.Builder
		if anchorX > 0 {
			prefix := ansi.Truncate(viewLine, anchorX, "")
			result.WriteString(prefix)
			// Short lines need padding so the overlay lands at anchorX.
			if gap := anchorX - ansi.StringWidth(prefix); gap > 0 {
				result.WriteString(strings.Repeat(" ", gap))
			}
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		if suffixStart := anchorX + overlayWidth; suffixStart < viewLineWidth {
			result.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}

		viewLines[row] = result.String()
	}

	return strings.Join(viewLines, "\n")
}

// PadOverlayLine pads styled content for the inner area out to the
// full width with background-colored spaces, producing
// " content  " with the background applied to the padding.
func PadOverlayLine(styledContent string, innerWidth, totalWidth int, backgroundStyle lipgloss.Style) string {
	contentWidth := ansi.StringWidth(styledContent)
	if contentWidth > innerWidth {
		styledContent = ansi.Truncate(styledContent, innerWidth, "…")
		contentWidth = ansi.StringWidth(styledContent)
	}
	rightPad := totalWidth - 1 - contentWidth
	if rightPad < 0 {
		rightPad = 0
	}
	return backgroundStyle.Render(" ") +
		styledContent +
		backgroundStyle.Render(strings.Repeat(" ", rightPad))
}
