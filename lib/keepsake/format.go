// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keepsake

import (
	"fmt"
	"strings"
)

// Format selects the card layout. It is presentation only.
type Format string

const (
	// FormatWide is the 21:9 landscape card.
	FormatWide Format = "wide"

	// FormatStory is the 9:16 portrait card sized for stories.
	FormatStory Format = "story"
)

// DefaultFormat is selected at session start on a wide terminal.
const DefaultFormat = FormatWide

// NarrowColumns is the terminal width below which the portrait layout
// is the better default.
const NarrowColumns = 80

// Formats returns every format in picker order.
func Formats() []Format {
	return []Format{FormatWide, FormatStory}
}

// Valid reports whether format is one of Formats().
func (format Format) Valid() bool {
	return format == FormatWide || format == FormatStory
}

// Label is the picker text for the format.
func (format Format) Label() string {
	if format == FormatStory {
		return "Story " + format.Aspect() + " (1080×1920)"
	}
	return "Yatay " + format.Aspect()
}

// Aspect is the card's width:height ratio as printed in the picker.
func (format Format) Aspect() string {
	if format == FormatStory {
		return "9:16"
	}
	return "21:9"
}

// FileSuffix is the layout tag embedded in exported file names.
func (format Format) FileSuffix() string {
	if format == FormatStory {
		return "Story-1080x1920"
	}
	return "Wide-21x9"
}

// Scale is the export pixel ratio: story cards rasterize denser so
// the 432-wide layout lands at 1080 pixels.
func (format Format) Scale() float64 {
	if format == FormatStory {
		return 2.5
	}
	return 2.0
}

// ParseFormat accepts "wide" or "story", case-insensitively.
func ParseFormat(value string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(value)))
	if !format.Valid() {
		return "", fmt.Errorf("%w: %q (want wide or story)", ErrUnknownFormat, value)
	}
	return format, nil
}

// DefaultFormatForWidth picks the initial layout from the terminal
// width in columns. Zero means unknown and keeps the wide default.
func DefaultFormatForWidth(columns int) Format {
	if columns > 0 && columns < NarrowColumns {
		return FormatStory
	}
	return DefaultFormat
}
