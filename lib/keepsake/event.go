// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keepsake

import (
	"strings"
	"time"
)

// Event describes the night a keepsake commemorates. Everything on
// the card that is not the holder's name comes from here.
type Event struct {
	// Name is the headline on the card, e.g. "Buray — Harbiye".
	Name string

	// Details is the date/venue line under the headline.
	Details string

	// Tag is mixed into the ticket code so codes are namespaced per
	// event. Changing it changes every code.
	Tag string

	// Target is the moment the countdown runs to.
	Target time.Time

	// TicketPrefix precedes the derived code in the ticket ID.
	TicketPrefix string

	// FileSlug is embedded in exported file names.
	FileSlug string

	// Hashtags are printed on the wide card ribbon and appended to
	// share text.
	Hashtags []string

	// ShareTitle is the native share sheet title.
	ShareTitle string

	// ShareDate is the short local date used in the messaging
	// fallback text, e.g. "7 Kasım".
	ShareDate string

	// ShareURL is the page shared alongside the text. Optional.
	ShareURL string
}

// trt is Turkey Time (UTC+03:00, no DST).
var trt = time.FixedZone("TRT", 3*60*60)

// DefaultEvent returns the Buray — Harbiye edition: 7 November 2025,
// 21:00 Istanbul time.
func DefaultEvent() Event {
	return Event{
		Name:         "Buray — Harbiye",
		Details:      "7 November 2025 • Harbiye Cemil Topuzlu Open-Air Theatre • Istanbul",
		Tag:          "7-Nov-2025",
		Target:       time.Date(2025, time.November, 7, 21, 0, 0, 0, trt),
		TicketPrefix: "HRB25-",
		FileSlug:     "Buray-Harbiye-2025",
		Hashtags:     []string{"#BurayHarbiye", "#7Kasım"},
		ShareTitle:   "Buray — Harbiye Hatıra Bileti",
		ShareDate:    "7 Kasım",
	}
}

// HashtagLine joins the hashtags with single spaces.
func (event Event) HashtagLine() string {
	return strings.Join(event.Hashtags, " ")
}

// PlaceholderTicketID is shown on the card before a ticket exists.
func (event Event) PlaceholderTicketID() string {
	return event.TicketPrefix + "XXXXXX"
}
