// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keepsake

import (
	"image/color"
	"net/url"
	"strings"

	"github.com/bureau-foundation/keepsake/lib/capability"
)

// Background is the opaque fill behind exported cards.
var Background = color.NRGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}

// Fixed card copy shared by the raster and terminal renditions. The
// event-specific strings come from the Event.
const (
	BrandingLabel  = "COMMEMORATIVE TICKET"
	TicketLabel    = "TICKET ID"
	HolderLabel    = "Ad Soyad: "
	CountdownLabel = "GERİ SAYIM"
	EntryNotice    = "This is a keepsake ticket and does not grant entry."
	RibbonText     = "Keep this image as a memory of the night."
)

// Fallback names for when the holder left both fields empty.
const (
	cardNameFallback  = "—"
	fileNameFallback  = "ticket"
	shareNameFallback = "Misafir"
)

// MessagingShareURL is the web endpoint used when there is no native
// share sheet.
const MessagingShareURL = "https://api.whatsapp.com/send"

// ExportOptions controls rasterization.
type ExportOptions struct {
	// Scale multiplies the layout's logical size into pixels.
	Scale float64

	// Background fills the canvas before the card is painted.
	Background color.NRGBA
}

// Snapshot is an immutable copy of the view-model.
type Snapshot struct {
	Event     Event
	FirstName string
	LastName  string
	Theme     Theme
	Format    Format
	Countdown string

	// Ticket is the zero value unless Generated.
	Ticket    Ticket
	Generated bool
	Stale     bool
}

// FullName is the trimmed names joined with a single space, or empty.
func (snapshot Snapshot) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(snapshot.FirstName) + " " + strings.TrimSpace(snapshot.LastName))
}

// DisplayName is the name printed on the card.
func (snapshot Snapshot) DisplayName() string {
	if name := snapshot.FullName(); name != "" {
		return name
	}
	return cardNameFallback
}

// CountdownText is the badge value, or a dash before the first tick.
func (snapshot Snapshot) CountdownText() string {
	if snapshot.Countdown == "" {
		return cardNameFallback
	}
	return snapshot.Countdown
}

// TicketID is the issued ID, or the event placeholder before
// generation.
func (snapshot Snapshot) TicketID() string {
	if snapshot.Generated {
		return snapshot.Ticket.ID
	}
	return snapshot.Event.PlaceholderTicketID()
}

// ExportOptions is the rasterization policy for this snapshot's
// format.
func (snapshot Snapshot) ExportOptions() ExportOptions {
	return ExportOptions{Scale: snapshot.Format.Scale(), Background: Background}
}

// DownloadName is "<name>-<slug>-<layout>.png".
func (snapshot Snapshot) DownloadName() string {
	name := snapshot.FullName()
	if name == "" {
		name = fileNameFallback
	}
	name = strings.NewReplacer("/", "-", `\`, "-").Replace(name)
	return name + "-" + snapshot.Event.FileSlug + "-" + snapshot.Format.FileSuffix() + ".png"
}

func (snapshot Snapshot) shareName() string {
	if name := snapshot.FullName(); name != "" {
		return name
	}
	return shareNameFallback
}

// ShareRequest is the native share sheet payload.
func (snapshot Snapshot) ShareRequest() capability.ShareRequest {
	text := snapshot.shareName() + " için hatıra bileti hazır!"
	if hashtags := snapshot.Event.HashtagLine(); hashtags != "" {
		text += " " + hashtags
	}
	return capability.ShareRequest{
		Title: snapshot.Event.ShareTitle,
		Text:  text,
		URL:   snapshot.Event.ShareURL,
	}
}

// ShareMessage is the text sent through the messaging fallback.
func (snapshot Snapshot) ShareMessage() string {
	message := snapshot.shareName() + " için hatıra biletimi oluşturdum! " + snapshot.Event.Name
	if snapshot.Event.ShareDate != "" {
		message += " (" + snapshot.Event.ShareDate + ")"
	}
	if snapshot.Event.ShareURL != "" {
		message += "\n" + snapshot.Event.ShareURL
	}
	return message
}

// ShareLink is the messaging fallback link carrying ShareMessage.
func (snapshot Snapshot) ShareLink() string {
	return MessagingShareURL + "?text=" + url.QueryEscape(snapshot.ShareMessage())
}
