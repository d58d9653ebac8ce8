// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/bureau-foundation/keepsake/lib/keepsake"
)

const (
	brandingLabel = keepsake.BrandingLabel
	ticketLabel   = keepsake.TicketLabel
	holderLabel   = keepsake.HolderLabel
	badgeLabel    = keepsake.CountdownLabel
	entryNotice   = keepsake.EntryNotice
	ribbonText    = keepsake.RibbonText
)

var (
	brandingStyle   = textStyle{weight: regular, size: 10, color: withAlpha(zinc300, 0.8), tracking: 0.1, lineHeight: 14}
	headlineStyle   = textStyle{weight: bold, size: 30, color: white, lineHeight: 36}
	holderStyle     = textStyle{weight: regular, size: 12, color: zinc400, lineHeight: 16}
	holderName      = textStyle{weight: medium, size: 12, color: zinc100, lineHeight: 16}
	idLabelStyle    = textStyle{weight: regular, size: 10, color: withAlpha(zinc400, 0.8), tracking: 0.1, lineHeight: 14}
	idStyle         = textStyle{weight: bold, size: 24, color: withAlpha(white, 0.95), tracking: 0.15, lineHeight: 32}
	noticeStyle     = textStyle{weight: regular, size: 10, color: zinc500, lineHeight: 14}
	badgeLabelStyle = textStyle{weight: regular, size: 10, color: withAlpha(zinc300, 0.9), tracking: 0.1, lineHeight: 16}
	badgeValueStyle = textStyle{weight: medium, size: 12, color: withAlpha(white, 0.95), lineHeight: 16}
	ribbonStyle     = textStyle{weight: regular, size: 12, color: withAlpha(zinc300, 0.8), lineHeight: 16}
	hashtagStyle    = textStyle{weight: regular, size: 12, color: zinc400, lineHeight: 16}
)

type cardLayout interface {
	// ribbon is the translucent bottom strip and its corner radius.
	ribbon() (box, float64)
	paint(p *painter, snapshot keepsake.Snapshot, accent color.NRGBA)
}

// accentColor parses a #rrggbb accent. Malformed values paint white.
func accentColor(hex string) color.NRGBA {
	value, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil || len(hex) != 7 {
		return white
	}
	return color.NRGBA{R: uint8(value >> 16), G: uint8(value >> 8), B: uint8(value), A: 0xff}
}

// truncate shortens text with an ellipsis until it fits width.
func (p *painter) truncate(style textStyle, text string, width float64) string {
	if p.measure(style, text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimSpace(string(runes)) + "…"
		if p.measure(style, candidate) <= width {
			return candidate
		}
	}
	return "…"
}

// badge paints the countdown pill with its left edge at x and
// returns its width. Pass measureOnly to size it without painting.
func (p *painter) badge(snapshot keepsake.Snapshot, x, top float64, measureOnly bool) float64 {
	const padX, padY, gap = 12.0, 4.0, 8.0
	value := snapshot.CountdownText()
	labelWidth := p.measure(badgeLabelStyle, badgeLabel)
	width := padX + labelWidth + gap + p.measure(badgeValueStyle, value) + padX
	if measureOnly {
		return width
	}
	height := badgeLabelStyle.lineHeight + 2*padY
	pill := box{x: x, y: top, w: width, h: height}
	p.fill(pill, height/2, withAlpha(black, 0.5))
	p.stroke(pill, height/2, 1, withAlpha(white, 0.15))
	p.text(badgeLabelStyle, x+padX, top+padY, badgeLabel)
	p.text(badgeValueStyle, x+padX+labelWidth+gap, top+padY, value)
	return width
}

// holderRow paints the accent dot and "Ad Soyad: <name>" with its
// left edge at x, fitting the name into maxWidth.
func (p *painter) holderRow(snapshot keepsake.Snapshot, accent color.NRGBA, x, top, maxWidth float64) {
	const dot, gap = 8.0, 8.0
	p.fill(box{x: x, y: top + (holderStyle.lineHeight-dot)/2, w: dot, h: dot}, dot/2, accent)
	x += dot + gap
	x += p.text(holderStyle, x, top, holderLabel)
	p.text(holderName, x, top, p.truncate(holderName, snapshot.DisplayName(), maxWidth-dot-gap-p.measure(holderStyle, holderLabel)))
}

func (p *painter) holderRowWidth(snapshot keepsake.Snapshot, maxWidth float64) float64 {
	const dot, gap = 8.0, 8.0
	label := p.measure(holderStyle, holderLabel)
	name := p.measure(holderName, p.truncate(holderName, snapshot.DisplayName(), maxWidth-dot-gap-label))
	return dot + gap + label + name
}

// codeGrid paints the decorative 3×3 block in a white tile.
func (p *painter) codeGrid(tile box) {
	const padding, gap = 8.0, 4.0
	p.fill(tile, 8, withAlpha(white, 0.95))
	cell := (tile.w - 2*padding - 2*gap) / 3
	for index := 0; index < 9; index++ {
		row, column := float64(index/3), float64(index%3)
		cellColor := white
		if index%2 == 0 {
			cellColor = zinc900
		}
		p.fill(box{
			x: tile.x + padding + column*(cell+gap),
			y: tile.y + padding + row*(cell+gap),
			w: cell,
			h: cell,
		}, 0, cellColor)
	}
}

// wideLayout is the 21:9 card: branding on the left, ticket ID and
// code grid on the right, hashtag ribbon along the bottom edge.
type wideLayout struct{}

func (wideLayout) ribbon() (box, float64) {
	return box{x: 0, y: WideHeight - 40, w: WideWidth, h: 40}, 0
}

func (layout wideLayout) paint(p *painter, snapshot keepsake.Snapshot, accent color.NRGBA) {
	const (
		padding   = 32.0
		middle    = WideHeight / 2
		codeGap   = 28.0
		gridGap   = 20.0
		gridSize  = 96.0
		columnGap = 24.0
	)

	badgeWidth := p.badge(snapshot, 0, 0, true)
	p.badge(snapshot, WideWidth-12-badgeWidth, 12, false)

	// Right block: ticket ID column, dashed divider, code grid.
	ticketID := snapshot.TicketID()
	codeWidth := math.Max(p.measure(idStyle, ticketID), math.Max(p.measure(noticeStyle, entryNotice), p.measure(idLabelStyle, ticketLabel)))
	codeHeight := idLabelStyle.lineHeight + idStyle.lineHeight + 8 + noticeStyle.lineHeight
	rightX := WideWidth - padding - (codeWidth + codeGap + 1 + gridGap + gridSize)
	codeTop := middle - codeHeight/2

	p.text(idLabelStyle, rightX, codeTop, ticketLabel)
	p.text(idStyle, rightX, codeTop+idLabelStyle.lineHeight, ticketID)
	p.text(noticeStyle, rightX, codeTop+idLabelStyle.lineHeight+idStyle.lineHeight+8, entryNotice)
	dividerX := rightX + codeWidth + codeGap
	p.dashedVertical(dividerX, codeTop, codeTop+codeHeight, withAlpha(white, 0.2))
	p.codeGrid(box{x: dividerX + 1 + gridGap, y: middle - gridSize/2, w: gridSize, h: gridSize})

	// Left block: branding.
	leftWidth := rightX - padding - columnGap
	details := p.wrap(detailsStyle(keepsake.FormatWide), snapshot.Event.Details, leftWidth)
	height := brandingStyle.lineHeight + 12 + headlineStyle.lineHeight + 12 +
		float64(len(details))*detailsStyle(keepsake.FormatWide).lineHeight + 12 + 4 + holderStyle.lineHeight
	top := middle - height/2

	p.text(brandingStyle, padding, top, brandingLabel)
	top += brandingStyle.lineHeight + 12
	p.text(headlineStyle, padding, top, p.truncate(headlineStyle, snapshot.Event.Name, leftWidth))
	top += headlineStyle.lineHeight + 12
	for _, line := range details {
		p.text(detailsStyle(keepsake.FormatWide), padding, top, line)
		top += detailsStyle(keepsake.FormatWide).lineHeight
	}
	top += 12 + 4
	p.holderRow(snapshot, accent, padding, top, leftWidth)

	ribbon, _ := layout.ribbon()
	textTop := ribbon.y + (ribbon.h-ribbonStyle.lineHeight)/2
	p.text(ribbonStyle, padding, textTop, ribbonText)
	if hashtags := snapshot.Event.HashtagLine(); hashtags != "" {
		p.rightAligned(hashtagStyle, WideWidth-padding, textTop, hashtags)
	}
}

// storyLayout is the 9:16 card: everything centered in one column,
// branding at the top and the ticket block above a floating ribbon.
type storyLayout struct{}

func (storyLayout) ribbon() (box, float64) {
	return box{x: 20, y: StoryHeight - 12 - 40, w: StoryWidth - 40, h: 40}, 12
}

func (layout storyLayout) paint(p *painter, snapshot keepsake.Snapshot, accent color.NRGBA) {
	const (
		padding  = 28.0
		center   = StoryWidth / 2
		width    = StoryWidth - 2*padding
		gridSize = 112.0
	)

	badgeWidth := p.badge(snapshot, 0, 0, true)
	p.badge(snapshot, center-badgeWidth/2, 16, false)

	top := 56.0
	p.centered(brandingStyle, center, top, brandingLabel)
	top += brandingStyle.lineHeight + 8
	p.centered(headlineStyle, center, top, p.truncate(headlineStyle, snapshot.Event.Name, width))
	top += headlineStyle.lineHeight + 8
	style := detailsStyle(keepsake.FormatStory)
	for _, line := range p.wrap(style, snapshot.Event.Details, width) {
		p.centered(style, center, top, line)
		top += style.lineHeight
	}
	top += 8 + 4
	rowWidth := p.holderRowWidth(snapshot, width)
	p.holderRow(snapshot, accent, center-rowWidth/2, top, width)

	ribbon, _ := layout.ribbon()
	notice := p.wrap(noticeStyle, entryNotice, width)
	stackHeight := idLabelStyle.lineHeight + idStyle.lineHeight + 8 +
		float64(len(notice))*noticeStyle.lineHeight + 12 + gridSize
	top = ribbon.y - 20 - stackHeight

	p.centered(idLabelStyle, center, top, ticketLabel)
	top += idLabelStyle.lineHeight
	p.centered(idStyle, center, top, snapshot.TicketID())
	top += idStyle.lineHeight + 8
	for _, line := range notice {
		p.centered(noticeStyle, center, top, line)
		top += noticeStyle.lineHeight
	}
	top += 12
	p.codeGrid(box{x: center - gridSize/2, y: top, w: gridSize, h: gridSize})

	p.text(ribbonStyle, ribbon.x+20, ribbon.y+(ribbon.h-ribbonStyle.lineHeight)/2, ribbonText)
}

func detailsStyle(format keepsake.Format) textStyle {
	if format == keepsake.FormatStory {
		return textStyle{weight: regular, size: 12, color: withAlpha(zinc300, 0.9), lineHeight: 16}
	}
	return textStyle{weight: regular, size: 14, color: withAlpha(zinc300, 0.9), lineHeight: 20}
}
