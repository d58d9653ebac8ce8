// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keepsakeui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/keepsake/lib/keepsake"
	"github.com/bureau-foundation/keepsake/lib/tui"
)

// Outer card widths in columns, border included.
const (
	WideCardWidth  = 76
	StoryCardWidth = 48
)

// codeGrid is the 3×3 block pattern of the raster card, one row per
// line.
var codeGrid = []string{"█ █", " █ ", "█ █"}

type cardStyles struct {
	faint    lipgloss.Style
	headline lipgloss.Style
	details  lipgloss.Style
	name     lipgloss.Style
	dot      lipgloss.Style
	id       lipgloss.Style
	fine     lipgloss.Style
	badge    lipgloss.Style
	grid     lipgloss.Style
	hashtags lipgloss.Style
}

func newCardStyles(chrome tui.Theme, accent lipgloss.Color) cardStyles {
	return cardStyles{
		faint:    lipgloss.NewStyle().Foreground(chrome.FaintText),
		headline: lipgloss.NewStyle().Foreground(chrome.HeaderForeground).Bold(true),
		details:  lipgloss.NewStyle().Foreground(chrome.NormalText),
		name:     lipgloss.NewStyle().Foreground(chrome.HeaderForeground).Bold(true),
		dot:      lipgloss.NewStyle().Foreground(accent),
		id:       lipgloss.NewStyle().Foreground(chrome.HeaderForeground).Bold(true),
		fine:     lipgloss.NewStyle().Foreground(chrome.HelpText),
		badge:    lipgloss.NewStyle().Foreground(chrome.HeaderForeground).Background(chrome.SelectedBackground).Padding(0, 1),
		grid:     lipgloss.NewStyle().Foreground(chrome.HeaderForeground),
		hashtags: lipgloss.NewStyle().Foreground(accent),
	}
}

// RenderCard draws the terminal rendition of a ticket: the same copy
// and arrangement as the exported image, in the wide or story layout.
// pulse in [0, 1] lights the border in the theme accent; pass 0 for a
// resting card.
func RenderCard(snapshot keepsake.Snapshot, chrome tui.Theme, pulse float64) string {
	accent := lipgloss.Color(snapshot.Theme.Palette().Accent)
	styles := newCardStyles(chrome, accent)

	var body string
	if snapshot.Format == keepsake.FormatStory {
		body = storyCard(snapshot, styles, StoryCardWidth-4)
	} else {
		body = wideCard(snapshot, styles, WideCardWidth-4)
	}

	border := lipgloss.RoundedBorder()
	borderColor := chrome.CardBorder
	if pulse > 0 {
		borderColor = accent
		if pulse > 0.5 {
			border = lipgloss.ThickBorder()
		}
	}
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(body)
}

func (styles cardStyles) countdownBadge(snapshot keepsake.Snapshot) string {
	return styles.badge.Render(keepsake.CountdownLabel + "  " + snapshot.CountdownText())
}

func (styles cardStyles) holder(snapshot keepsake.Snapshot, width int) string {
	prefix := styles.dot.Render("●") + " " + styles.faint.Render(keepsake.HolderLabel)
	room := width - ansi.StringWidth(prefix)
	return prefix + styles.name.Render(ansi.Truncate(snapshot.DisplayName(), room, "…"))
}

func (styles cardStyles) codeBlock() string {
	return styles.grid.Render(strings.Join(codeGrid, "\n"))
}

func wideCard(snapshot keepsake.Snapshot, styles cardStyles, width int) string {
	event := snapshot.Event

	header := spread(styles.faint.Render(keepsake.BrandingLabel), styles.countdownBadge(snapshot), width)

	codeWidth := max(ansi.StringWidth(snapshot.TicketID()), 24)
	leftWidth := width - codeWidth - len(codeGrid[0]) - 6

	left := lipgloss.JoinVertical(lipgloss.Left,
		styles.headline.Render(event.Name),
		styles.details.Width(leftWidth).Render(event.Details),
		"",
		styles.holder(snapshot, leftWidth),
	)
	left = lipgloss.NewStyle().Width(leftWidth).Render(left)

	code := lipgloss.JoinVertical(lipgloss.Left,
		styles.faint.Render(keepsake.TicketLabel),
		styles.id.Render(snapshot.TicketID()),
		styles.fine.Width(codeWidth).Render(keepsake.EntryNotice),
	)
	divider := styles.faint.Render(strings.TrimSuffix(strings.Repeat("┊\n", lipgloss.Height(code)), "\n"))

	middle := lipgloss.JoinHorizontal(lipgloss.Top,
		left, " ", divider, " ", code, "  ", styles.codeBlock(),
	)

	ribbon := spread(styles.faint.Render(keepsake.RibbonText), styles.hashtags.Render(event.HashtagLine()), width)

	return strings.Join([]string{header, "", middle, "", ribbon}, "\n")
}

func storyCard(snapshot keepsake.Snapshot, styles cardStyles, width int) string {
	event := snapshot.Event
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	lines := []string{
		center.Render(styles.countdownBadge(snapshot)),
		"",
		center.Render(styles.faint.Render(keepsake.BrandingLabel)),
		center.Render(styles.headline.Render(event.Name)),
		center.Render(styles.details.Render(event.Details)),
		center.Render(styles.holder(snapshot, width)),
		"",
		center.Render(styles.faint.Render(keepsake.TicketLabel)),
		center.Render(styles.id.Render(snapshot.TicketID())),
		center.Render(styles.fine.Render(keepsake.EntryNotice)),
		"",
		center.Render(styles.codeBlock()),
		"",
		center.Render(styles.faint.Render(keepsake.RibbonText)),
	}
	return strings.Join(lines, "\n")
}

// spread places left and right on one line of the given width with at
// least one space between them.
func spread(left, right string, width int) string {
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
