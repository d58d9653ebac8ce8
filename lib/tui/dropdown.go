// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DropdownOption is a single selectable item in a dropdown overlay.
type DropdownOption struct {
	Label string // Display text shown in the dropdown.
	Value string // Value handed back to the model on selection.

	// Swatch, when set, is drawn as a colored block before the label.
	Swatch lipgloss.Color
}

// DropdownOverlay renders a floating picker anchored at a screen
// position. It captures keyboard input while open: up/down move,
// printable runes narrow the list by fuzzy match, backspace widens
// it, enter selects, escape dismisses. The model owns the dropdown
// and routes input to it while it is open.
type DropdownOverlay struct {
	Title   string
	Options []DropdownOption
	Cursor  int     // Index into Visible().
	AnchorX int     // Screen X coordinate of the top-left corner.
	AnchorY int     // Screen Y coordinate of the top-left corner.
	Field   string  // Which selection this dropdown changes ("theme", "format").
	Filter  []rune  // Typed narrowing pattern.
	visible []index // Options matching Filter, best first; nil means all.
}

type index struct {
	option    int
	positions []int
}

// NewDropdown creates a dropdown with the cursor on the option whose
// Value equals current, or the first option.
func NewDropdown(field, title string, options []DropdownOption, current string) *DropdownOverlay {
	dropdown := &DropdownOverlay{Title: title, Options: options, Field: field}
	for position, option := range options {
		if option.Value == current {
			dropdown.Cursor = position
			break
		}
	}
	return dropdown
}

// Visible returns the options that match the filter, best match first.
func (dropdown *DropdownOverlay) Visible() []DropdownOption {
	if dropdown.visible == nil {
		return dropdown.Options
	}
	options := make([]DropdownOption, len(dropdown.visible))
	for position, entry := range dropdown.visible {
		options[position] = dropdown.Options[entry.option]
	}
	return options
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (dropdown *DropdownOverlay) MoveUp() {
	count := len(dropdown.Visible())
	if count == 0 {
		return
	}
	dropdown.Cursor--
	if dropdown.Cursor < 0 {
		dropdown.Cursor = count - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (dropdown *DropdownOverlay) MoveDown() {
	count := len(dropdown.Visible())
	if count == 0 {
		return
	}
	dropdown.Cursor++
	if dropdown.Cursor >= count {
		dropdown.Cursor = 0
	}
}

// Selected returns the highlighted option. ok is false when the
// filter matches nothing.
func (dropdown *DropdownOverlay) Selected() (DropdownOption, bool) {
	visible := dropdown.Visible()
	if dropdown.Cursor < 0 || dropdown.Cursor >= len(visible) {
		return DropdownOption{}, false
	}
	return visible[dropdown.Cursor], true
}

// Type appends r to the filter and re-ranks the options.
func (dropdown *DropdownOverlay) Type(r rune) {
	dropdown.Filter = append(dropdown.Filter, r)
	dropdown.refilter()
}

// Backspace removes the last filter rune.
func (dropdown *DropdownOverlay) Backspace() {
	if len(dropdown.Filter) == 0 {
		return
	}
	dropdown.Filter = dropdown.Filter[:len(dropdown.Filter)-1]
	dropdown.refilter()
}

func (dropdown *DropdownOverlay) refilter() {
	dropdown.Cursor = 0
	if len(dropdown.Filter) == 0 {
		dropdown.visible = nil
		return
	}
	type scored struct {
		index
		score int
	}
	var matches []scored
	for position, option := range dropdown.Options {
		// Match against label and value so "kehri" and "amber" both
		// find the amber theme.
		result := FuzzyMatch(option.Label, dropdown.Filter, nil)
		if valueResult := FuzzyMatch(option.Value, dropdown.Filter, nil); valueResult.Score > result.Score {
			result = FuzzyResult{Score: valueResult.Score}
		}
		if result.Score > 0 {
			matches = append(matches, scored{index: index{option: position, positions: result.Positions}, score: result.Score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
	dropdown.visible = make([]index, len(matches))
	for position, match := range matches {
		dropdown.visible[position] = match.index
	}
}

// Width returns the total visible width of the rendered dropdown in
// columns, as used by Render.
func (dropdown *DropdownOverlay) Width() int {
	maxLabelWidth := ansi.StringWidth(dropdown.header())
	for _, option := range dropdown.Options {
		labelWidth := ansi.StringWidth(option.Label) + 2
		if labelWidth > maxLabelWidth {
			maxLabelWidth = labelWidth
		}
	}
	// Layout: " > ■ LABEL " with 1 column of padding on each side.
	return 2 + maxLabelWidth + 2
}

// Height returns the number of rendered lines.
func (dropdown *DropdownOverlay) Height() int {
	rows := len(dropdown.Visible())
	if rows == 0 {
		rows = 1
	}
	return 1 + rows
}

func (dropdown *DropdownOverlay) header() string {
	if len(dropdown.Filter) > 0 {
		return dropdown.Title + ": " + string(dropdown.Filter)
	}
	return dropdown.Title
}

// Render produces the dropdown lines for overlay splicing. Every line
// has the same visible width and a solid background. The first line
// is the title (or the filter being typed).
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	totalWidth := dropdown.Width()
	innerWidth := totalWidth - 2

	backgroundStyle := lipgloss.NewStyle().
		Background(theme.TooltipBackground).
		Foreground(theme.TooltipForeground)
	headerStyle := backgroundStyle.Foreground(theme.FaintText)
	selectedStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	lines := []string{PadOverlayLine(headerStyle.Render(dropdown.header()), innerWidth, totalWidth, backgroundStyle)}

	visible := dropdown.Visible()
	if len(visible) == 0 {
		return append(lines, PadOverlayLine(headerStyle.Render("no match"), innerWidth, totalWidth, backgroundStyle))
	}

	for position, option := range visible {
		lineStyle := backgroundStyle
		marker := "  "
		if position == dropdown.Cursor {
			lineStyle = selectedStyle
			marker = "> "
		}
		swatch := "  "
		if option.Swatch != "" {
			swatch = lineStyle.Foreground(option.Swatch).Render("■") + lineStyle.Render(" ")
		} else {
			swatch = lineStyle.Render(swatch)
		}
		label := dropdown.highlight(option.Label, dropdown.positionsFor(position), lineStyle, theme)
		lines = append(lines, PadOverlayLine(lineStyle.Render(marker)+swatch+label, innerWidth, totalWidth, lineStyle))
	}
	return lines
}

func (dropdown *DropdownOverlay) positionsFor(visiblePosition int) []int {
	if dropdown.visible == nil || visiblePosition >= len(dropdown.visible) {
		return nil
	}
	return dropdown.visible[visiblePosition].positions
}

// highlight renders label with the matched rune positions in the
// match color.
func (dropdown *DropdownOverlay) highlight(label string, positions []int, style lipgloss.Style, theme Theme) string {
	if len(positions) == 0 {
		return style.Render(label)
	}
	matchStyle := style.Foreground(theme.MatchForeground).Bold(true)
	matched := make(map[int]bool, len(positions))
	for _, position := range positions {
		matched[position] = true
	}
	var builder strings.Builder
	for position, r := range []rune(label) {
		if matched[position] {
			builder.WriteString(matchStyle.Render(string(r)))
		} else {
			builder.WriteString(style.Render(string(r)))
		}
	}
	return builder.String()
}
