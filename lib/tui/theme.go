// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the chrome palette for keepsake's terminal UI. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility. The card accent is not part of the chrome theme; it
// follows the ticket theme the user picks.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected dropdown row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	FocusBorder      lipgloss.Color
	HelpText         lipgloss.Color

	// Card preview surface.
	CardBackground lipgloss.Color
	CardBorder     lipgloss.Color

	// Status bar notices.
	ErrorText   lipgloss.Color
	SuccessText lipgloss.Color
	WarningText lipgloss.Color

	// Fuzzy match highlighting in filtered dropdowns.
	MatchForeground lipgloss.Color

	// Dropdown surface.
	TooltipForeground lipgloss.Color
	TooltipBackground lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme, matching
// the zinc greys of the exported card.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	FocusBorder:      lipgloss.Color("250"),
	HelpText:         lipgloss.Color("241"),

	CardBackground: lipgloss.Color("234"),
	CardBorder:     lipgloss.Color("239"),

	ErrorText:   lipgloss.Color("203"), // soft red
	SuccessText: lipgloss.Color("114"), // green
	WarningText: lipgloss.Color("220"), // amber

	MatchForeground: lipgloss.Color("220"),

	TooltipForeground: lipgloss.Color("252"),
	TooltipBackground: lipgloss.Color("237"),
}
