// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keepsake

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Theme selects the card's accent palette. It is presentation only.
type Theme string

const (
	ThemeEmerald Theme = "emerald"
	ThemeRose    Theme = "rose"
	ThemeViolet  Theme = "violet"
	ThemeAmber   Theme = "amber"
	ThemeCyan    Theme = "cyan"
)

// DefaultTheme is selected at session start.
const DefaultTheme = ThemeEmerald

// Palette is the set of colors a theme contributes to the card.
type Palette struct {
	// Label is the display name in the theme picker.
	Label string

	// Accent is the dot/ring color as a #rrggbb string, usable both
	// as a lipgloss color and for raster painting.
	Accent string

	// GlowPrimary and GlowSecondary tint the two radial glows behind
	// the card content. Alpha carries the glow strength.
	GlowPrimary   color.NRGBA
	GlowSecondary color.NRGBA
}

var palettes = map[Theme]Palette{
	ThemeEmerald: {
		Label:         "Zümrüt",
		Accent:        "#34d399",
		GlowPrimary:   color.NRGBA{R: 16, G: 185, B: 129, A: 71},
		GlowSecondary: color.NRGBA{R: 59, G: 130, B: 246, A: 64},
	},
	ThemeRose: {
		Label:         "Gül",
		Accent:        "#fb7185",
		GlowPrimary:   color.NRGBA{R: 244, G: 63, B: 94, A: 71},
		GlowSecondary: color.NRGBA{R: 147, G: 51, B: 234, A: 64},
	},
	ThemeViolet: {
		Label:         "Menekşe",
		Accent:        "#a78bfa",
		GlowPrimary:   color.NRGBA{R: 139, G: 92, B: 246, A: 71},
		GlowSecondary: color.NRGBA{R: 14, G: 165, B: 233, A: 64},
	},
	ThemeAmber: {
		Label:         "Kehribar",
		Accent:        "#fbbf24",
		GlowPrimary:   color.NRGBA{R: 245, G: 158, B: 11, A: 82},
		GlowSecondary: color.NRGBA{R: 59, G: 130, B: 246, A: 56},
	},
	ThemeCyan: {
		Label:         "Camgöbeği",
		Accent:        "#22d3ee",
		GlowPrimary:   color.NRGBA{R: 34, G: 211, B: 238, A: 77},
		GlowSecondary: color.NRGBA{R: 125, G: 211, B: 252, A: 64},
	},
}

// Themes returns every theme in picker order.
func Themes() []Theme {
	return []Theme{ThemeEmerald, ThemeRose, ThemeViolet, ThemeAmber, ThemeCyan}
}

// Palette returns the theme's colors. Unknown themes get the default
// palette.
func (theme Theme) Palette() Palette {
	if palette, ok := palettes[theme]; ok {
		return palette
	}
	return palettes[DefaultTheme]
}

// Valid reports whether theme is one of Themes().
func (theme Theme) Valid() bool {
	_, ok := palettes[theme]
	return ok
}

// ParseTheme accepts an exact theme key, case-insensitively.
func ParseTheme(value string) (Theme, error) {
	theme := Theme(strings.ToLower(strings.TrimSpace(value)))
	if !theme.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, value)
	}
	return theme, nil
}

// ResolveTheme accepts a key, a display label, or an abbreviation of
// either ("em", "kehri", "camgo") and returns the best fuzzy match.
// Turkish letters match their ASCII base letters.
func ResolveTheme(query string) (Theme, error) {
	if theme, err := ParseTheme(query); err == nil {
		return theme, nil
	}

	pattern := []rune(foldTurkish(strings.TrimSpace(query)))
	if len(pattern) == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, query)
	}

	best := Theme("")
	bestScore := 0
	for _, theme := range Themes() {
		candidate := util.ToChars([]byte(foldTurkish(string(theme) + " " + theme.Palette().Label)))
		result, _ := algo.FuzzyMatchV2(false, false, true, &candidate, pattern, false, nil)
		if result.Score > bestScore {
			best = theme
			bestScore = result.Score
		}
	}
	if best == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, query)
	}
	return best, nil
}

var turkishFolder = strings.NewReplacer(
	"ç", "c", "ğ", "g", "ı", "i", "İ", "i", "ö", "o", "ş", "s", "ü", "u",
	"Ç", "c", "Ğ", "g", "Ö", "o", "Ş", "s", "Ü", "u",
)

func foldTurkish(value string) string {
	return strings.ToLower(turkishFolder.Replace(value))
}
