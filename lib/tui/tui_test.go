// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestPulseIntensity(t *testing.T) {
	start := time.Date(2025, 11, 7, 12, 0, 0, 0, time.UTC)
	pulse := NewPulse(time.Second)

	if pulse.Active(start) {
		t.Fatal("new pulse should be idle")
	}
	pulse.Ignite(start)

	tests := []struct {
		offset time.Duration
		want   float64
	}{
		{-time.Millisecond, 1.0},
		{0, 1.0},
		{250 * time.Millisecond, 0.75},
		{500 * time.Millisecond, 0.5},
		{time.Second, 0.0},
		{2 * time.Second, 0.0},
	}
	for _, test := range tests {
		if got := pulse.Intensity(start.Add(test.offset)); got != test.want {
			t.Errorf("Intensity(+%v) = %v, want %v", test.offset, got, test.want)
		}
	}

	// Re-igniting restarts the fade.
	pulse.Ignite(start.Add(2 * time.Second))
	if !pulse.Active(start.Add(2500 * time.Millisecond)) {
		t.Error("re-ignited pulse should be active")
	}
}

func TestPulseZeroValueUsesDefaultDuration(t *testing.T) {
	var pulse Pulse
	start := time.Unix(0, 0)
	pulse.Ignite(start)
	if !pulse.Active(start.Add(PulseDuration - time.Millisecond)) {
		t.Error("expected pulse to still be active just before PulseDuration")
	}
	if pulse.Active(start.Add(PulseDuration)) {
		t.Error("expected pulse to be done at PulseDuration")
	}
}

func TestFuzzyMatch(t *testing.T) {
	result := FuzzyMatch("Kehribar", []rune("kehri"), nil)
	if result.Score <= 0 {
		t.Fatal("expected kehri to match Kehribar")
	}
	if want := []int{0, 1, 2, 3, 4}; !equalInts(result.Positions, want) {
		t.Errorf("positions = %v, want %v", result.Positions, want)
	}

	if result := FuzzyMatch("STORY 9:16", []rune("story"), nil); result.Score <= 0 {
		t.Error("expected case-insensitive match")
	}
	if result := FuzzyMatch("Zümrüt", []rune("xyz"), nil); result.Score != 0 || result.Positions != nil {
		t.Errorf("non-match = %+v, want zero", result)
	}
	if result := FuzzyMatch("anything", nil, nil); result.Score != 0 {
		t.Error("empty pattern should not match")
	}
}

func themeOptions() []DropdownOption {
	return []DropdownOption{
		{Label: "Zümrüt", Value: "emerald", Swatch: lipgloss.Color("#10b981")},
		{Label: "Gül", Value: "rose", Swatch: lipgloss.Color("#f43f5e")},
		{Label: "Menekşe", Value: "violet", Swatch: lipgloss.Color("#8b5cf6")},
		{Label: "Kehribar", Value: "amber", Swatch: lipgloss.Color("#f59e0b")},
		{Label: "Camgöbeği", Value: "cyan", Swatch: lipgloss.Color("#06b6d4")},
	}
}

func TestDropdownNavigation(t *testing.T) {
	dropdown := NewDropdown("theme", "Tema", themeOptions(), "violet")
	if dropdown.Cursor != 2 {
		t.Fatalf("cursor = %d, want 2 (current value)", dropdown.Cursor)
	}

	dropdown.MoveDown()
	dropdown.MoveDown()
	dropdown.MoveDown()
	if selected, _ := dropdown.Selected(); selected.Value != "emerald" {
		t.Errorf("after wrapping down, selected = %q, want emerald", selected.Value)
	}
	dropdown.MoveUp()
	if selected, _ := dropdown.Selected(); selected.Value != "cyan" {
		t.Errorf("after wrapping up, selected = %q, want cyan", selected.Value)
	}
}

func TestDropdownUnknownCurrentStartsAtTop(t *testing.T) {
	dropdown := NewDropdown("theme", "Tema", themeOptions(), "mauve")
	if dropdown.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", dropdown.Cursor)
	}
}

func TestDropdownFilter(t *testing.T) {
	dropdown := NewDropdown("theme", "Tema", themeOptions(), "emerald")
	for _, r := range "amber" {
		dropdown.Type(r)
	}
	visible := dropdown.Visible()
	if len(visible) != 1 || visible[0].Value != "amber" {
		t.Fatalf("visible after 'amber' = %+v, want only amber", visible)
	}
	if selected, ok := dropdown.Selected(); !ok || selected.Value != "amber" {
		t.Errorf("selected = %+v, %v", selected, ok)
	}

	for range 5 {
		dropdown.Backspace()
	}
	if len(dropdown.Visible()) != len(themeOptions()) {
		t.Errorf("clearing the filter should show every option, got %d", len(dropdown.Visible()))
	}
	dropdown.Backspace() // no-op on empty filter

	for _, r := range "qqq" {
		dropdown.Type(r)
	}
	if _, ok := dropdown.Selected(); ok {
		t.Error("expected no selection when nothing matches")
	}
	dropdown.MoveDown() // must not panic on an empty list
	if lines := dropdown.Render(DefaultTheme); len(lines) != 2 {
		t.Errorf("empty result renders %d lines, want title + placeholder", len(lines))
	}
}

func TestDropdownRenderUniformWidth(t *testing.T) {
	dropdown := NewDropdown("theme", "Tema", themeOptions(), "rose")
	dropdown.Type('m')
	lines := dropdown.Render(DefaultTheme)
	if len(lines) != dropdown.Height() {
		t.Fatalf("rendered %d lines, Height() = %d", len(lines), dropdown.Height())
	}
	for index, line := range lines {
		if width := ansi.StringWidth(line); width != dropdown.Width() {
			t.Errorf("line %d width = %d, want %d: %q", index, width, dropdown.Width(), ansi.Strip(line))
		}
	}
	if !strings.Contains(ansi.Strip(lines[0]), "Tema: m") {
		t.Errorf("header = %q, want the filter echoed", ansi.Strip(lines[0]))
	}
}

func TestSpliceOverlay(t *testing.T) {
	view := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"
	got := ansi.Strip(SpliceOverlay(view, []string{"XX", "YY"}, 3, 1))
	want := "aaaaaaaaaa\nbbbXXbbbbb\ncccYYccccc"
	if got != want {
		t.Errorf("SpliceOverlay =\n%s\nwant\n%s", got, want)
	}
}

func TestSpliceOverlayClipsAndPads(t *testing.T) {
	view := "ab\ncd"
	got := ansi.Strip(SpliceOverlay(view, []string{"XX", "YY", "ZZ"}, 4, 1))
	want := "ab\ncd  XX"
	if got != want {
		t.Errorf("SpliceOverlay = %q, want %q", got, want)
	}
	if SpliceOverlay(view, nil, 0, 0) != view {
		t.Error("empty overlay should return the view unchanged")
	}
}

func TestPadOverlayLine(t *testing.T) {
	style := lipgloss.NewStyle()
	if got := ansi.Strip(PadOverlayLine("hi", 6, 8, style)); got != " hi     " {
		t.Errorf("PadOverlayLine = %q", got)
	}
	if got := ansi.Strip(PadOverlayLine("much too long", 6, 8, style)); ansi.StringWidth(got) != 8 {
		t.Errorf("overlong content width = %d, want 8: %q", ansi.StringWidth(got), got)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
