// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keepsakeui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the ticket editor. Printable
// keys go to the focused name input, so every action is bound to a
// control chord.
type KeyMap struct {
	// Focus movement between the name inputs and the two pickers.
	NextField     key.Binding
	PreviousField key.Binding

	// Dropdown navigation (active while a picker is open).
	Up   key.Binding
	Down key.Binding

	Generate     key.Binding // Issue the ticket ID for the entered name.
	ThemePicker  key.Binding // Open the theme dropdown.
	FormatToggle key.Binding // Switch between wide and story.
	Download     key.Binding // Write the PNG to the output directory.
	Share        key.Binding // Native share sheet or messaging link.
	ShareImage   key.Binding // Image clipboard or open the PNG.
	CopyID       key.Binding // Copy the ticket ID via OSC 52.

	Dismiss key.Binding // Close a picker or clear the notice.
	Quit    key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("Tab", "next field"),
	),
	PreviousField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("S-Tab", "previous field"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+k"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+j"),
		key.WithHelp("↓", "down"),
	),
	Generate: key.NewBinding(
		key.WithKeys("enter", "ctrl+g"),
		key.WithHelp("Enter", "oluştur"),
	),
	ThemePicker: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("C-t", "tema"),
	),
	FormatToggle: key.NewBinding(
		key.WithKeys("ctrl+f"),
		key.WithHelp("C-f", "boyut"),
	),
	Download: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "PNG indir"),
	),
	Share: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("C-p", "paylaş"),
	),
	ShareImage: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("C-o", "görseli paylaş"),
	),
	CopyID: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("C-y", "ID kopyala"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "kapat"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "çık"),
	),
}
