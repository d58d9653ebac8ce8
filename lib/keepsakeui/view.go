// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keepsakeui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/keepsake/lib/tui"
)

const (
	// appTitle heads the screen.
	appTitle = "Buray — Harbiye Hatıra Bileti"

	// formWidth is the width of the input column, including its
	// margin.
	formWidth = 34

	// fieldLabelWidth aligns the values of the picker rows.
	fieldLabelWidth = 8

	// headerHeight is the number of lines above the form: the title
	// and a blank line.
	headerHeight = 2
)

// Form rows, counted from the top of the form column. The pickers
// anchor under their row.
const (
	formRowTitle = iota
	_
	formRowFirstLabel
	formRowFirstInput
	formRowLastLabel
	formRowLastInput
	_
	formRowTheme
	formRowFormat
)

// pickerAnchor returns the screen position a picker opens at for the
// given form row: directly under the row's value column.
func pickerAnchor(row int) (x, y int) {
	return 2 + fieldLabelWidth, headerHeight + row + 1
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Yükleniyor..."
	}

	header := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true).Render(appTitle)

	form := model.renderForm()
	preview := model.renderPreview()

	var content string
	if model.width >= formWidth+lipgloss.Width(preview) {
		content = lipgloss.JoinHorizontal(lipgloss.Top, form, preview)
	} else {
		content = lipgloss.JoinVertical(lipgloss.Left, form, "", preview)
	}

	separatorWidth := model.width
	if separatorWidth <= 0 {
		separatorWidth = formWidth
	}
	separator := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", separatorWidth))

	output := strings.Join([]string{header, "", content, separator, model.renderStatus()}, "\n")

	if model.dropdown != nil {
		output = tui.SpliceOverlay(output, model.dropdown.Render(model.theme),
			model.dropdown.AnchorX, model.dropdown.AnchorY)
	}
	return output
}

func (model Model) renderForm() string {
	labelStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	titleStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText).Bold(true)

	lines := make([]string, formRowFormat+3)
	lines[formRowTitle] = titleStyle.Render("Bilgilerini Gir")
	lines[formRowFirstLabel] = labelStyle.Render("Ad")
	lines[formRowFirstInput] = model.marker(FocusFirstName) + model.firstName.View()
	lines[formRowLastLabel] = labelStyle.Render("Soyad")
	lines[formRowLastInput] = model.marker(FocusLastName) + model.lastName.View()

	palette := model.viewModel.Theme().Palette()
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Accent)).Render("■")
	lines[formRowTheme] = model.marker(FocusTheme) + labelStyle.Width(fieldLabelWidth).Render("Tema") +
		swatch + " " + palette.Label
	lines[formRowFormat] = model.marker(FocusFormat) + labelStyle.Width(fieldLabelWidth).Render("Boyut") +
		model.viewModel.Format().Label()

	status := labelStyle.Render("Bilet henüz oluşturulmadı.")
	if ticket, ok := model.viewModel.Ticket(); ok {
		status = labelStyle.Render("Bilet: ") + titleStyle.Render(ticket.ID)
	}
	lines[formRowFormat+2] = status

	return lipgloss.NewStyle().Width(formWidth).PaddingRight(2).Render(strings.Join(lines, "\n"))
}

// marker is the focus indicator in front of a form row.
func (model Model) marker(region FocusRegion) string {
	if model.focus == region && model.dropdown == nil {
		return lipgloss.NewStyle().Foreground(model.theme.FocusBorder).Render("▸ ")
	}
	return "  "
}

func (model Model) renderPreview() string {
	snapshot := model.viewModel.Snapshot()
	card := RenderCard(snapshot, model.theme, model.pulse.Intensity(model.clock.Now()))

	title := lipgloss.NewStyle().Foreground(model.theme.NormalText).Bold(true).Render("Önizleme")
	sections := []string{title, card}
	if snapshot.Stale {
		sections = append(sections, lipgloss.NewStyle().Foreground(model.theme.WarningText).Render(regenerateHintText))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatus shows the current notice, or the key help when there
// is none.
func (model Model) renderStatus() string {
	if model.notice.text != "" {
		color := model.theme.NormalText
		switch model.notice.level {
		case noticeSuccess:
			color = model.theme.SuccessText
		case noticeWarning:
			color = model.theme.WarningText
		case noticeError:
			color = model.theme.ErrorText
		}
		return lipgloss.NewStyle().Foreground(color).Bold(true).Render(" " + model.notice.text)
	}

	bindings := []key.Binding{
		model.keys.NextField,
		model.keys.Generate,
		model.keys.ThemePicker,
		model.keys.FormatToggle,
		model.keys.Download,
		model.keys.Share,
		model.keys.ShareImage,
		model.keys.CopyID,
		model.keys.Quit,
	}
	if model.dropdown != nil {
		bindings = []key.Binding{model.keys.Up, model.keys.Down, model.keys.Dismiss}
	}
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(" " + strings.Join(parts, "  "))
}
