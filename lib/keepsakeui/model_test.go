// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keepsakeui

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/keepsake/lib/capability"
	"github.com/bureau-foundation/keepsake/lib/clock"
	"github.com/bureau-foundation/keepsake/lib/keepsake"
	"github.com/bureau-foundation/keepsake/lib/ticketcode"
	"github.com/bureau-foundation/keepsake/lib/tui"
)

type fakeCard struct{ snapshot keepsake.Snapshot }

func (card fakeCard) Snapshot() keepsake.Snapshot { return card.snapshot }

type fakeRenderer struct{}

func (fakeRenderer) Render(snapshot keepsake.Snapshot) keepsake.Card { return fakeCard{snapshot} }

func (fakeRenderer) Rasterize(_ context.Context, card keepsake.Card, _ keepsake.ExportOptions) ([]byte, error) {
	return []byte("PNG:" + card.Snapshot().TicketID()), nil
}

type recordingTextClipboard struct{ texts *[]string }

func (clipboard recordingTextClipboard) WriteText(_ context.Context, text string) error {
	*clipboard.texts = append(*clipboard.texts, text)
	return nil
}

var testStart = time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)

func testModel(t *testing.T, capabilities capability.Set) (Model, *clock.FakeClock) {
	t.Helper()
	fake := clock.Fake(testStart)
	viewModel := keepsake.New(keepsake.Options{
		Renderer:     fakeRenderer{},
		Capabilities: capabilities,
		TempDir:      t.TempDir(),
	})
	model := NewModel(Config{
		ViewModel:    viewModel,
		OutputDir:    t.TempDir(),
		FormatPinned: true,
		Clock:        fake,
	})
	return model, fake
}

func update(t *testing.T, model Model, message tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, command := model.Update(message)
	return updated.(Model), command
}

func typeText(t *testing.T, model Model, text string) Model {
	t.Helper()
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return model
}

func pressKey(t *testing.T, model Model, keyType tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	return update(t, model, tea.KeyMsg{Type: keyType})
}

// enterNames types a first and last name into the two inputs, leaving
// focus on the last name.
func enterNames(t *testing.T, model Model, first, last string) Model {
	t.Helper()
	model = typeText(t, model, first)
	model, _ = pressKey(t, model, tea.KeyTab)
	return typeText(t, model, last)
}

func TestModelTypingUpdatesViewModel(t *testing.T) {
	model, _ := testModel(t, capability.None())
	model = enterNames(t, model, "Ayşe", "yılmaz")

	if model.focus != FocusLastName {
		t.Errorf("focus = %v, want last name", model.focus)
	}
	if got := model.viewModel.FirstName(); got != "Ayşe" {
		t.Errorf("first name = %q", got)
	}
	if got := model.lastName.Value(); got != "YILMAZ" {
		t.Errorf("last name input = %q, want upper-cased", got)
	}
	if got := model.viewModel.LastName(); got != "YILMAZ" {
		t.Errorf("view-model last name = %q", got)
	}
}

func TestModelLastNameExpandsCase(t *testing.T) {
	model, _ := testModel(t, capability.None())
	model = enterNames(t, model, "Ayşe", "straße")
	if got := model.lastName.Value(); got != "STRASSE" {
		t.Fatalf("last name input = %q, want STRASSE", got)
	}
	if got := model.lastName.Position(); got != len("STRASSE") {
		t.Errorf("cursor = %d, want end of input", got)
	}

	model = typeText(t, model, "n")
	if got := model.viewModel.LastName(); got != "STRASSEN" {
		t.Errorf("view-model last name = %q, want STRASSEN", got)
	}
}

func TestModelKeepsLongNames(t *testing.T) {
	long := strings.Repeat("Ayşe", 40)
	model, _ := testModel(t, capability.None())
	model = typeText(t, model, long)
	if got := model.viewModel.FirstName(); got != long {
		t.Errorf("first name has %d runes, want %d", len([]rune(got)), len([]rune(long)))
	}
}

func TestModelFocusCycle(t *testing.T) {
	model, _ := testModel(t, capability.None())
	want := []FocusRegion{FocusLastName, FocusTheme, FocusFormat, FocusFirstName}
	for _, region := range want {
		model, _ = pressKey(t, model, tea.KeyTab)
		if model.focus != region {
			t.Fatalf("focus = %v, want %v", model.focus, region)
		}
	}
	model, _ = pressKey(t, model, tea.KeyShiftTab)
	if model.focus != FocusFormat {
		t.Errorf("shift+tab from first name = %v, want format", model.focus)
	}

	// Typing on a picker row does not reach the name inputs.
	model = typeText(t, model, "x")
	if model.viewModel.FirstName() != "" || model.viewModel.LastName() != "" {
		t.Error("typing on the format row changed a name")
	}
}

func TestModelGenerate(t *testing.T) {
	model, fake := testModel(t, capability.None())
	model = enterNames(t, model, "Ayşe", "Yılmaz")

	model, command := pressKey(t, model, tea.KeyEnter)
	if command == nil {
		t.Fatal("generate should schedule the pulse and notice fade")
	}

	ticket, ok := model.viewModel.Ticket()
	if !ok {
		t.Fatal("expected Generated state after enter")
	}
	event := keepsake.DefaultEvent()
	if want := ticketcode.TicketID(event.TicketPrefix, "Ayşe", "YILMAZ", event.Tag); ticket.ID != want {
		t.Errorf("ticket ID = %q, want %q", ticket.ID, want)
	}
	if model.notice.level != noticeSuccess || !strings.Contains(model.notice.text, ticket.ID) {
		t.Errorf("notice = %+v", model.notice)
	}

	// The pulse keeps ticking while it fades and stops afterwards.
	if _, command := update(t, model, pulseTickMsg{}); command == nil {
		t.Error("pulse tick during the fade should re-arm")
	}
	fake.Advance(tui.PulseDuration)
	if _, command := update(t, model, pulseTickMsg{}); command != nil {
		t.Error("pulse tick after the fade should stop")
	}
}

func TestModelGenerateRequiresNames(t *testing.T) {
	model, _ := testModel(t, capability.None())
	model = typeText(t, model, "Ayşe")

	model, _ = pressKey(t, model, tea.KeyEnter)
	if model.viewModel.Generated() {
		t.Fatal("generate without a last name must not issue a ticket")
	}
	if model.notice.level != noticeError || model.notice.text != namesRequiredText {
		t.Errorf("notice = %+v, want names-required error", model.notice)
	}
}

func TestModelGenerateOnPickerRowOpensPicker(t *testing.T) {
	model, _ := testModel(t, capability.None())
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 160, Height: 40})
	model, _ = pressKey(t, model, tea.KeyTab)
	model, _ = pressKey(t, model, tea.KeyTab)

	model, _ = pressKey(t, model, tea.KeyEnter)
	if model.dropdown == nil || model.dropdown.Field != fieldTheme {
		t.Fatalf("enter on the theme row should open the theme picker, got %+v", model.dropdown)
	}
	if model.viewModel.Generated() {
		t.Error("opening the picker must not generate")
	}
	if !strings.Contains(model.View(), "Kehribar") {
		t.Error("view should show the picker options")
	}
}

func TestModelThemePicker(t *testing.T) {
	model, _ := testModel(t, capability.None())
	model = enterNames(t, model, "Ayşe", "Yılmaz")
	model, _ = pressKey(t, model, tea.KeyEnter)
	issued, _ := model.viewModel.Ticket()

	model, _ = pressKey(t, model, tea.KeyCtrlT)
	if model.dropdown == nil {
		t.Fatal("ctrl+t should open the theme picker")
	}
	model = typeText(t, model, "kehri")
	model, _ = pressKey(t, model, tea.KeyEnter)

	if model.dropdown != nil {
		t.Error("enter should close the picker")
	}
	if model.viewModel.Theme() != keepsake.ThemeAmber {
		t.Errorf("theme = %q, want amber", model.viewModel.Theme())
	}
	if ticket, _ := model.viewModel.Ticket(); ticket != issued {
		t.Errorf("theme change altered the ticket: %+v -> %+v", issued, ticket)
	}
	if model.lastName.Value() != "YILMAZ" {
		t.Error("picker typing leaked into the last name input")
	}
}

func TestModelPickerDismiss(t *testing.T) {
	model, _ := testModel(t, capability.None())
	model, _ = pressKey(t, model, tea.KeyCtrlT)
	model, _ = pressKey(t, model, tea.KeyDown)
	model, _ = pressKey(t, model, tea.KeyEsc)

	if model.dropdown != nil {
		t.Fatal("esc should close the picker")
	}
	if model.viewModel.Theme() != keepsake.DefaultTheme {
		t.Errorf("dismissed picker changed theme to %q", model.viewModel.Theme())
	}
}

func TestModelFormat(t *testing.T) {
	model, _ := testModel(t, capability.None())
	model.formatPinned = false

	model, _ = update(t, model, tea.WindowSizeMsg{Width: 60, Height: 40})
	if model.viewModel.Format() != keepsake.FormatStory {
		t.Fatalf("narrow terminal format = %q, want story", model.viewModel.Format())
	}

	model, _ = pressKey(t, model, tea.KeyCtrlF)
	if model.viewModel.Format() != keepsake.FormatWide {
		t.Fatalf("ctrl+f format = %q, want wide", model.viewModel.Format())
	}

	// Later resizes leave the choice alone.
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 50, Height: 40})
	if model.viewModel.Format() != keepsake.FormatWide {
		t.Errorf("resize changed format to %q", model.viewModel.Format())
	}
}

func TestModelPinnedFormatIgnoresWidth(t *testing.T) {
	model, _ := testModel(t, capability.None())
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 60, Height: 40})
	if model.viewModel.Format() != keepsake.FormatWide {
		t.Errorf("pinned format = %q, want wide", model.viewModel.Format())
	}
}

func TestModelDownloadRequiresTicket(t *testing.T) {
	model, _ := testModel(t, capability.None())
	model, _ = pressKey(t, model, tea.KeyCtrlS)
	if model.notice.text != generateFirstText {
		t.Errorf("notice = %+v, want generate-first warning", model.notice)
	}
}

func TestModelDownload(t *testing.T) {
	model, _ := testModel(t, capability.None())
	model = enterNames(t, model, "Ayşe", "Yılmaz")
	model, _ = pressKey(t, model, tea.KeyEnter)

	model, command := pressKey(t, model, tea.KeyCtrlS)
	if command == nil {
		t.Fatal("ctrl+s should start a download")
	}
	result, ok := command().(operationResultMsg)
	if !ok {
		t.Fatalf("download command returned %T", command())
	}
	if result.err != nil {
		t.Fatalf("download failed: %v", result.err)
	}

	want := filepath.Join(model.outputDir, "Ayşe YILMAZ-Buray-Harbiye-2025-Wide-21x9.png")
	if result.path != want {
		t.Errorf("path = %q, want %q", result.path, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("downloaded file missing: %v", err)
	}

	model, _ = update(t, model, result)
	if model.notice.level != noticeSuccess || !strings.Contains(model.notice.text, want) {
		t.Errorf("notice = %+v", model.notice)
	}
}

func TestModelShareFallsBackToLink(t *testing.T) {
	var opened []string
	capabilities := capability.None()
	capabilities.Opener = capability.Available[capability.Opener](capability.OpenerFunc(
		func(_ context.Context, target string) error {
			opened = append(opened, target)
			return nil
		}))

	model, _ := testModel(t, capabilities)
	model, command := pressKey(t, model, tea.KeyCtrlP)
	result := command().(operationResultMsg)
	if result.err != nil || result.share.Method != keepsake.ShareLink {
		t.Fatalf("share result = %+v", result)
	}
	if len(opened) != 1 || !strings.HasPrefix(opened[0], keepsake.MessagingShareURL) {
		t.Errorf("opened = %v", opened)
	}

	model, _ = update(t, model, result)
	if model.notice.level != noticeSuccess {
		t.Errorf("notice = %+v", model.notice)
	}
}

func TestModelShareUnavailable(t *testing.T) {
	model, _ := testModel(t, capability.None())
	model, command := pressKey(t, model, tea.KeyCtrlP)
	result := command().(operationResultMsg)
	if !errors.Is(result.err, capability.ErrUnavailable) {
		t.Fatalf("share error = %v, want ErrUnavailable", result.err)
	}

	model, _ = update(t, model, result)
	if model.notice.level != noticeError || model.notice.text != shareUnavailableText {
		t.Errorf("notice = %+v", model.notice)
	}
	if model.viewModel.Generated() {
		t.Error("a failed share must not change ticket state")
	}
}

func TestModelShareImageToClipboard(t *testing.T) {
	var images [][]byte
	capabilities := capability.None()
	capabilities.ImageClipboard = capability.Available[capability.ImageClipboard](capability.ImageClipboardFunc(
		func(_ context.Context, png []byte) error {
			images = append(images, png)
			return nil
		}))

	model, _ := testModel(t, capabilities)
	model = enterNames(t, model, "Ayşe", "Yılmaz")
	model, _ = pressKey(t, model, tea.KeyEnter)
	ticket, _ := model.viewModel.Ticket()

	model, command := pressKey(t, model, tea.KeyCtrlO)
	result := command().(operationResultMsg)
	if result.err != nil || result.share.Method != keepsake.ShareClipboard {
		t.Fatalf("share image result = %+v", result)
	}
	if len(images) != 1 || string(images[0]) != "PNG:"+ticket.ID {
		t.Errorf("clipboard images = %q", images)
	}

	model, _ = update(t, model, result)
	if model.notice.text != imageCopiedText {
		t.Errorf("notice = %+v", model.notice)
	}
}

func TestModelShareImageClipboardFailure(t *testing.T) {
	opened := false
	capabilities := capability.None()
	capabilities.ImageClipboard = capability.Available[capability.ImageClipboard](capability.ImageClipboardFunc(
		func(context.Context, []byte) error { return errors.New("clipboard owner vanished") }))
	capabilities.Opener = capability.Available[capability.Opener](capability.OpenerFunc(
		func(context.Context, string) error {
			opened = true
			return nil
		}))

	model, _ := testModel(t, capabilities)
	model = enterNames(t, model, "Ayşe", "Yılmaz")
	model, _ = pressKey(t, model, tea.KeyEnter)

	model, command := pressKey(t, model, tea.KeyCtrlO)
	result := command().(operationResultMsg)
	if keepsake.KindOf(result.err) != keepsake.KindShare {
		t.Fatalf("share image error = %v, want share failure", result.err)
	}
	if opened {
		t.Error("clipboard failure should not open a file")
	}

	model, _ = update(t, model, result)
	if model.notice.level != noticeError || model.notice.text != shareImageFailedText {
		t.Errorf("notice = %+v", model.notice)
	}
}

func TestModelCopyTicketID(t *testing.T) {
	var texts []string
	capabilities := capability.None()
	capabilities.TextClipboard = capability.Available[capability.TextClipboard](recordingTextClipboard{texts: &texts})

	model, _ := testModel(t, capabilities)
	model, _ = pressKey(t, model, tea.KeyCtrlY)
	if model.notice.text != generateFirstText {
		t.Errorf("copy before generation notice = %+v", model.notice)
	}

	model = enterNames(t, model, "Ayşe", "Yılmaz")
	model, _ = pressKey(t, model, tea.KeyEnter)
	ticket, _ := model.viewModel.Ticket()

	model, command := pressKey(t, model, tea.KeyCtrlY)
	result := command().(operationResultMsg)
	if result.err != nil {
		t.Fatal(result.err)
	}
	if len(texts) != 1 || texts[0] != ticket.ID {
		t.Errorf("clipboard texts = %v, want [%s]", texts, ticket.ID)
	}
	model, _ = update(t, model, result)
	if !strings.Contains(model.notice.text, ticket.ID) {
		t.Errorf("notice = %+v", model.notice)
	}
}

func TestModelCopyWithoutClipboard(t *testing.T) {
	model, _ := testModel(t, capability.None())
	model = enterNames(t, model, "Ayşe", "Yılmaz")
	model, _ = pressKey(t, model, tea.KeyEnter)

	model, _ = pressKey(t, model, tea.KeyCtrlY)
	if model.notice.text != copyUnavailableText {
		t.Errorf("notice = %+v", model.notice)
	}
}

func TestModelCountdown(t *testing.T) {
	channel := make(chan string, 1)
	model, _ := testModel(t, capability.None())
	model.countdown = channel

	model, command := update(t, model, countdownMsg{text: "6d 09h 00m"})
	if model.viewModel.Countdown() != "6d 09h 00m" {
		t.Errorf("countdown = %q", model.viewModel.Countdown())
	}
	if command == nil {
		t.Fatal("countdown message should re-arm the listener")
	}

	channel <- "6d 08h 59m"
	if message := command(); message != (countdownMsg{text: "6d 08h 59m"}) {
		t.Errorf("listener delivered %#v", message)
	}

	close(channel)
	if message := listenForCountdown(channel)(); message != nil {
		t.Errorf("closed channel delivered %#v, want nil", message)
	}
	if listenForCountdown(nil) != nil {
		t.Error("nil channel should not start a listener")
	}
}

func TestModelNoticeFade(t *testing.T) {
	model, _ := testModel(t, capability.None())
	model, _ = pressKey(t, model, tea.KeyEnter)
	first := model.notice.id

	model, _ = pressKey(t, model, tea.KeyCtrlS)
	second := model.notice.id
	if first == second {
		t.Fatal("each notice should get a new id")
	}

	model, _ = update(t, model, noticeFadeMsg{id: first})
	if model.notice.text == "" {
		t.Error("a stale fade cleared the newer notice")
	}
	model, _ = update(t, model, noticeFadeMsg{id: second})
	if model.notice.text != "" {
		t.Errorf("notice after its fade = %+v", model.notice)
	}

	model, _ = pressKey(t, model, tea.KeyEnter)
	model, _ = pressKey(t, model, tea.KeyEsc)
	if model.notice.text != "" {
		t.Error("esc should dismiss the notice")
	}
}

func TestModelLogRecordNotice(t *testing.T) {
	model, _ := testModel(t, capability.None())
	model, command := update(t, model, logRecordMsg{Summary: "share failed (op=share)", Level: slog.LevelError})
	if command == nil {
		t.Error("log notice should schedule a fade")
	}
	if model.notice.level != noticeError || model.notice.text != "share failed (op=share)" {
		t.Errorf("notice = %+v", model.notice)
	}
}

func TestModelView(t *testing.T) {
	model, _ := testModel(t, capability.None())
	if view := model.View(); view != "Yükleniyor..." {
		t.Errorf("view before size = %q", view)
	}

	model, _ = update(t, model, tea.WindowSizeMsg{Width: 160, Height: 40})
	view := model.View()
	for _, want := range []string{
		appTitle,
		"Bilgilerini Gir",
		"Zümrüt",
		"Yatay 21:9",
		keepsake.BrandingLabel,
		"HRB25-XXXXXX",
		"C-c çık",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelStaleHint(t *testing.T) {
	model, _ := testModel(t, capability.None())
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 160, Height: 40})
	model = enterNames(t, model, "Ayşe", "Yılmaz")
	model, _ = pressKey(t, model, tea.KeyEnter)
	if strings.Contains(model.View(), regenerateHintText) {
		t.Fatal("fresh ticket should not show the regenerate hint")
	}

	model = typeText(t, model, "OĞLU")
	if !model.viewModel.Stale() {
		t.Fatal("editing the name should make the ticket stale")
	}
	if !strings.Contains(model.View(), regenerateHintText) {
		t.Error("stale ticket should show the regenerate hint")
	}
	if !model.viewModel.Generated() {
		t.Error("editing must not revoke the ticket")
	}
}

func TestModelQuit(t *testing.T) {
	model, _ := testModel(t, capability.None())
	_, command := pressKey(t, model, tea.KeyCtrlC)
	if command == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, isQuit := command().(tea.QuitMsg); !isQuit {
		t.Errorf("expected QuitMsg, got %T", command())
	}
}
