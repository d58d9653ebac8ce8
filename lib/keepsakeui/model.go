// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keepsakeui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/keepsake/lib/capability"
	"github.com/bureau-foundation/keepsake/lib/clock"
	"github.com/bureau-foundation/keepsake/lib/keepsake"
	"github.com/bureau-foundation/keepsake/lib/tui"
)

// FocusRegion identifies which form row receives keyboard input.
type FocusRegion int

const (
	FocusFirstName FocusRegion = iota
	FocusLastName
	FocusTheme
	FocusFormat

	focusRegionCount
)

// Dropdown field names.
const (
	fieldTheme  = "theme"
	fieldFormat = "format"
)

// operation names an asynchronous export or share action.
type operation string

const (
	operationDownload   operation = "download"
	operationShare      operation = "share"
	operationShareImage operation = "share-image"
	operationCopyID     operation = "copy-id"
)

// operationResultMsg carries the outcome of an operation command back
// to Update.
type operationResultMsg struct {
	operation operation
	ticketID  string
	path      string
	share     keepsake.ShareResult
	err       error
}

// countdownMsg delivers one countdown text from the ticker channel.
type countdownMsg struct{ text string }

// pulseTickMsg re-renders the preview while the generate pulse fades.
type pulseTickMsg struct{}

// noticeFadeMsg clears the notice with the matching id. A newer notice
// has a different id and survives the older fade.
type noticeFadeMsg struct{ id int }

// noticeFadeDelay is how long a notice stays in the status bar before
// the help line returns.
const noticeFadeDelay = 5 * time.Second

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeSuccess
	noticeWarning
	noticeError
)

type notice struct {
	id    int
	level noticeLevel
	text  string
}

// Status texts shown to the ticket holder.
const (
	namesRequiredText     = "Lütfen ad ve soyadı girin."
	generateFirstText     = "Önce bileti oluşturun."
	downloadFailedText    = "İndirirken bir sorun oluştu. Lütfen tekrar deneyin."
	shareFailedText       = "Paylaşım başarısız oldu. Lütfen tekrar deneyin."
	shareUnavailableText  = "Bu terminalde paylaşım kullanılamıyor."
	imageCopiedText       = "Görsel panoya kopyalandı. Uygulamada yapıştırarak paylaşabilirsiniz."
	shareImageFailedText  = "Görsel paylaşımında sorun oluştu. PNG indirip manuel paylaşabilirsiniz."
	copyUnavailableText   = "Bu terminal panoya kopyalamayı desteklemiyor."
	regenerateHintText    = "İsim değişti. Yeni ID için Enter ile yeniden oluşturun."
	nativeShareOpenedText = "Paylaşım ekranı açıldı."
)

// Config holds the collaborators a Model is built from.
type Config struct {
	// ViewModel is the state the editor drives. Its name fields seed
	// the inputs.
	ViewModel *keepsake.ViewModel

	// Countdown carries countdown text, typically a
	// countdown.Ticker's C(). Nil disables the badge updates.
	Countdown <-chan string

	// OutputDir is where downloads are written. Empty means the
	// working directory.
	OutputDir string

	// FormatPinned keeps the view-model's format on the first window
	// size. Otherwise narrow terminals switch to the story format.
	FormatPinned bool

	// Clock drives the generate pulse. Default clock.Real().
	Clock clock.Clock
}

// Model is the bubbletea model for the ticket editor.
type Model struct {
	viewModel *keepsake.ViewModel
	countdown <-chan string
	outputDir string
	clock     clock.Clock
	keys      KeyMap
	theme     tui.Theme

	firstName textinput.Model
	lastName  textinput.Model
	focus     FocusRegion
	dropdown  *tui.DropdownOverlay

	pulse     tui.Pulse
	notice    notice
	noticeSeq int

	formatPinned bool
	width        int
	height       int
	ready        bool
}

// NewModel creates the editor with focus on the first-name input.
func NewModel(config Config) Model {
	source := config.Clock
	if source == nil {
		source = clock.Real()
	}

	firstName := textinput.New()
	firstName.Prompt = ""
	firstName.Placeholder = "Ör. Ayşe"
	firstName.SetValue(config.ViewModel.FirstName())
	firstName.Focus()

	lastName := textinput.New()
	lastName.Prompt = ""
	lastName.Placeholder = "Ör. YILMAZ"
	lastName.SetValue(config.ViewModel.LastName())

	return Model{
		viewModel:    config.ViewModel,
		countdown:    config.Countdown,
		outputDir:    config.OutputDir,
		clock:        source,
		keys:         DefaultKeyMap,
		theme:        tui.DefaultTheme,
		firstName:    firstName,
		lastName:     lastName,
		pulse:        tui.NewPulse(tui.PulseDuration),
		formatPinned: config.FormatPinned,
	}
}

// ViewModel returns the state the editor drives.
func (model Model) ViewModel() *keepsake.ViewModel {
	return model.viewModel
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, listenForCountdown(model.countdown))
}

// listenForCountdown returns a tea.Cmd that blocks until the next
// countdown text arrives. Update re-arms it after every value.
func listenForCountdown(channel <-chan string) tea.Cmd {
	if channel == nil {
		return nil
	}
	return func() tea.Msg {
		text, ok := <-channel
		if !ok {
			return nil
		}
		return countdownMsg{text: text}
	}
}

func schedulePulseTick() tea.Cmd {
	return tea.Tick(tui.PulseTickInterval, func(time.Time) tea.Msg {
		return pulseTickMsg{}
	})
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if model.dropdown != nil {
			return model.handleDropdownKeys(message)
		}
		return model.handleKeys(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		if !model.formatPinned {
			model.formatPinned = true
			_ = model.viewModel.SelectFormat(keepsake.DefaultFormatForWidth(message.Width))
		}
		return model, nil

	case countdownMsg:
		model.viewModel.SetCountdown(message.text)
		return model, listenForCountdown(model.countdown)

	case pulseTickMsg:
		if model.pulse.Active(model.clock.Now()) {
			return model, schedulePulseTick()
		}
		return model, nil

	case operationResultMsg:
		return model, model.handleOperationResult(message)

	case noticeFadeMsg:
		if message.id == model.notice.id {
			model.notice = notice{}
		}
		return model, nil

	case logRecordMsg:
		level := noticeWarning
		if message.Level >= slog.LevelError {
			level = noticeError
		}
		return model, model.setNotice(level, message.Summary)
	}

	// Cursor blink and other input-internal messages.
	return model.updateFocusedInput(message)
}

func (model Model) handleKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Dismiss):
		model.notice = notice{}
		return model, nil

	case key.Matches(message, model.keys.NextField):
		return model, model.setFocus((model.focus + 1) % focusRegionCount)

	case key.Matches(message, model.keys.PreviousField):
		return model, model.setFocus((model.focus + focusRegionCount - 1) % focusRegionCount)

	case key.Matches(message, model.keys.Generate):
		switch model.focus {
		case FocusTheme:
			model.openThemePicker()
			return model, nil
		case FocusFormat:
			model.openFormatPicker()
			return model, nil
		}
		return model.generate()

	case key.Matches(message, model.keys.ThemePicker):
		model.openThemePicker()
		return model, nil

	case key.Matches(message, model.keys.FormatToggle):
		next := keepsake.FormatStory
		if model.viewModel.Format() == keepsake.FormatStory {
			next = keepsake.FormatWide
		}
		_ = model.viewModel.SelectFormat(next)
		model.formatPinned = true
		return model, nil

	case key.Matches(message, model.keys.Download):
		// Downloads need an issued ticket; share works with the
		// placeholder card too.
		if !model.viewModel.Generated() {
			return model, model.setNotice(noticeWarning, generateFirstText)
		}
		return model, model.startOperation(operationDownload)

	case key.Matches(message, model.keys.Share):
		return model, model.startOperation(operationShare)

	case key.Matches(message, model.keys.ShareImage):
		return model, model.startOperation(operationShareImage)

	case key.Matches(message, model.keys.CopyID):
		return model.copyTicketID()
	}

	return model.updateFocusedInput(message)
}

// updateFocusedInput routes a message to the focused name input and
// mirrors the result into the view-model.
func (model Model) updateFocusedInput(message tea.Msg) (tea.Model, tea.Cmd) {
	var command tea.Cmd
	switch model.focus {
	case FocusFirstName:
		model.firstName, command = model.firstName.Update(message)
		model.viewModel.SetFirstName(model.firstName.Value())

	case FocusLastName:
		model.lastName, command = model.lastName.Update(message)
		if value := model.lastName.Value(); value != keepsake.UpperName(value) {
			upper := keepsake.UpperName(value)
			position := model.lastName.Position() + len([]rune(upper)) - len([]rune(value))
			model.lastName.SetValue(upper)
			model.lastName.SetCursor(position)
		}
		model.viewModel.SetLastName(model.lastName.Value())
	}
	return model, command
}

func (model *Model) setFocus(region FocusRegion) tea.Cmd {
	model.focus = region
	model.firstName.Blur()
	model.lastName.Blur()
	switch region {
	case FocusFirstName:
		return model.firstName.Focus()
	case FocusLastName:
		return model.lastName.Focus()
	}
	return nil
}

func (model Model) generate() (tea.Model, tea.Cmd) {
	ticket, err := model.viewModel.Generate()
	if err != nil {
		text := err.Error()
		if errors.Is(err, keepsake.ErrNamesRequired) {
			text = namesRequiredText
		}
		return model, model.setNotice(noticeError, text)
	}
	model.pulse.Ignite(model.clock.Now())
	return model, tea.Batch(
		schedulePulseTick(),
		model.setNotice(noticeSuccess, "Bilet oluşturuldu: "+ticket.ID),
	)
}

// setNotice replaces the status-bar notice and schedules its fade.
func (model *Model) setNotice(level noticeLevel, text string) tea.Cmd {
	model.noticeSeq++
	id := model.noticeSeq
	model.notice = notice{id: id, level: level, text: text}
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{id: id}
	})
}

// startOperation snapshots the view-model and runs the operation off
// the event loop.
func (model Model) startOperation(op operation) tea.Cmd {
	snapshot := model.viewModel.Snapshot()
	exporter := model.viewModel.Exporter()
	outputDir := model.outputDir

	return func() tea.Msg {
		ctx := context.Background()
		result := operationResultMsg{operation: op, ticketID: snapshot.TicketID()}
		switch op {
		case operationDownload:
			result.path, result.err = exporter.Download(ctx, snapshot, outputDir)
		case operationShare:
			result.share, result.err = exporter.Share(ctx, snapshot)
		case operationShareImage:
			result.share, result.err = exporter.ShareImage(ctx, snapshot)
		}
		return result
	}
}

func (model Model) copyTicketID() (tea.Model, tea.Cmd) {
	ticket, ok := model.viewModel.Ticket()
	if !ok {
		return model, model.setNotice(noticeWarning, generateFirstText)
	}
	clipboard, available := model.viewModel.Exporter().Capabilities().TextClipboard.Get()
	if !available {
		return model, model.setNotice(noticeWarning, copyUnavailableText)
	}
	return model, func() tea.Msg {
		err := clipboard.WriteText(context.Background(), ticket.ID)
		return operationResultMsg{operation: operationCopyID, ticketID: ticket.ID, err: err}
	}
}

func (model *Model) handleOperationResult(result operationResultMsg) tea.Cmd {
	if result.err != nil {
		return model.setNotice(noticeError, failureText(result))
	}

	switch result.operation {
	case operationDownload:
		return model.setNotice(noticeSuccess, "PNG kaydedildi: "+result.path)
	case operationShare:
		if result.share.Method == keepsake.ShareNative {
			return model.setNotice(noticeSuccess, nativeShareOpenedText)
		}
		return model.setNotice(noticeSuccess, "Paylaşım bağlantısı açıldı.")
	case operationShareImage:
		if result.share.Method == keepsake.ShareClipboard {
			return model.setNotice(noticeSuccess, imageCopiedText)
		}
		return model.setNotice(noticeSuccess, "Görsel açıldı: "+result.share.Target)
	case operationCopyID:
		return model.setNotice(noticeSuccess, "Kopyalandı: "+result.ticketID)
	}
	return nil
}

func failureText(result operationResultMsg) string {
	switch result.operation {
	case operationDownload:
		return downloadFailedText
	case operationShare:
		if errors.Is(result.err, capability.ErrUnavailable) {
			return shareUnavailableText
		}
		return shareFailedText
	case operationShareImage:
		return shareImageFailedText
	}
	return "Kopyalanamadı: " + result.err.Error()
}

func (model *Model) openThemePicker() {
	var options []tui.DropdownOption
	for _, theme := range keepsake.Themes() {
		palette := theme.Palette()
		options = append(options, tui.DropdownOption{
			Label:  palette.Label,
			Value:  string(theme),
			Swatch: lipgloss.Color(palette.Accent),
		})
	}
	model.dropdown = tui.NewDropdown(fieldTheme, "Tema", options, string(model.viewModel.Theme()))
	model.dropdown.AnchorX, model.dropdown.AnchorY = pickerAnchor(formRowTheme)
}

func (model *Model) openFormatPicker() {
	var options []tui.DropdownOption
	for _, format := range keepsake.Formats() {
		options = append(options, tui.DropdownOption{Label: format.Label(), Value: string(format)})
	}
	model.dropdown = tui.NewDropdown(fieldFormat, "Bilet Boyutu", options, string(model.viewModel.Format()))
	model.dropdown.AnchorX, model.dropdown.AnchorY = pickerAnchor(formRowFormat)
}

func (model Model) handleDropdownKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case key.Matches(message, model.keys.Dismiss):
		model.dropdown = nil

	case key.Matches(message, model.keys.Up):
		model.dropdown.MoveUp()

	case key.Matches(message, model.keys.Down):
		model.dropdown.MoveDown()

	case message.Type == tea.KeyEnter:
		selected, ok := model.dropdown.Selected()
		field := model.dropdown.Field
		model.dropdown = nil
		if ok {
			return model, model.applySelection(field, selected.Value)
		}

	case message.Type == tea.KeyBackspace:
		model.dropdown.Backspace()

	case message.Type == tea.KeySpace:
		model.dropdown.Type(' ')

	case message.Type == tea.KeyRunes:
		for _, r := range message.Runes {
			model.dropdown.Type(r)
		}
	}
	return model, nil
}

func (model *Model) applySelection(field, value string) tea.Cmd {
	var err error
	switch field {
	case fieldTheme:
		err = model.viewModel.SelectTheme(keepsake.Theme(value))
	case fieldFormat:
		err = model.viewModel.SelectFormat(keepsake.Format(value))
		model.formatPinned = true
	}
	if err != nil {
		return model.setNotice(noticeError, err.Error())
	}
	return nil
}
