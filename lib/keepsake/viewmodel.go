// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keepsake

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bureau-foundation/keepsake/lib/capability"
	"github.com/bureau-foundation/keepsake/lib/ticketcode"
)

// State is the view-model's lifecycle position.
type State int

const (
	StateIdle State = iota
	StateGenerated
)

func (state State) String() string {
	if state == StateGenerated {
		return "generated"
	}
	return "idle"
}

// Ticket is an issued keepsake. It is immutable once created.
type Ticket struct {
	ID        string
	FirstName string
	LastName  string
	EventTag  string
}

// Options configures a ViewModel. Zero values select the defaults.
type Options struct {
	Event  Event
	Theme  Theme
	Format Format

	// Renderer produces the export image. Without one, the export
	// operations fail with KindExport.
	Renderer Renderer

	// Capabilities is the platform selection made at startup.
	Capabilities capability.Set

	// Logger receives one record per export or share outcome.
	Logger *slog.Logger

	// TempDir holds images written for the open-in-viewer fallback.
	// Empty means os.TempDir().
	TempDir string
}

// ViewModel holds the user's inputs and the issued ticket. It is not
// safe for concurrent use; the owning event loop serializes access.
type ViewModel struct {
	event     Event
	firstName string
	lastName  string
	theme     Theme
	format    Format
	countdown string

	generated bool
	ticket    Ticket

	exporter *Exporter
}

// New returns an Idle view-model.
func New(options Options) *ViewModel {
	event := options.Event
	if event.Name == "" {
		event = DefaultEvent()
	}
	theme := options.Theme
	if !theme.Valid() {
		theme = DefaultTheme
	}
	format := options.Format
	if !format.Valid() {
		format = DefaultFormat
	}
	return &ViewModel{
		event:    event,
		theme:    theme,
		format:   format,
		exporter: NewExporter(options),
	}
}

func (model *ViewModel) Event() Event { return model.event }
func (model *ViewModel) FirstName() string { return model.firstName }
func (model *ViewModel) LastName() string { return model.lastName }
func (model *ViewModel) Theme() Theme { return model.theme }
func (model *ViewModel) Format() Format { return model.format }
func (model *ViewModel) Countdown() string { return model.countdown }
func (model *ViewModel) Generated() bool { return model.generated }
func (model *ViewModel) Exporter() *Exporter { return model.exporter }

// State reports Idle until the first successful Generate.
func (model *ViewModel) State() State {
	if model.generated {
		return StateGenerated
	}
	return StateIdle
}

// Ticket returns the issued ticket. The boolean is false while Idle.
func (model *ViewModel) Ticket() (Ticket, bool) {
	return model.ticket, model.generated
}

// SetFirstName replaces the first name. The ticket is not touched.
func (model *ViewModel) SetFirstName(value string) {
	model.firstName = value
}

// SetLastName replaces the last name, upper-cased. The ticket is not
// touched.
func (model *ViewModel) SetLastName(value string) {
	model.lastName = UpperName(value)
}

// UpperName upper-cases a name with full Unicode case mapping: "ß"
// becomes "SS" and "ﬁ" becomes "FI". The ticket ID hashes the result,
// so every front end must upper-case through here.
func UpperName(value string) string {
	return cases.Upper(language.Und).String(value)
}

// SelectTheme changes the accent palette.
func (model *ViewModel) SelectTheme(theme Theme) error {
	if !theme.Valid() {
		return &Error{Kind: KindValidation, Op: "select theme", Err: fmt.Errorf("%w: %q", ErrUnknownTheme, theme)}
	}
	model.theme = theme
	return nil
}

// SelectFormat changes the card layout.
func (model *ViewModel) SelectFormat(format Format) error {
	if !format.Valid() {
		return &Error{Kind: KindValidation, Op: "select format", Err: fmt.Errorf("%w: %q", ErrUnknownFormat, format)}
	}
	model.format = format
	return nil
}

// SetCountdown replaces the displayed countdown text.
func (model *ViewModel) SetCountdown(text string) {
	model.countdown = text
}

// Generate issues a ticket from the current trimmed names. Both names
// must be non-empty; otherwise it returns a KindValidation error
// wrapping ErrNamesRequired and leaves the state unchanged.
func (model *ViewModel) Generate() (Ticket, error) {
	first := strings.TrimSpace(model.firstName)
	last := strings.TrimSpace(model.lastName)
	if first == "" || last == "" {
		return Ticket{}, &Error{Kind: KindValidation, Err: ErrNamesRequired}
	}

	model.ticket = Ticket{
		ID:        ticketcode.TicketID(model.event.TicketPrefix, first, last, model.event.Tag),
		FirstName: first,
		LastName:  last,
		EventTag:  model.event.Tag,
	}
	model.generated = true
	return model.ticket, nil
}

// Stale reports whether the names were edited after the ticket was
// issued, so the card would show a name the ID was not derived from.
func (model *ViewModel) Stale() bool {
	if !model.generated {
		return false
	}
	return strings.TrimSpace(model.firstName) != model.ticket.FirstName ||
		strings.TrimSpace(model.lastName) != model.ticket.LastName
}

// Snapshot copies everything a renderer or exporter needs.
func (model *ViewModel) Snapshot() Snapshot {
	return Snapshot{
		Event:     model.event,
		FirstName: model.firstName,
		LastName:  model.lastName,
		Theme:     model.theme,
		Format:    model.format,
		Countdown: model.countdown,
		Ticket:    model.ticket,
		Generated: model.generated,
		Stale:     model.Stale(),
	}
}

// ExportOptions is the export policy for the current format.
func (model *ViewModel) ExportOptions() ExportOptions {
	return model.Snapshot().ExportOptions()
}

// DownloadName is the file name for the current card.
func (model *ViewModel) DownloadName() string {
	return model.Snapshot().DownloadName()
}

// ShareText is the native share payload for the current card.
func (model *ViewModel) ShareText() capability.ShareRequest {
	return model.Snapshot().ShareRequest()
}

// ShareMessage is the messaging fallback text for the current card.
func (model *ViewModel) ShareMessage() string {
	return model.Snapshot().ShareMessage()
}

// ExportImage renders and rasterizes the current card.
func (model *ViewModel) ExportImage(ctx context.Context) ([]byte, error) {
	return model.exporter.ExportImage(ctx, model.Snapshot())
}

// Download writes the current card to dir and returns the file path.
func (model *ViewModel) Download(ctx context.Context, dir string) (string, error) {
	return model.exporter.Download(ctx, model.Snapshot(), dir)
}

// Share hands the share text to the platform.
func (model *ViewModel) Share(ctx context.Context) (ShareResult, error) {
	return model.exporter.Share(ctx, model.Snapshot())
}

// ShareImage hands the current card image to the platform.
func (model *ViewModel) ShareImage(ctx context.Context) (ShareResult, error) {
	return model.exporter.ShareImage(ctx, model.Snapshot())
}
