// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keepsakeui

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusLevel is the lowest level the interactive view shows in its
// status bar. Export and share failures are logged at warn and reach
// the status bar as operation notices instead.
const StatusLevel = slog.LevelError

// logRecordMsg delivers a slog record to the model for display in the
// status bar.
type logRecordMsg struct {
	// Summary is "message (key=value, ...)".
	Summary string
	Level   slog.Level
}

// TUILogHandler is a slog.Handler that routes records into a running
// bubbletea program as status-bar notices. Records below the
// configured level are dropped.
//
// Create the handler before the program and call SetProgram once the
// tea.Program exists. Records arriving before that are dropped. All
// handlers derived via WithAttrs/WithGroup share the program pointer,
// so one SetProgram call reaches every derived handler.
type TUILogHandler struct {
	level   slog.Leveler
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
	group   string
}

// NewTUILogHandler creates a handler that delivers records at or
// above level.
func NewTUILogHandler(level slog.Leveler) *TUILogHandler {
	return &TUILogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the program that receives notices. Safe to call
// from any goroutine.
func (handler *TUILogHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

// Enabled reports whether records at level are delivered.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level.Level()
}

// Handle formats the record and sends it to the program.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}
	program.Send(handler.message(record))
	return nil
}

func (handler *TUILogHandler) message(record slog.Record) logRecordMsg {
	var parts []string
	for _, attr := range handler.attrs {
		parts = append(parts, attr.Key+"="+attr.Value.String())
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, handler.format(attr))
		return true
	})

	summary := record.Message
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}
	return logRecordMsg{Summary: summary, Level: record.Level}
}

func (handler *TUILogHandler) format(attr slog.Attr) string {
	return handler.qualify(attr.Key) + "=" + attr.Value.String()
}

func (handler *TUILogHandler) qualify(key string) string {
	if handler.group == "" {
		return key
	}
	return handler.group + "." + key
}

// WithAttrs returns a handler with attrs appended, qualified by the
// current group. The derived handler shares the program pointer.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *handler
	derived.attrs = append([]slog.Attr(nil), handler.attrs...)
	for _, attr := range attrs {
		derived.attrs = append(derived.attrs, slog.Attr{Key: handler.qualify(attr.Key), Value: attr.Value})
	}
	return &derived
}

// WithGroup returns a handler that qualifies later attribute keys
// with name. The derived handler shares the program pointer.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	derived := *handler
	derived.attrs = append([]slog.Attr(nil), handler.attrs...)
	if derived.group != "" {
		derived.group += "." + name
	} else {
		derived.group = name
	}
	return &derived
}
