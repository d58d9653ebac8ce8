// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/keepsake/cmd/keepsake/cli"
	"github.com/bureau-foundation/keepsake/lib/capability"
	"github.com/bureau-foundation/keepsake/lib/countdown"
	"github.com/bureau-foundation/keepsake/lib/keepsake"
	"github.com/bureau-foundation/keepsake/lib/keepsakeui"
	"github.com/bureau-foundation/keepsake/lib/render"
)

type viewParams struct {
	configParams
	ticketParams
	OutputDir string `json:"out_dir" flag:"out-dir,o" desc:"directory for downloaded PNGs (default: paths.output_dir)"`
	LogOutput string `json:"log_output" flag:"log-output" desc:"write JSON log records to this file (default: log.output)"`
}

// ViewCommand opens the interactive ticket editor.
func ViewCommand() *cli.Command {
	var params viewParams
	return &cli.Command{
		Name:    "view",
		Summary: "Open the interactive ticket editor",
		Description: `Open the interactive ticket editor.

Type the names, press enter to generate the ticket, then download,
share, or copy it. The preview follows the theme and format pickers and
the live countdown.`,
		Usage: "keepsake view [flags]",
		Examples: []cli.Example{
			{
				Description: "Start with the names filled in",
				Command:     "keepsake view --first Ayşe --last Yılmaz",
			},
			{
				Description: "Keep a debug log while the editor runs",
				Command:     "keepsake --log-output /tmp/keepsake.jsonl",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("view", &params)
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return runView(&params)
		},
	}
}

func runView(params *viewParams) error {
	cfg, err := params.load()
	if err != nil {
		return err
	}
	event, err := eventFor(cfg, "")
	if err != nil {
		return err
	}
	theme, format, pinned, err := params.presentation(cfg)
	if err != nil {
		return err
	}

	// Stderr belongs to the alt screen while the editor runs. Errors
	// reach the status bar; everything at the configured level can go
	// to a file.
	tuiHandler := keepsakeui.NewTUILogHandler(keepsakeui.StatusLevel)
	var handler slog.Handler = tuiHandler
	logOutput := params.LogOutput
	if logOutput == "" {
		logOutput = cfg.Log.Output
	}
	if logOutput != "" {
		file, err := os.OpenFile(logOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return cli.Validation("cannot open log file %s: %w", logOutput, err)
		}
		defer file.Close()
		fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: cfg.LogLevel()})
		handler = fanoutHandler{tuiHandler, fileHandler}
	}
	logger := slog.New(handler).With("session", cli.SessionID, "command", "keepsake view")

	capabilities := capability.Detect(cfg.DetectOptions())
	logger.Debug("capabilities detected",
		"share", capabilities.Sharer.IsAvailable(),
		"open", capabilities.Opener.IsAvailable(),
		"image_clipboard", capabilities.ImageClipboard.IsAvailable(),
		"text_clipboard", capabilities.TextClipboard.IsAvailable(),
	)

	viewModel := keepsake.New(keepsake.Options{
		Event:        event,
		Theme:        theme,
		Format:       format,
		Renderer:     render.New(),
		Capabilities: capabilities,
		Logger:       logger,
		TempDir:      cfg.Paths.TempDir,
	})
	viewModel.SetFirstName(params.First)
	viewModel.SetLastName(params.Last)

	ticker := countdown.Start(wallClock, event.Target, countdown.DefaultInterval)
	defer ticker.Stop()

	outputDir := params.OutputDir
	if outputDir == "" {
		outputDir = cfg.Paths.OutputDir
	}

	model := keepsakeui.NewModel(keepsakeui.Config{
		ViewModel:    viewModel,
		Countdown:    ticker.C(),
		OutputDir:    outputDir,
		FormatPinned: pinned,
		Clock:        wallClock,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	return err
}

// fanoutHandler is a slog.Handler that sends each record to multiple
// underlying handlers. A record is enabled if any sub-handler is
// enabled for its level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
