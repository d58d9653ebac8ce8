// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/keepsake/cmd/keepsake/cli"
	"github.com/bureau-foundation/keepsake/lib/keepsake"
	"github.com/bureau-foundation/keepsake/lib/keepsakeui"
	"github.com/bureau-foundation/keepsake/lib/tui"
)

type previewParams struct {
	configParams
	ticketParams
	Plain bool `json:"-" flag:"plain" desc:"print without colors"`
}

// PreviewCommand prints the terminal rendition of a card once.
func PreviewCommand() *cli.Command {
	var params previewParams
	return &cli.Command{
		Name:    "preview",
		Summary: "Print the card preview to the terminal",
		Description: `Print the terminal rendition of a card and exit.

With both names the ticket is generated and its ID shown; otherwise the
card shows the placeholders. Colors follow the terminal's capabilities
unless --plain is set.`,
		Usage: "keepsake preview [flags]",
		Examples: []cli.Example{
			{
				Description: "Preview a rose story card",
				Command:     "keepsake preview --first Ayşe --last Yılmaz --theme gül --format story",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("preview", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
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
			if !pinned {
				format = keepsake.DefaultFormatForWidth(terminalWidth())
			}

			viewModel := keepsake.New(keepsake.Options{Event: event, Theme: theme, Format: format, Logger: logger})
			if strings.TrimSpace(params.First) != "" || strings.TrimSpace(params.Last) != "" {
				if _, err := generate(viewModel, &params.ticketParams); err != nil {
					return err
				}
			}
			viewModel.SetCountdown(formatCountdown(event))

			profile := termenv.NewOutput(cli.Stdout).EnvColorProfile()
			if params.Plain {
				profile = termenv.Ascii
			}
			lipgloss.SetColorProfile(profile)

			_, err = fmt.Fprintln(cli.Stdout, keepsakeui.RenderCard(viewModel.Snapshot(), tui.DefaultTheme, 0))
			return err
		},
	}
}

// terminalWidth returns the width of stdout in columns, or zero when
// stdout is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}
