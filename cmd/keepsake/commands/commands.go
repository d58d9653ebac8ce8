// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the keepsake command tree. With no
// subcommand the binary opens the interactive ticket editor; the
// other commands expose the same operations headlessly for scripts
// and cross-verification.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/keepsake/cmd/keepsake/cli"
	"github.com/bureau-foundation/keepsake/lib/clock"
	"github.com/bureau-foundation/keepsake/lib/config"
	"github.com/bureau-foundation/keepsake/lib/keepsake"
	"github.com/bureau-foundation/keepsake/lib/version"
)

// wallClock is the time source for the countdown commands and the
// interactive view.
var wallClock clock.Clock = clock.Real()

// Root builds and returns the complete keepsake command tree.
func Root() *cli.Command {
	view := ViewCommand()
	return &cli.Command{
		Name: "keepsake",
		Description: `keepsake: commemorative ticket generator for Buray at Harbiye.

Enter a name, get a deterministic HRB25- ticket ID, and export the card
as a PNG. Without a command, the interactive editor opens.`,
		Usage: "keepsake [command] [flags]",
		Flags: view.Flags,
		Run:   view.Run,
		Subcommands: []*cli.Command{
			view,
			CodeCommand(),
			RenderCommand(),
			CountdownCommand(),
			PreviewCommand(),
			versionCommand(),
		},
	}
}

type versionParams struct {
	cli.JSONOutput
}

func versionCommand() *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
			if done, err := params.EmitJSON(version.Current()); done {
				return err
			}
			fmt.Fprintf(cli.Stdout, "keepsake %s\n", version.Full())
			return nil
		},
	}
}

// configParams adds --config to a command.
type configParams struct {
	ConfigPath string `json:"-" flag:"config,c" desc:"config file (YAML, JSON or JSONC); default $KEEPSAKE_CONFIG"`
}

// load reads the config named by --config, or by KEEPSAKE_CONFIG, or
// the built-in defaults.
func (params *configParams) load() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if params.ConfigPath != "" {
		cfg, err = config.LoadFile(params.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cli.NotFound("loading config: %w", err).
			WithHint("Pass --config <path> or unset " + config.EnvVar + " to use the defaults.")
	}
	if err != nil {
		return nil, cli.Validation("loading config: %w", err)
	}
	return cfg, nil
}

// eventFor returns the configured event, with the ticket tag replaced
// when tag is non-empty.
func eventFor(cfg *config.Config, tag string) (keepsake.Event, error) {
	event, err := cfg.KeepsakeEvent()
	if err != nil {
		return keepsake.Event{}, cli.Validation("%w", err)
	}
	if tag != "" {
		event.Tag = tag
	}
	return event, nil
}

// ticketParams are the inputs shared by the commands that build a
// card.
type ticketParams struct {
	First  string `json:"first" flag:"first" desc:"first name"`
	Last   string `json:"last" flag:"last" desc:"last name (upper-cased)"`
	Theme  string `json:"theme" flag:"theme,t" desc:"theme key, label, or abbreviation (default from config)"`
	Format string `json:"format" flag:"format,f" desc:"card format: wide or story (default from config)"`
}

// presentation resolves the theme and format from the flags, falling
// back to the config defaults. pinned is false when neither names a
// format, leaving the choice to the terminal width.
func (params *ticketParams) presentation(cfg *config.Config) (theme keepsake.Theme, format keepsake.Format, pinned bool, err error) {
	themeQuery := params.Theme
	if themeQuery == "" {
		themeQuery = cfg.Defaults.Theme
	}
	theme, err = keepsake.ResolveTheme(themeQuery)
	if err != nil {
		return "", "", false, cli.Validation("unknown theme %q", themeQuery).
			WithHint("Valid themes: " + joinThemes() + ".")
	}

	formatName := params.Format
	if formatName == "" {
		formatName = cfg.Defaults.Format
	}
	if formatName == "" {
		return theme, keepsake.DefaultFormat, false, nil
	}
	format, err = keepsake.ParseFormat(formatName)
	if err != nil {
		return "", "", false, cli.Validation("unknown format %q", formatName).
			WithHint("Valid formats: " + joinFormats() + ".")
	}
	return theme, format, true, nil
}

// generate fills in the names and issues the ticket, mapping the
// missing-name failure to a validation error.
func generate(viewModel *keepsake.ViewModel, params *ticketParams) (keepsake.Ticket, error) {
	viewModel.SetFirstName(params.First)
	viewModel.SetLastName(params.Last)
	ticket, err := viewModel.Generate()
	if errors.Is(err, keepsake.ErrNamesRequired) {
		return keepsake.Ticket{}, cli.Validation("first and last name required").
			WithHint("Pass --first and --last.")
	}
	if err != nil {
		return keepsake.Ticket{}, cli.Internal("generating ticket: %w", err)
	}
	return ticket, nil
}

func joinThemes() string {
	names := make([]string, 0, len(keepsake.Themes()))
	for _, theme := range keepsake.Themes() {
		names = append(names, string(theme))
	}
	return strings.Join(names, ", ")
}

func joinFormats() string {
	names := make([]string, 0, len(keepsake.Formats()))
	for _, format := range keepsake.Formats() {
		names = append(names, string(format))
	}
	return strings.Join(names, ", ")
}
