// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/keepsake/cmd/keepsake/cli"
	"github.com/bureau-foundation/keepsake/lib/countdown"
	"github.com/bureau-foundation/keepsake/lib/keepsake"
)

type countdownParams struct {
	cli.JSONOutput
	configParams
	Watch    bool          `json:"-" flag:"watch,w" desc:"keep printing until the target is reached or interrupted"`
	Interval time.Duration `json:"-" flag:"interval" default:"1s" desc:"update interval for --watch"`
}

// countdownResult is the JSON form of one countdown reading.
type countdownResult struct {
	Target  string `json:"target"`
	Now     string `json:"now"`
	Text    string `json:"text"`
	Reached bool   `json:"reached"`
}

// CountdownCommand prints the time left until the event.
func CountdownCommand() *cli.Command {
	var params countdownParams
	return &cli.Command{
		Name:    "countdown",
		Summary: "Print the time left until the concert",
		Description: `Print the time remaining until the configured event as
"<days>d <HH>h <MM>m", or "now" once it has started.

With --watch, a new line is printed on every change until the event
starts or the command is interrupted.`,
		Usage: "keepsake countdown [flags]",
		Examples: []cli.Example{
			{
				Description: "Follow the countdown",
				Command:     "keepsake countdown --watch",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("countdown", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
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
			if !params.Watch {
				return params.emit(event.Target, countdown.Format(wallClock.Now(), event.Target))
			}
			if params.Interval <= 0 {
				return cli.Validation("--interval must be positive, got %s", params.Interval)
			}
			return params.watch(ctx, event.Target, logger)
		},
	}
}

// watch prints each distinct countdown text until the terminal value
// or until ctx is done.
func (params *countdownParams) watch(ctx context.Context, target time.Time, logger *slog.Logger) error {
	ticker := countdown.Start(wallClock, target, params.Interval)
	defer ticker.Stop()

	last := ""
	for {
		select {
		case <-ctx.Done():
			logger.Debug("countdown watch interrupted", "last", last)
			return nil
		case text := <-ticker.C():
			if text == last {
				continue
			}
			last = text
			if err := params.emit(target, text); err != nil {
				return err
			}
			if text == countdown.Terminal {
				return nil
			}
		}
	}
}

func (params *countdownParams) emit(target time.Time, text string) error {
	result := countdownResult{
		Target:  target.Format(time.RFC3339),
		Now:     wallClock.Now().Format(time.RFC3339),
		Text:    text,
		Reached: text == countdown.Terminal,
	}
	if done, err := params.EmitJSON(result); done {
		return err
	}
	_, err := fmt.Fprintln(cli.Stdout, text)
	return err
}

// formatCountdown is the badge text for a card rendered right now.
func formatCountdown(event keepsake.Event) string {
	return countdown.Format(wallClock.Now(), event.Target)
}
