// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/keepsake/cmd/keepsake/cli"
	"github.com/bureau-foundation/keepsake/lib/capability"
	"github.com/bureau-foundation/keepsake/lib/keepsake"
	"github.com/bureau-foundation/keepsake/lib/ticketcode"
)

type codeParams struct {
	cli.JSONOutput
	configParams
	First  string `json:"first" flag:"first" desc:"first name"`
	Last   string `json:"last" flag:"last" desc:"last name (upper-cased)"`
	Tag    string `json:"tag" flag:"tag" desc:"event tag mixed into the code (default from config)"`
	Copy   bool   `json:"-" flag:"copy" desc:"copy the ticket ID to the terminal clipboard (OSC 52)"`
	Verify string `json:"-" flag:"verify" desc:"exit 1 unless the derived ID equals this one"`
}

// codeResult is the JSON form of a derived ticket ID.
type codeResult struct {
	TicketID  string `json:"ticket_id"`
	Code      string `json:"code"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	EventTag  string `json:"event_tag"`
	Verified  *bool  `json:"verified,omitempty"`
}

// CodeCommand prints the ticket ID for a name without rendering
// anything.
func CodeCommand() *cli.Command {
	var params codeParams
	return &cli.Command{
		Name:    "code",
		Summary: "Print the ticket ID for a name",
		Description: `Derive the ticket ID for a first and last name.

The ID depends only on the trimmed names (last name upper-cased) and
the event tag, so the same inputs print the same ID on every machine.`,
		Usage: "keepsake code --first <name> --last <name> [flags]",
		Examples: []cli.Example{
			{
				Description: "Print a ticket ID",
				Command:     "keepsake code --first Ayşe --last Yılmaz",
			},
			{
				Description: "Check an ID printed on someone's card",
				Command:     "keepsake code --first Ayşe --last Yılmaz --verify HRB25-1ABC2D",
			},
			{
				Description: "Cross-check against a different event tag",
				Command:     "keepsake code --first Ayşe --last Yılmaz --tag 8-Nov-2025 --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("code", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			cfg, err := params.load()
			if err != nil {
				return err
			}
			event, err := eventFor(cfg, params.Tag)
			if err != nil {
				return err
			}

			viewModel := keepsake.New(keepsake.Options{Event: event, Logger: logger})
			ticket, err := generate(viewModel, &ticketParams{First: params.First, Last: params.Last})
			if err != nil {
				return err
			}

			if params.Copy {
				if err := copyText(ctx, cfg.DetectOptions(), ticket.ID); err != nil {
					return err
				}
				logger.Info("ticket ID copied", "ticket", ticket.ID)
			}

			result := codeResult{
				TicketID:  ticket.ID,
				Code:      strings.TrimPrefix(ticket.ID, event.TicketPrefix),
				FirstName: ticket.FirstName,
				LastName:  ticket.LastName,
				EventTag:  ticket.EventTag,
			}
			if !ticketcode.Valid(result.Code) {
				return cli.Internal("derived code %q is not base-36", result.Code)
			}
			mismatch := false
			if params.Verify != "" {
				verified := strings.EqualFold(strings.TrimSpace(params.Verify), ticket.ID)
				result.Verified = &verified
				mismatch = !verified
			}

			if done, err := params.EmitJSON(result); done {
				if err == nil && mismatch {
					return &cli.ExitError{Code: 1}
				}
				return err
			}
			if mismatch {
				fmt.Fprintf(cli.Stdout, "%s does not match %s\n", ticket.ID, params.Verify)
				return &cli.ExitError{Code: 1}
			}
			fmt.Fprintln(cli.Stdout, ticket.ID)
			return nil
		},
	}
}

// copyText writes text to the terminal clipboard when detection finds
// one.
func copyText(ctx context.Context, options capability.DetectOptions, text string) error {
	clipboard, ok := capability.Detect(options).TextClipboard.Get()
	if !ok {
		return cli.Unavailable("no terminal clipboard available").
			WithHint("Run from an interactive terminal that supports OSC 52.")
	}
	if err := clipboard.WriteText(ctx, text); err != nil {
		return cli.Internal("copying to clipboard: %w", err)
	}
	return nil
}
