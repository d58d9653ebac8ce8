// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capability

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// OSC52 copies text to the clipboard of the terminal the user is
// looking at, via the OSC 52 escape sequence. It writes to the
// controlling tty directly rather than stdout so it does not
// interleave with the TUI renderer; the sequence has no visible
// effect.
//
// BEL terminates the sequence: a single byte survives SSH, tmux and
// screen intact where the two-byte ST can be split.
type OSC52 struct {
	// TTYPath is the device written to. Default /dev/tty.
	TTYPath string

	// Getenv reads TMUX and TERM. Default os.Getenv.
	Getenv func(string) string
}

// WriteText sends text to the terminal clipboard. Inside tmux it
// sends both the DCS-passthrough form (allow-passthrough on) and the
// bare form (set-clipboard on); tmux configured either way picks up
// exactly one of them.
func (clipboard OSC52) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := clipboard.TTYPath
	if path == "" {
		path = "/dev/tty"
	}
	getenv := clipboard.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	tty, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer tty.Close()

	sequence := fmt.Sprintf("\x1b]52;c;%s\x07", base64.StdEncoding.EncodeToString([]byte(text)))

	term := getenv("TERM")
	if getenv("TMUX") != "" || strings.HasPrefix(term, "tmux") || strings.HasPrefix(term, "screen") {
		if _, err := fmt.Fprintf(tty, "\x1bPtmux;\x1b%s\x1b\\", sequence); err != nil {
			return fmt.Errorf("writing tmux passthrough: %w", err)
		}
	}
	if _, err := tty.WriteString(sequence); err != nil {
		return fmt.Errorf("writing clipboard sequence: %w", err)
	}
	return nil
}
