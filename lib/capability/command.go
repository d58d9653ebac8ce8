// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capability

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// CommandSharer shares by piping the share text into a command's
// stdin. On Android under Termux, "termux-share -a send" opens the
// system share sheet with that text.
type CommandSharer struct {
	Argv []string
}

// Share runs the command with the title, text and URL on separate
// lines of stdin.
func (sharer CommandSharer) Share(ctx context.Context, request ShareRequest) error {
	var payload strings.Builder
	for _, line := range []string{request.Title, request.Text, request.URL} {
		if line == "" {
			continue
		}
		payload.WriteString(line)
		payload.WriteByte('\n')
	}
	return runWithInput(ctx, sharer.Argv, strings.NewReader(payload.String()))
}

// CommandClipboard writes images by piping PNG bytes into a clipboard
// command, e.g. "wl-copy --type image/png" or
// "xclip -selection clipboard -t image/png".
type CommandClipboard struct {
	Argv []string
}

// WriteImage runs the clipboard command with png on stdin.
func (clipboard CommandClipboard) WriteImage(ctx context.Context, png []byte) error {
	return runWithInput(ctx, clipboard.Argv, bytes.NewReader(png))
}

// runWithInput runs argv to completion with stdin from input. The
// command's stderr is folded into the error so failures are
// diagnosable from the log.
func runWithInput(ctx context.Context, argv []string, input io.Reader) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	command := exec.CommandContext(ctx, argv[0], argv[1:]...)
	command.Stdin = input
	var stderr bytes.Buffer
	command.Stderr = &stderr
	if err := command.Run(); err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return fmt.Errorf("%s: %w: %s", argv[0], err, detail)
		}
		return fmt.Errorf("%s: %w", argv[0], err)
	}
	return nil
}
