// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capability

import (
	"context"
	"io"
	"net/url"

	"github.com/pkg/browser"
)

// BrowserOpener opens web links in the default browser and local
// files in their default viewer.
type BrowserOpener struct{}

// NewBrowserOpener silences the launcher's own stdout and stderr.
// Helper output written to the terminal would corrupt the TUI's
// alt-screen rendering.
func NewBrowserOpener() BrowserOpener {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return BrowserOpener{}
}

// Open dispatches on the target: http(s) URLs go to the browser,
// anything else is treated as a file path.
func (BrowserOpener) Open(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if isWebURL(target) {
		return browser.OpenURL(target)
	}
	return browser.OpenFile(target)
}

func isWebURL(target string) bool {
	parsed, err := url.Parse(target)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
