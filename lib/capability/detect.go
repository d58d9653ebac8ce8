// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capability

import (
	"os"
	"os/exec"
	"runtime"
)

// DetectOptions controls startup probing.
type DetectOptions struct {
	// Disable switches force a capability off regardless of what the
	// host provides.
	DisableShare          bool
	DisableOpener         bool
	DisableImageClipboard bool
	DisableTextClipboard  bool

	// ShareCommand overrides the native share command. Its first
	// element must resolve on PATH for sharing to be available.
	ShareCommand []string

	// GOOS, LookPath and Getenv default to the running host. Tests
	// replace them to simulate other platforms.
	GOOS     string
	LookPath func(string) (string, error)
	Getenv   func(string) string
}

// Detect probes the host once and returns the capability selection.
func Detect(options DetectOptions) Set {
	goos := options.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	lookPath := options.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	getenv := options.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	onPath := func(name string) bool {
		_, err := lookPath(name)
		return err == nil
	}

	set := None()

	if !options.DisableShare {
		switch {
		case len(options.ShareCommand) > 0:
			if onPath(options.ShareCommand[0]) {
				set.Sharer = Available[Sharer](CommandSharer{Argv: options.ShareCommand})
			}
		case onPath("termux-share"):
			set.Sharer = Available[Sharer](CommandSharer{Argv: []string{"termux-share", "-a", "send"}})
		}
	}

	if !options.DisableOpener && canOpen(goos, onPath) {
		set.Opener = Available[Opener](NewBrowserOpener())
	}

	if !options.DisableImageClipboard {
		switch {
		case getenv("WAYLAND_DISPLAY") != "" && onPath("wl-copy"):
			set.ImageClipboard = Available[ImageClipboard](CommandClipboard{
				Argv: []string{"wl-copy", "--type", "image/png"},
			})
		case getenv("DISPLAY") != "" && onPath("xclip"):
			set.ImageClipboard = Available[ImageClipboard](CommandClipboard{
				Argv: []string{"xclip", "-selection", "clipboard", "-t", "image/png"},
			})
		}
	}

	if !options.DisableTextClipboard && getenv("TERM") != "dumb" {
		set.TextClipboard = Available[TextClipboard](OSC52{Getenv: getenv})
	}

	return set
}

// canOpen reports whether the browser launcher has something to call.
// macOS and Windows always ship one; elsewhere it needs a helper on
// PATH.
func canOpen(goos string, onPath func(string) bool) bool {
	switch goos {
	case "darwin", "windows":
		return true
	}
	for _, helper := range []string{"xdg-open", "x-www-browser", "www-browser", "wslview", "termux-open"} {
		if onPath(helper) {
			return true
		}
	}
	return false
}
