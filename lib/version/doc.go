// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the keepsake
// binary.
//
// Four package-level variables are injected at build time via
// -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [GitDirty] -- "true" if there were uncommitted changes
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- semantic version string (set manually for releases)
//
// For example:
//
//	go build -ldflags "-X github.com/bureau-foundation/keepsake/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// These default to "unknown" / "0.1.0-dev" when not injected. [Commit]
// then falls back to the VCS stamp the go tool embeds.
//
// [Current] assembles a [Report] for `keepsake version --json`,
// including the BLAKE3 digest of the running binary from [SelfDigest].
package version
