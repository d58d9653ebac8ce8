// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"

	"github.com/zeebo/blake3"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// Info returns a formatted version string suitable for --version output.
func Info() string {
	dirty := ""
	if GitDirty == "true" {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, Commit(), dirty, BuildTime)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA. Builds without -ldflags fall back
// to the VCS revision the go tool stamped into the binary, shortened
// to the usual seven characters.
func Commit() string {
	if GitCommit != "unknown" {
		return GitCommit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return GitCommit
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && setting.Value != "" {
			if len(setting.Value) > 7 {
				return setting.Value[:7]
			}
			return setting.Value
		}
	}
	return GitCommit
}

// Report is the machine-readable form of the version output.
type Report struct {
	Version      string `json:"version"`
	Commit       string `json:"commit"`
	Dirty        bool   `json:"dirty"`
	BuildTime    string `json:"build_time"`
	GoVersion    string `json:"go_version"`
	Platform     string `json:"platform"`
	BinaryPath   string `json:"binary_path,omitempty"`
	BinaryDigest string `json:"binary_digest,omitempty"`
}

// Current returns the report for the running binary. The binary
// fields are left empty when the executable cannot be read.
func Current() Report {
	report := Report{
		Version:   Version,
		Commit:    Commit(),
		Dirty:     GitDirty == "true",
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if digest, path, err := SelfDigest(); err == nil {
		report.BinaryDigest = digest
		report.BinaryPath = path
	}
	return report
}

// SelfDigest returns the hex BLAKE3-256 digest and absolute path of
// the running binary, so two installs can be compared byte for byte.
func SelfDigest() (digest string, binaryPath string, err error) {
	binaryPath, err = os.Executable()
	if err != nil {
		return "", "", fmt.Errorf("resolving executable path: %w", err)
	}
	binaryPath, err = filepath.EvalSymlinks(binaryPath)
	if err != nil {
		return "", "", fmt.Errorf("resolving executable symlinks: %w", err)
	}
	digest, err = FileDigest(binaryPath)
	if err != nil {
		return "", "", err
	}
	return digest, binaryPath, nil
}

// FileDigest returns the hex BLAKE3-256 digest of the file at path.
func FileDigest(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
