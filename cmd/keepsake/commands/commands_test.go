// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/keepsake/cmd/keepsake/cli"
	"github.com/bureau-foundation/keepsake/lib/clock"
	"github.com/bureau-foundation/keepsake/lib/config"
	"github.com/bureau-foundation/keepsake/lib/keepsake"
	"github.com/bureau-foundation/keepsake/lib/ticketcode"
	"github.com/bureau-foundation/keepsake/lib/version"
)

// runCommand executes the command tree with the built-in config and
// returns what it wrote to stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvVar, "")

	var stdout bytes.Buffer
	originalStdout := cli.Stdout
	cli.Stdout = &stdout
	t.Cleanup(func() { cli.Stdout = originalStdout })

	root := Root()
	root.Output = &bytes.Buffer{}
	err := root.Execute(context.Background(), args)
	return stdout.String(), err
}

// useClock pins the wall clock for the duration of the test.
func useClock(t *testing.T, now time.Time) {
	t.Helper()
	original := wallClock
	wallClock = clock.Fake(now)
	t.Cleanup(func() { wallClock = original })
}

func requireCategory(t *testing.T, err error, want cli.ErrorCategory) *cli.ToolError {
	t.Helper()
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error = %v (%T), want a *cli.ToolError", err, err)
	}
	if toolErr.Category != want {
		t.Fatalf("category = %q, want %q (error: %v)", toolErr.Category, want, err)
	}
	return toolErr
}

func expectedID(first, last string) string {
	event := keepsake.DefaultEvent()
	return ticketcode.TicketID(event.TicketPrefix, first, keepsake.UpperName(last), event.Tag)
}

func TestCodePrintsTicketID(t *testing.T) {
	output, err := runCommand(t, "code", "--first", "Ayşe", "--last", "yılmaz")
	if err != nil {
		t.Fatalf("code: %v", err)
	}
	want := expectedID("Ayşe", "YILMAZ")
	if output != want+"\n" {
		t.Errorf("output = %q, want %q", output, want+"\n")
	}
	if !strings.HasPrefix(want, "HRB25-") {
		t.Errorf("ticket ID %q lacks the HRB25- prefix", want)
	}
}

func TestCodeUpperCasesWithFullMapping(t *testing.T) {
	folded, err := runCommand(t, "code", "--first", "Ayşe", "--last", "straße")
	if err != nil {
		t.Fatalf("code: %v", err)
	}
	if want := expectedID("Ayşe", "STRASSE"); folded != want+"\n" {
		t.Errorf("output = %q, want %q", folded, want+"\n")
	}
}

func TestCodeTrimsNames(t *testing.T) {
	padded, err := runCommand(t, "code", "--first", "  Ayşe ", "--last", " Yılmaz  ")
	if err != nil {
		t.Fatalf("code: %v", err)
	}
	plain, err := runCommand(t, "code", "--first", "Ayşe", "--last", "Yılmaz")
	if err != nil {
		t.Fatalf("code: %v", err)
	}
	if padded != plain {
		t.Errorf("padded names gave %q, plain names gave %q", padded, plain)
	}
}

func TestCodeJSON(t *testing.T) {
	output, err := runCommand(t, "code", "--first", "Ayşe", "--last", "Demir", "--json")
	if err != nil {
		t.Fatalf("code --json: %v", err)
	}
	var result codeResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("decoding %q: %v", output, err)
	}
	if result.TicketID != expectedID("Ayşe", "DEMIR") {
		t.Errorf("ticket_id = %q, want %q", result.TicketID, expectedID("Ayşe", "DEMIR"))
	}
	if result.TicketID != "HRB25-"+result.Code {
		t.Errorf("code %q does not match ticket_id %q", result.Code, result.TicketID)
	}
	if result.LastName != "DEMIR" || result.EventTag != "7-Nov-2025" {
		t.Errorf("result = %+v", result)
	}
	if result.Verified != nil {
		t.Error("verified set without --verify")
	}
}

func TestCodeTagChangesID(t *testing.T) {
	standard, err := runCommand(t, "code", "--first", "Ayşe", "--last", "Yılmaz")
	if err != nil {
		t.Fatalf("code: %v", err)
	}
	other, err := runCommand(t, "code", "--first", "Ayşe", "--last", "Yılmaz", "--tag", "8-Nov-2025")
	if err != nil {
		t.Fatalf("code --tag: %v", err)
	}
	if standard == other {
		t.Errorf("changing the tag kept the ID %q", standard)
	}
}

func TestCodeRequiresBothNames(t *testing.T) {
	_, err := runCommand(t, "code", "--first", "Ayşe", "--last", "   ")
	toolErr := requireCategory(t, err, cli.CategoryValidation)
	if toolErr.Hint == "" {
		t.Error("validation error has no hint")
	}
}

func TestCodeVerify(t *testing.T) {
	id := expectedID("Ayşe", "YILMAZ")
	output, err := runCommand(t, "code", "--first", "Ayşe", "--last", "Yılmaz", "--verify", strings.ToLower(id))
	if err != nil {
		t.Fatalf("matching --verify: %v", err)
	}
	if output != id+"\n" {
		t.Errorf("output = %q", output)
	}

	output, err = runCommand(t, "code", "--first", "Ayşe", "--last", "Yılmaz", "--verify", "HRB25-000000")
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("mismatching --verify = %v, want exit code 1", err)
	}
	if !strings.Contains(output, "does not match HRB25-000000") {
		t.Errorf("output = %q", output)
	}
}

func TestRenderWritesPNG(t *testing.T) {
	useClock(t, time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC))
	dir := t.TempDir()

	output, err := runCommand(t, "render", "--first", "Ayşe", "--last", "Yılmaz", "--out", dir, "--json")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var result renderResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("decoding %q: %v", output, err)
	}

	wantPath := filepath.Join(dir, "Ayşe YILMAZ-Buray-Harbiye-2025-Wide-21x9.png")
	if result.Path != wantPath {
		t.Errorf("path = %q, want %q", result.Path, wantPath)
	}
	if result.TicketID != expectedID("Ayşe", "YILMAZ") {
		t.Errorf("ticket_id = %q", result.TicketID)
	}
	if result.Theme != "emerald" || result.Format != "wide" {
		t.Errorf("presentation = %s/%s, want emerald/wide", result.Theme, result.Format)
	}

	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if result.Bytes != len(data) || result.Digest != keepsake.Digest(data) {
		t.Errorf("bytes/digest = %d/%s, file has %d/%s", result.Bytes, result.Digest, len(data), keepsake.Digest(data))
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding PNG: %v", err)
	}
	if bounds := decoded.Bounds(); bounds.Dx() != result.Width || bounds.Dy() != result.Height {
		t.Errorf("image is %dx%d, result says %dx%d", bounds.Dx(), bounds.Dy(), result.Width, result.Height)
	}
}

func TestRenderToFileWithThemeAndFormat(t *testing.T) {
	useClock(t, time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC))
	path := filepath.Join(t.TempDir(), "nested", "ayse.png")

	output, err := runCommand(t, "render", "--first", "Ayşe", "--last", "Yılmaz",
		"--theme", "kehri", "--format", "story", "--out", path, "--json")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var result renderResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("decoding %q: %v", output, err)
	}
	if result.Path != path || result.Theme != "amber" || result.Format != "story" {
		t.Errorf("result = %+v", result)
	}
	if result.Height <= result.Width {
		t.Errorf("story card is %dx%d, want portrait", result.Width, result.Height)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file: %v", err)
	}
}

func TestRenderRejectsBadPresentation(t *testing.T) {
	dir := t.TempDir()

	_, err := runCommand(t, "render", "--first", "A", "--last", "B", "--theme", "qqq", "--out", dir)
	toolErr := requireCategory(t, err, cli.CategoryValidation)
	if !strings.Contains(toolErr.Hint, "emerald") {
		t.Errorf("hint = %q, want the theme list", toolErr.Hint)
	}

	_, err = runCommand(t, "render", "--first", "A", "--last", "B", "--format", "square", "--out", dir)
	requireCategory(t, err, cli.CategoryValidation)

	_, err = runCommand(t, "render", "--first", "A", "--out", dir)
	requireCategory(t, err, cli.CategoryValidation)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed renders wrote %d files", len(entries))
	}
}

func TestRenderUsesConfigDefaults(t *testing.T) {
	useClock(t, time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC))
	dir := t.TempDir()
	configPath := filepath.Join(dir, "keepsake.yaml")
	content := "defaults:\n  theme: violet\n  format: story\npaths:\n  output_dir: " + filepath.Join(dir, "out") + "\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	output, err := runCommand(t, "render", "--config", configPath, "--first", "Ayşe", "--last", "Yılmaz", "--json")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var result renderResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("decoding %q: %v", output, err)
	}
	if result.Theme != "violet" || result.Format != "story" {
		t.Errorf("presentation = %s/%s, want violet/story", result.Theme, result.Format)
	}
	if filepath.Dir(result.Path) != filepath.Join(dir, "out") {
		t.Errorf("path = %q, want it under the configured output dir", result.Path)
	}
}

func TestMissingConfigIsNotFound(t *testing.T) {
	_, err := runCommand(t, "code", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "--first", "A", "--last", "B")
	toolErr := requireCategory(t, err, cli.CategoryNotFound)
	if toolErr.Hint == "" {
		t.Error("not-found error has no hint")
	}
}

func TestCountdown(t *testing.T) {
	target := keepsake.DefaultEvent().Target
	useClock(t, target.Add(-(24*time.Hour + time.Hour + time.Minute)))

	output, err := runCommand(t, "countdown")
	if err != nil {
		t.Fatalf("countdown: %v", err)
	}
	if output != "1d 01h 01m\n" {
		t.Errorf("output = %q, want %q", output, "1d 01h 01m\n")
	}
}

func TestCountdownJSONAfterTarget(t *testing.T) {
	target := keepsake.DefaultEvent().Target
	useClock(t, target.Add(time.Hour))

	output, err := runCommand(t, "countdown", "--json")
	if err != nil {
		t.Fatalf("countdown --json: %v", err)
	}
	var result countdownResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("decoding %q: %v", output, err)
	}
	if result.Text != "now" || !result.Reached {
		t.Errorf("result = %+v, want reached", result)
	}
	if result.Target != "2025-11-07T21:00:00+03:00" {
		t.Errorf("target = %q", result.Target)
	}
}

func TestCountdownWatchStopsAtTarget(t *testing.T) {
	target := keepsake.DefaultEvent().Target
	useClock(t, target)

	output, err := runCommand(t, "countdown", "--watch")
	if err != nil {
		t.Fatalf("countdown --watch: %v", err)
	}
	if output != "now\n" {
		t.Errorf("output = %q, want a single terminal line", output)
	}
}

func TestCountdownWatchRejectsZeroInterval(t *testing.T) {
	_, err := runCommand(t, "countdown", "--watch", "--interval", "0s")
	requireCategory(t, err, cli.CategoryValidation)
}

func TestPreviewPlain(t *testing.T) {
	useClock(t, time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC))

	output, err := runCommand(t, "preview", "--first", "Ayşe", "--last", "Yılmaz", "--plain")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	for _, want := range []string{expectedID("Ayşe", "YILMAZ"), "Ayşe YILMAZ", keepsake.TicketLabel} {
		if !strings.Contains(output, want) {
			t.Errorf("preview missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "\x1b[") {
		t.Error("--plain output contains escape sequences")
	}
}

func TestPreviewPlaceholders(t *testing.T) {
	output, err := runCommand(t, "preview", "--plain")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(output, "HRB25-XXXXXX") {
		t.Errorf("preview without names lacks the placeholder ID:\n%s", output)
	}

	_, err = runCommand(t, "preview", "--first", "Ayşe", "--plain")
	requireCategory(t, err, cli.CategoryValidation)
}

func TestVersionJSON(t *testing.T) {
	output, err := runCommand(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json: %v", err)
	}
	var report version.Report
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("decoding %q: %v", output, err)
	}
	if report.Version != version.Version || report.GoVersion != runtime.Version() {
		t.Errorf("report = %+v", report)
	}
}

func TestUnknownCommandSuggests(t *testing.T) {
	_, err := runCommand(t, "rendr")
	requireCategory(t, err, cli.CategoryValidation)
	if !strings.Contains(err.Error(), `did you mean "render"`) {
		t.Errorf("error = %q", err)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		out, defaultDir, want string
	}{
		{"", "", filepath.Join(".", "card.png")},
		{"", "exports", filepath.Join("exports", "card.png")},
		{"dir", "exports", filepath.Join("dir", "card.png")},
		{"named.PNG", "exports", "named.PNG"},
	}
	for _, test := range tests {
		if got := outputPath(test.out, test.defaultDir, "card.png"); got != test.want {
			t.Errorf("outputPath(%q, %q) = %q, want %q", test.out, test.defaultDir, got, test.want)
		}
	}
}

func TestFanoutHandler(t *testing.T) {
	var errorsOnly, everything bytes.Buffer
	logger := slog.New(fanoutHandler{
		slog.NewJSONHandler(&errorsOnly, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewJSONHandler(&everything, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}).With("session", "abc").WithGroup("export")

	logger.Info("ticket downloaded", "path", "x.png")
	logger.Error("share failed", "op", "share")

	if strings.Contains(errorsOnly.String(), "ticket downloaded") {
		t.Error("info record reached the error-level handler")
	}
	if !strings.Contains(errorsOnly.String(), `"share failed"`) {
		t.Errorf("error handler output = %q", errorsOnly.String())
	}
	if strings.Count(everything.String(), "\n") != 2 {
		t.Errorf("debug handler got %q, want two records", everything.String())
	}
	if !strings.Contains(everything.String(), `"export":{"path":"x.png"}`) {
		t.Errorf("group not applied: %q", everything.String())
	}
}
